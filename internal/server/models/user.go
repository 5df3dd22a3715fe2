// Package models defines the wardrobe domain entities persisted in the
// database.
package models

import "time"

// User is an account together with its session state. The password digest
// and tokens never leave the server except through the auth endpoints.
type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordDigest    string
	SessionToken      string
	SessionExpiration time.Time
	UpdateToken       string
	CreatedAt         time.Time

	// Outfits is populated only by listing operations.
	Outfits []*Outfit
}

// SessionValidAt reports whether the session token is still usable at t.
// The expiration instant itself is already invalid.
func (u *User) SessionValidAt(t time.Time) bool {
	return t.Before(u.SessionExpiration)
}
