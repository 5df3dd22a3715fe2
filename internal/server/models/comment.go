package models

import "time"

// Comment belongs to exactly one outfit. UserID is optional.
type Comment struct {
	ID        int64
	Text      string
	UserID    *int64
	OutfitID  int64
	CreatedAt time.Time

	// Outfit carries a summary of the parent outfit (no comments or tags)
	// when the caller asked for it.
	Outfit *Outfit
}
