package models

import (
	"fmt"
	"time"
)

// Asset is an uploaded image stored in the blob store under Key().
type Asset struct {
	ID        int64
	BaseURL   string
	Salt      string
	Extension string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Key is the object name in the blob store.
func (a *Asset) Key() string {
	return fmt.Sprintf("%s.%s", a.Salt, a.Extension)
}

// URL is the public address of the stored image.
func (a *Asset) URL() string {
	return fmt.Sprintf("%s/%s", a.BaseURL, a.Key())
}
