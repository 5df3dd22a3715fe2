package models

import "time"

// Default values applied to outfit fields missing from a create request.
const (
	DefaultOutfitTitle = "unnamed"
)

// Outfit is a photo post. UserID is nil for outfits created without an owner.
type Outfit struct {
	ID        int64
	Title     string
	Text      string
	Public    bool
	Clean     bool
	ImageURL  string
	UserID    *int64
	CreatedAt time.Time

	Comments []*Comment
	Tags     []*Tag
}

// HasTag reports whether a tag with the given id is linked to the outfit.
func (o *Outfit) HasTag(tagID int64) bool {
	for _, t := range o.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
