package models

// Tag is a label shared between outfits; Name is unique.
type Tag struct {
	ID   int64
	Name string
}
