package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_SessionValidAt(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &User{SessionExpiration: exp}

	assert.True(t, u.SessionValidAt(exp.Add(-time.Nanosecond)))
	assert.False(t, u.SessionValidAt(exp))
	assert.False(t, u.SessionValidAt(exp.Add(time.Nanosecond)))
}

func TestAsset_URL(t *testing.T) {
	a := &Asset{BaseURL: "https://wardrobe.s3-us-east-2.amazonaws.com", Salt: "ABCDEF0123456789", Extension: "png"}

	assert.Equal(t, "ABCDEF0123456789.png", a.Key())
	assert.Equal(t, "https://wardrobe.s3-us-east-2.amazonaws.com/ABCDEF0123456789.png", a.URL())
}

func TestOutfit_HasTag(t *testing.T) {
	o := &Outfit{Tags: []*Tag{{ID: 1, Name: "casual"}}}

	assert.True(t, o.HasTag(1))
	assert.False(t, o.HasTag(2))
}
