package client

import (
	"context"
	"time"
)

type Credentials struct {
	SessionToken      string    `json:"session_token"`
	SessionExpiration time.Time `json:"session_expiration"`
	UpdateToken       string    `json:"update_token"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Comment struct {
	ID     int64   `json:"id"`
	User   *int64  `json:"user"`
	Text   string  `json:"text"`
	Outfit *Outfit `json:"outfit,omitempty"`
}

type Outfit struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Text     string     `json:"text"`
	Public   bool       `json:"public"`
	Clean    bool       `json:"clean"`
	ImageURL string     `json:"image_url"`
	Comments []*Comment `json:"comments,omitempty"`
	Tags     []*Tag     `json:"tags,omitempty"`
}

type Asset struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOutfit carries optional outfit fields; nil means "server default".
type NewOutfit struct {
	Title    *string `json:"title,omitempty"`
	Text     *string `json:"text,omitempty"`
	Public   *bool   `json:"public,omitempty"`
	Clean    *bool   `json:"clean,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	UserID   *int64  `json:"user_id,omitempty"`
}

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password, username string) error
	Login(ctx context.Context, email, password string) error
	Renew(ctx context.Context) error
	Logout()
	LoggedIn() bool
	Secret(ctx context.Context) (string, error)

	ListOutfits(ctx context.Context) ([]*Outfit, error)
	GetOutfit(ctx context.Context, id int64) (*Outfit, error)
	CreateOutfit(ctx context.Context, in NewOutfit) (*Outfit, error)
	AssignTag(ctx context.Context, outfitID int64, name string) (*Outfit, error)
	AddComment(ctx context.Context, outfitID int64, text string) (*Comment, error)
	UploadImage(ctx context.Context, data []byte) (*Asset, error)
}
