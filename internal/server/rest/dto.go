package rest

import (
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/services"
)

// ---- requests ----

type outfitRequest struct {
	Title    *string `json:"title"`
	Text     *string `json:"text"`
	Public   *bool   `json:"public"`
	Clean    *bool   `json:"clean"`
	ImageURL *string `json:"image_url"`
	UserID   *int64  `json:"user_id"`
}

func (r outfitRequest) input() services.OutfitInput {
	return services.OutfitInput{
		Title:    r.Title,
		Text:     r.Text,
		Public:   r.Public,
		Clean:    r.Clean,
		ImageURL: r.ImageURL,
		UserID:   r.UserID,
	}
}

type commentRequest struct {
	Text   string `json:"text"`
	UserID *int64 `json:"user_id"`
}

type tagRequest struct {
	TagName *string `json:"tag_name"`
}

type uploadRequest struct {
	ImageData *string `json:"image_data"`
}

type credentialsRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Username string  `json:"username"`
}

// ---- responses ----

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type commentSummary struct {
	ID   int64  `json:"id"`
	User *int64 `json:"user"`
	Text string `json:"text"`
}

// outfitResponse is the partial outfit form: no owner, comments without
// their outfit.
type outfitResponse struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Text     string            `json:"text"`
	Public   bool              `json:"public"`
	Clean    bool              `json:"clean"`
	Comments []*commentSummary `json:"comments"`
	ImageURL string            `json:"image_url"`
	Tags     []*tagResponse    `json:"tags"`
}

type outfitSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Public   bool   `json:"public"`
	Clean    bool   `json:"clean"`
	ImageURL string `json:"image_url"`
}

type commentResponse struct {
	ID     int64          `json:"id"`
	User   *int64         `json:"user"`
	Text   string         `json:"text"`
	Outfit *outfitSummary `json:"outfit"`
}

type userResponse struct {
	ID       int64             `json:"id"`
	Username string            `json:"username"`
	Outfits  []*outfitResponse `json:"outfits"`
}

type assetResponse struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

type credentialsResponse struct {
	SessionToken      string    `json:"session_token"`
	SessionExpiration time.Time `json:"session_expiration"`
	UpdateToken       string    `json:"update_token"`
}

func newOutfitResponse(o *models.Outfit) *outfitResponse {
	r := &outfitResponse{
		ID:       o.ID,
		Title:    o.Title,
		Text:     o.Text,
		Public:   o.Public,
		Clean:    o.Clean,
		ImageURL: o.ImageURL,
		Comments: make([]*commentSummary, 0, len(o.Comments)),
		Tags:     make([]*tagResponse, 0, len(o.Tags)),
	}
	for _, c := range o.Comments {
		r.Comments = append(r.Comments, &commentSummary{ID: c.ID, User: c.UserID, Text: c.Text})
	}
	for _, t := range o.Tags {
		r.Tags = append(r.Tags, &tagResponse{ID: t.ID, Name: t.Name})
	}
	return r
}

func newOutfitResponses(list []*models.Outfit) []*outfitResponse {
	out := make([]*outfitResponse, 0, len(list))
	for _, o := range list {
		out = append(out, newOutfitResponse(o))
	}
	return out
}

func newCommentResponse(c *models.Comment) *commentResponse {
	r := &commentResponse{ID: c.ID, User: c.UserID, Text: c.Text}
	if o := c.Outfit; o != nil {
		r.Outfit = &outfitSummary{
			ID:       o.ID,
			Title:    o.Title,
			Text:     o.Text,
			Public:   o.Public,
			Clean:    o.Clean,
			ImageURL: o.ImageURL,
		}
	}
	return r
}

func newUserResponse(u *models.User) *userResponse {
	return &userResponse{
		ID:       u.ID,
		Username: u.Username,
		Outfits:  newOutfitResponses(u.Outfits),
	}
}

func newAssetResponse(a *models.Asset) *assetResponse {
	return &assetResponse{
		ID:        a.ID,
		URL:       a.URL(),
		Width:     a.Width,
		Height:    a.Height,
		CreatedAt: a.CreatedAt,
	}
}

func newCredentialsResponse(c *services.Credentials) *credentialsResponse {
	return &credentialsResponse{
		SessionToken:      c.SessionToken,
		SessionExpiration: c.SessionExpiration,
		UpdateToken:       c.UpdateToken,
	}
}
