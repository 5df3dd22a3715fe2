package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// HTTPClient implements Client over the wardrobe JSON API. It is safe for
// concurrent use.
type HTTPClient struct {
	rc *resty.Client

	mu    sync.Mutex
	creds *Credentials
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetHostURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPClient{rc: rc}
}

func (c *HTTPClient) tokens() *Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

func (c *HTTPClient) setTokens(creds *Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
}

func (c *HTTPClient) LoggedIn() bool {
	return c.tokens() != nil
}

func (c *HTTPClient) Logout() {
	c.setTokens(nil)
}

func (c *HTTPClient) execute(ctx context.Context, method, path, token string, body any) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if token != "" {
		req.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return resp, apiError(resp)
	}
	return resp, nil
}

func apiError(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(resp.String())
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}

// call runs an enveloped request and returns its data.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (T, error) {
	var out envelope[T]

	resp, err := c.execute(ctx, method, path, "", body)
	if err != nil {
		return out.Data, err
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out.Data, fmt.Errorf("decode response: %w", err)
	}
	return out.Data, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.execute(ctx, http.MethodGet, "/", "", nil)
	return err
}

func (c *HTTPClient) authenticate(ctx context.Context, path, token string, body any) error {
	resp, err := c.execute(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return err
	}

	var creds Credentials
	if err := json.Unmarshal(resp.Body(), &creds); err != nil {
		return fmt.Errorf("decode credentials: %w", err)
	}
	c.setTokens(&creds)
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, username string) error {
	body := map[string]string{"email": email, "password": password}
	if username != "" {
		body["username"] = username
	}
	return c.authenticate(ctx, "/register/", "", body)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/login/", "", map[string]string{"email": email, "password": password})
}

// Renew trades the update token for a new token pair.
func (c *HTTPClient) Renew(ctx context.Context) error {
	creds := c.tokens()
	if creds == nil {
		return ErrUnauthorized
	}
	return c.authenticate(ctx, "/session/", creds.UpdateToken, nil)
}

// Secret calls the session-protected endpoint. An expired session is renewed
// once with the update token before the call is retried.
func (c *HTTPClient) Secret(ctx context.Context) (string, error) {
	creds := c.tokens()
	if creds == nil {
		return "", ErrUnauthorized
	}

	resp, err := c.execute(ctx, http.MethodGet, "/secret/", creds.SessionToken, nil)
	if errors.Is(err, ErrUnauthorized) {
		if err := c.Renew(ctx); err != nil {
			return "", err
		}
		resp, err = c.execute(ctx, http.MethodGet, "/secret/", c.tokens().SessionToken, nil)
	}
	if err != nil {
		return "", err
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return body.Message, nil
}

func (c *HTTPClient) ListOutfits(ctx context.Context) ([]*Outfit, error) {
	return call[[]*Outfit](ctx, c, http.MethodGet, "/outfits/", nil)
}

func outfitPath(id int64) string {
	return "/outfits/" + strconv.FormatInt(id, 10) + "/"
}

func (c *HTTPClient) GetOutfit(ctx context.Context, id int64) (*Outfit, error) {
	return call[*Outfit](ctx, c, http.MethodGet, outfitPath(id), nil)
}

func (c *HTTPClient) CreateOutfit(ctx context.Context, in NewOutfit) (*Outfit, error) {
	return call[*Outfit](ctx, c, http.MethodPost, "/outfits/", in)
}

func (c *HTTPClient) AssignTag(ctx context.Context, outfitID int64, name string) (*Outfit, error) {
	return call[*Outfit](ctx, c, http.MethodPost, outfitPath(outfitID)+"tag/", map[string]string{"tag_name": name})
}

func (c *HTTPClient) AddComment(ctx context.Context, outfitID int64, text string) (*Comment, error) {
	path := "/comment/" + strconv.FormatInt(outfitID, 10) + "/"
	return call[*Comment](ctx, c, http.MethodPost, path, map[string]string{"text": text})
}

// UploadImage sends raw image bytes. Images get a data URL carrying their
// sniffed MIME type; anything else is sent as bare base64 for the server to
// reject.
func (c *HTTPClient) UploadImage(ctx context.Context, data []byte) (*Asset, error) {
	payload := base64.StdEncoding.EncodeToString(data)
	if mt := mimetype.Detect(data); strings.HasPrefix(mt.String(), "image/") {
		payload = "data:" + mt.String() + ";base64," + payload
	}
	return call[*Asset](ctx, c, http.MethodPost, "/upload/", map[string]string{"image_data": payload})
}
