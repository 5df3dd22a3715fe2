package client

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer mimics the auth routes and a few resource routes.
type fakeServer struct {
	mu       sync.Mutex
	session  string
	update   string
	renewals int
	uploaded string
}

func (f *fakeServer) creds(w http.ResponseWriter) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_token":      f.session,
		"session_expiration": time.Now().Add(time.Hour),
		"update_token":       f.update,
	})
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	switch r.Method + " " + r.URL.Path {
	case "GET /":
		_, _ = io.WriteString(w, "Wardrobe!")
	case "POST /login/":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Incorrect email or password"}`)
			return
		}
		f.creds(w)
	case "POST /session/":
		if bearer != f.update {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Invalid update token"}`)
			return
		}
		f.renewals++
		f.session, f.update = "session-2", "update-2"
		f.creds(w)
	case "GET /secret/":
		if bearer != f.session || bearer == "expired" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Invalid session token"}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"You have successfully implemented sessions!"}`)
	case "GET /outfits/":
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":1,"title":"Summer","tags":[{"id":1,"name":"casual"}]}]}`)
	case "GET /outfits/9/":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"error":"Outfit not found"}`)
	case "POST /upload/":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.uploaded = body["image_data"]
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":3,"url":"https://cdn.test/ABC.png","width":1,"height":1}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeServer) snapshot() (renewals int, uploaded string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renewals, f.uploaded
}

func newClient(t *testing.T, f *fakeServer) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second)
}

func TestHTTPClient_Ping(t *testing.T) {
	c := newClient(t, &fakeServer{})
	require.NoError(t, c.Ping(context.Background()))

	down := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	assert.ErrorIs(t, down.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_LoginAndSecret(t *testing.T) {
	ctx := context.Background()
	f := &fakeServer{session: "session-1", update: "update-1"}
	c := newClient(t, f)

	_, err := c.Secret(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = c.Login(ctx, "ann@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
	assert.False(t, c.LoggedIn())

	require.NoError(t, c.Login(ctx, "ann@example.com", "pw"))
	assert.True(t, c.LoggedIn())

	msg, err := c.Secret(ctx)
	require.NoError(t, err)
	assert.Equal(t, "You have successfully implemented sessions!", msg)
	renewals, _ := f.snapshot()
	assert.Equal(t, 0, renewals)

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestHTTPClient_SecretRenewsExpiredSession(t *testing.T) {
	ctx := context.Background()
	f := &fakeServer{session: "session-1", update: "update-1"}
	c := newClient(t, f)
	require.NoError(t, c.Login(ctx, "ann@example.com", "pw"))

	// the server forgets the session, as if it expired
	f.mu.Lock()
	f.session = "expired"
	f.mu.Unlock()

	msg, err := c.Secret(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
	renewals, _ := f.snapshot()
	assert.Equal(t, 1, renewals)
	assert.Equal(t, "session-2", c.tokens().SessionToken)
	assert.Equal(t, "update-2", c.tokens().UpdateToken)
}

func TestHTTPClient_Outfits(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, &fakeServer{})

	list, err := c.ListOutfits(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Summer", list[0].Title)
	assert.Equal(t, "casual", list[0].Tags[0].Name)

	_, err = c.GetOutfit(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Outfit not found", apiErr.Message)
}

func TestHTTPClient_UploadImage(t *testing.T) {
	ctx := context.Background()
	f := &fakeServer{}
	c := newClient(t, f)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))

	asset, err := c.UploadImage(ctx, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/ABC.png", asset.URL)
	_, uploaded := f.snapshot()
	assert.True(t, strings.HasPrefix(uploaded, "data:image/png;base64,"))

	_, err = c.UploadImage(ctx, []byte("plain text"))
	require.NoError(t, err)
	_, uploaded = f.snapshot()
	assert.Equal(t, "cGxhaW4gdGV4dA==", uploaded)
}
