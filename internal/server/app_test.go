package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/server/blobstore"
	"github.com/dmitrijs2005/wardrobe/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "sqlite://" + filepath.Join(t.TempDir(), "app.db")
	c.BlobBackend = config.BlobBackendMemory
	c.LogFormat = "text"
	return c
}

func TestNewBlobStore(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)

	s, err := newBlobStore(ctx, c)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.MemoryStore{}, s)

	c.BlobBackend = config.BlobBackendS3
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	s, err = newBlobStore(ctx, c)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.S3Store{}, s)

	c.BlobBackend = "ftp"
	_, err = newBlobStore(ctx, c)
	assert.Error(t, err)
}

func TestNewApp_Errors(t *testing.T) {
	ctx := context.Background()

	c := testConfig(t)
	c.LogFormat = "xml"
	_, err := NewApp(ctx, c)
	assert.ErrorContains(t, err, "logger init error")

	c = testConfig(t)
	c.BlobBackend = "ftp"
	_, err = NewApp(ctx, c)
	assert.ErrorContains(t, err, "blob store init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.Error(t, app.db.Ping())
}
