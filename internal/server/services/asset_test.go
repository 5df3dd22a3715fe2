package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/server/blobstore"
	"github.com/dmitrijs2005/wardrobe/internal/server/config"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/assets"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicBase = "https://wardrobe.s3-us-east-2.amazonaws.com"

func encodeImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func dataURL(mime string, b []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

func newAssetServiceForTest(t *testing.T, store blobstore.Store, m repomanager.RepositoryManager) (*AssetService, repomanager.RepositoryManager) {
	t.Helper()
	db, sqlManager := newTestDB(t)
	if m == nil {
		m = sqlManager
	}
	return NewAssetService(db, m, store, testConfig(), logging.Nop()), sqlManager
}

func TestStoreImage_Formats(t *testing.T) {
	tests := []struct {
		name    string
		payload func(t *testing.T) string
		ext     string
		mime    string
		w, h    int
	}{
		{name: "png data url", payload: func(t *testing.T) string { return dataURL("image/png", encodeImage(t, "png", 4, 3)) }, ext: "png", mime: "image/png", w: 4, h: 3},
		{name: "gif data url", payload: func(t *testing.T) string { return dataURL("image/gif", encodeImage(t, "gif", 2, 5)) }, ext: "gif", mime: "image/gif", w: 2, h: 5},
		{name: "jpeg data url", payload: func(t *testing.T) string { return dataURL("image/jpeg", encodeImage(t, "jpeg", 8, 8)) }, ext: "jpg", mime: "image/jpeg", w: 8, h: 8},
		{name: "raw base64 is sniffed", payload: func(t *testing.T) string {
			return base64.StdEncoding.EncodeToString(encodeImage(t, "png", 6, 7))
		}, ext: "png", mime: "image/png", w: 6, h: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore(publicBase)
			s, m := newAssetServiceForTest(t, store, nil)

			asset, err := s.StoreImage(context.Background(), tt.payload(t))
			require.NoError(t, err)

			assert.NotZero(t, asset.ID)
			assert.Equal(t, tt.ext, asset.Extension)
			assert.Equal(t, tt.w, asset.Width)
			assert.Equal(t, tt.h, asset.Height)
			assert.Regexp(t, `^[A-Z0-9]{16}$`, asset.Salt)
			assert.Equal(t, publicBase+"/"+asset.Salt+"."+tt.ext, asset.URL())

			obj, err := store.Get(asset.Key())
			require.NoError(t, err)
			assert.Equal(t, tt.mime, obj.ContentType)

			saved, err := m.Assets(s.db).Get(context.Background(), asset.ID)
			require.NoError(t, err)
			assert.Equal(t, asset.Salt, saved.Salt)
		})
	}
}

func TestStoreImage_Failures(t *testing.T) {
	bmp := []byte("BM\x1e\x00\x00\x00\x00\x00\x00\x00\x1a\x00\x00\x00")
	gifBytes := encodeImage(t, "gif", 2, 2)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "empty", payload: "  ", wantErr: common.ErrInvalidInput},
		{name: "bad base64", payload: "data:image/png;base64,@@@", wantErr: common.ErrAssetCreationFailed},
		{name: "bmp is unsupported", payload: dataURL("image/bmp", bmp), wantErr: common.ErrUnsupportedFormat},
		{name: "pdf data url is unsupported", payload: "data:application/pdf;base64,JVBERi0=", wantErr: common.ErrUnsupportedFormat},
		{name: "text data url is unsupported", payload: dataURL("text/plain", []byte("hello")), wantErr: common.ErrUnsupportedFormat},
		{name: "sniffed text is unsupported", payload: base64.StdEncoding.EncodeToString([]byte("hello")), wantErr: common.ErrUnsupportedFormat},
		{name: "declared png but garbage", payload: dataURL("image/png", []byte("not an image")), wantErr: common.ErrAssetCreationFailed},
		{name: "gif labelled as png", payload: dataURL("image/png", gifBytes), wantErr: common.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore(publicBase)
			s, m := newAssetServiceForTest(t, store, nil)

			_, err := s.StoreImage(context.Background(), tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)

			list, err := m.Assets(s.db).List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.Equal(t, 0, store.Len())
		})
	}
}

type failingStore struct {
	*blobstore.MemoryStore
	putErr error
	block  bool
}

func (f *failingStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryStore.Put(ctx, key, contentType, body)
}

func TestStoreImage_UploadFailure(t *testing.T) {
	store := &failingStore{MemoryStore: blobstore.NewMemoryStore(publicBase), putErr: errors.New("s3 down")}
	s, m := newAssetServiceForTest(t, store, nil)

	_, err := s.StoreImage(context.Background(), dataURL("image/png", encodeImage(t, "png", 1, 1)))
	assert.ErrorIs(t, err, common.ErrAssetCreationFailed)

	list, err := m.Assets(s.db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStoreImage_UploadTimeout(t *testing.T) {
	store := &failingStore{MemoryStore: blobstore.NewMemoryStore(publicBase), block: true}
	s, _ := newAssetServiceForTest(t, store, nil)
	s.uploadTimeout = 20 * time.Millisecond

	start := time.Now()
	_, err := s.StoreImage(context.Background(), dataURL("image/png", encodeImage(t, "png", 1, 1)))
	assert.ErrorIs(t, err, common.ErrAssetCreationFailed)
	assert.Less(t, time.Since(start), 5*time.Second)
}

type brokenAssetsManager struct {
	repomanager.RepositoryManager
}

type brokenAssets struct {
	assets.Repository
}

func (brokenAssets) Create(context.Context, *models.Asset) (*models.Asset, error) {
	return nil, errors.New("insert failed")
}

func (m brokenAssetsManager) Assets(db dbx.DBTX) assets.Repository {
	return brokenAssets{m.RepositoryManager.Assets(db)}
}

func TestStoreImage_InsertFailureRemovesObject(t *testing.T) {
	store := blobstore.NewMemoryStore(publicBase)
	m := brokenAssetsManager{repomanager.NewSQLRepositoryManager(dbx.SQLite)}
	s, _ := newAssetServiceForTest(t, store, m)

	_, err := s.StoreImage(context.Background(), dataURL("image/png", encodeImage(t, "png", 1, 1)))
	assert.ErrorIs(t, err, common.ErrAssetCreationFailed)
	assert.Equal(t, 0, store.Len())
}

func TestNewAssetService_DefaultTimeout(t *testing.T) {
	db, m := newTestDB(t)
	s := NewAssetService(db, m, blobstore.NewMemoryStore(""), &config.Config{}, logging.Nop())
	assert.Equal(t, defaultUploadTimeout, s.uploadTimeout)
}
