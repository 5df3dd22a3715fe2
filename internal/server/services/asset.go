package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/server/blobstore"
	"github.com/dmitrijs2005/wardrobe/internal/server/config"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wardrobe/internal/shared"
	"github.com/gabriel-vasile/mimetype"
)

const (
	saltLength           = 16
	defaultUploadTimeout = 30 * time.Second
)

var dataURLPrefix = regexp.MustCompile(`^data:([^;,]+);base64,`)

// extensions maps accepted MIME types to stored file extensions.
var extensions = map[string]string{
	"image/png":  "png",
	"image/gif":  "gif",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
}

// AssetService turns base64 image payloads into stored, publicly readable
// assets.
type AssetService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	store         blobstore.Store
	uploadTimeout time.Duration
	logger        logging.Logger
	now           func() time.Time
}

func NewAssetService(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store, cfg *config.Config, logger logging.Logger) *AssetService {
	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	return &AssetService{
		db:            db,
		repomanager:   m,
		store:         store,
		uploadTimeout: timeout,
		logger:        logger,
		now:           time.Now,
	}
}

// StoreImage decodes payload, uploads it under a random key and records the
// asset. payload is raw base64 or a data URL such as
// "data:image/png;base64,...". Either the returned asset is fully stored or
// nothing is kept.
func (s *AssetService) StoreImage(ctx context.Context, payload string) (*models.Asset, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, common.ErrInvalidInput
	}

	var declared string
	if m := dataURLPrefix.FindStringSubmatch(payload); m != nil {
		declared = strings.ToLower(m[1])
		payload = payload[len(m[0]):]
		if _, ok := extensions[declared]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, declared)
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", common.ErrAssetCreationFailed, err)
	}

	detected := mimetype.Detect(data).String()
	mime := declared
	if mime == "" {
		mime = detected
	}
	ext, ok := extensions[mime]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, mime)
	}
	// the bytes win over the data URL label
	if actual, ok := extensions[detected]; ok {
		if actual != ext {
			return nil, fmt.Errorf("%w: declared %s but content is %s", common.ErrInvalidInput, declared, detected)
		}
		mime = detected
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", common.ErrAssetCreationFailed, err)
	}

	salt, err := shared.RandomString(saltLength, shared.UppercaseDigits)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", common.ErrAssetCreationFailed, err)
	}

	asset := &models.Asset{
		BaseURL:   s.store.BaseURL(),
		Salt:      salt,
		Extension: ext,
		Width:     cfg.Width,
		Height:    cfg.Height,
		CreatedAt: s.now(),
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if err := s.store.Put(uploadCtx, asset.Key(), mime, data); err != nil {
		return nil, fmt.Errorf("%w: upload: %v", common.ErrAssetCreationFailed, err)
	}

	if _, err := s.repomanager.Assets(s.db).Create(ctx, asset); err != nil {
		s.discard(ctx, asset.Key())
		return nil, fmt.Errorf("%w: save: %v", common.ErrAssetCreationFailed, err)
	}

	return asset, nil
}

// discard removes an uploaded object whose row could not be saved.
func (s *AssetService) discard(ctx context.Context, key string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.uploadTimeout)
	defer cancel()

	if err := s.store.Delete(cleanupCtx, key); err != nil {
		s.logger.Warn(ctx, "orphaned asset object", "key", key, "error", err)
	}
}
