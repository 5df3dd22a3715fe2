// Package blobstore uploads image bytes to public object storage.
package blobstore

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by MemoryStore.Get for unknown keys.
var ErrObjectNotFound = errors.New("object not found")

// Store writes publicly readable objects. The public address of an object
// is BaseURL() + "/" + key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Delete(ctx context.Context, key string) error
	BaseURL() string
}
