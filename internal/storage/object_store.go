// Package storage abstracts the blob store backing uploaded media.
package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore persists uploaded media and returns public URLs.
// Implementations must make Delete idempotent: deleting a URL that no
// longer resolves is not an error.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewKey builds a collision-free object key under prefix, keeping the
// original file extension.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}
