package storage

import (
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid asset key")

// BlobStore serves question assets (mostly images) by key.
type BlobStore interface {
	Get(key string) (io.ReadCloser, error)
	Exists(key string) bool
}
