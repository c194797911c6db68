package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a storage key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for reading and writing binary objects by key.
// Model artifacts are read through it; careerctl publishes them with SaveWithKey.
type ObjectStore interface {
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}
