// Package blob abstracts the object store behind the minimal surface the
// ETL needs, so pipelines can run against Cloud Storage in production and
// an in-memory store in tests.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Download when the object does not exist.
var ErrNotFound = errors.New("object not found")

// Store is an object store scoped to a single bucket.
type Store interface {
	// Exists reports whether the named object is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Download returns the full content of the named object.
	// Returns ErrNotFound (possibly wrapped) when the object is absent.
	Download(ctx context.Context, name string) ([]byte, error)

	// Upload writes data to the named object with the given content type,
	// replacing any existing object.
	Upload(ctx context.Context, name string, data []byte, contentType string) error

	// Copy duplicates src onto dst server-side, replacing dst if present.
	Copy(ctx context.Context, src, dst string) error

	// Delete removes the named object.
	Delete(ctx context.Context, name string) error

	// List returns the names of all objects under the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
