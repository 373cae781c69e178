// Package blobstore provides the key-value persistence abstraction the clinic
// registry writes through. Each collection is stored as a single blob under a
// fixed string key; drivers exist for memory, Redis, DynamoDB and Postgres.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates no blob exists under the requested key.
var ErrNotFound = errors.New("blobstore: key not found")

// Store is the load/save-by-key contract. Save always overwrites the whole
// blob; there are no partial writes.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
