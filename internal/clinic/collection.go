package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dentalia/clinic-registry/internal/blobstore"
	"github.com/dentalia/clinic-registry/internal/observability/metrics"
)

type record interface {
	RecordID() string
}

// collection holds one entity kind in memory, mirrored to the blob store
// under a fixed key. Every successful mutation writes the whole record set
// back (write-through, no batching).
type collection[T record] struct {
	store   blobstore.Store
	key     string
	items   []T
	metrics *metrics.RegistryMetrics
}

// loadCollection reads the blob under key. A missing blob is a cold start:
// the seed is held in memory and first written on the first mutation. A
// malformed blob is fatal.
func loadCollection[T record](ctx context.Context, store blobstore.Store, key string, seed []T, m *metrics.RegistryMetrics) (*collection[T], error) {
	c := &collection[T]{store: store, key: key, metrics: m}
	raw, err := store.Load(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		c.items = append([]T(nil), seed...)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("clinic: load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &c.items); err != nil {
		return nil, fmt.Errorf("clinic: decode %s: %w", key, err)
	}
	return c, nil
}

// apply replaces the record set and persists it. On a persist failure the
// previous record set is restored, so callers never observe a state the
// store did not accept.
func (c *collection[T]) apply(ctx context.Context, next []T) error {
	prev := c.items
	c.items = next
	if err := c.persist(ctx); err != nil {
		c.items = prev
		return err
	}
	return nil
}

func (c *collection[T]) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("clinic: encode %s: %w", c.key, err)
	}

	start := time.Now()
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("clinic: persist %s: %w", c.key, err)
	}
	c.metrics.ObservePersist(c.key, time.Since(start).Seconds())
	return nil
}

func (c *collection[T]) find(id string) (T, bool) {
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// snapshot returns a copy preserving insertion order, which is the tie-break
// order for sorted list views.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// replaced returns a copy of the record set with the record matching id
// swapped for rec. The second result is false when no record matches.
func (c *collection[T]) replaced(id string, rec T) ([]T, bool) {
	found := false
	next := make([]T, len(c.items))
	for i, item := range c.items {
		if item.RecordID() == id {
			next[i] = rec
			found = true
		} else {
			next[i] = item
		}
	}
	return next, found
}

// removed returns a copy of the record set without the record matching id.
// The second result is false when no record matches.
func (c *collection[T]) removed(id string) ([]T, bool) {
	next := make([]T, 0, len(c.items))
	found := false
	for _, item := range c.items {
		if item.RecordID() == id {
			found = true
			continue
		}
		next = append(next, item)
	}
	return next, found
}
