package blobstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryLoadMissing(t *testing.T) {
	store := NewMemory()
	_, err := store.Load(context.Background(), "providers")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Save(ctx, "providers", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "providers")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("payload = %s", got)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	original := []byte(`[]`)
	if err := store.Save(ctx, "patients", original); err != nil {
		t.Fatal(err)
	}
	original[0] = 'x'

	got, err := store.Load(ctx, "patients")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[]` {
		t.Errorf("stored blob aliased caller slice: %s", got)
	}

	got[0] = 'y'
	again, _ := store.Load(ctx, "patients")
	if string(again) != `[]` {
		t.Errorf("loaded blob aliased store slice: %s", again)
	}
}
