package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *Redis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)
	return NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestRedisLoadMissing(t *testing.T) {
	store := newRedisStore(t)
	_, err := store.Load(context.Background(), "appointments")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRedisRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	payload := []byte(`[{"id":"a1","providerId":"p1"}]`)
	if err := store.Save(ctx, "appointments", payload); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "appointments")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %s", got)
	}
}

func TestRedisOverwrite(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "providers", []byte(`["old"]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "providers", []byte(`["new"]`)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "providers")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `["new"]` {
		t.Errorf("payload = %s, whole-blob overwrite expected", got)
	}
}
