package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

func newTestDriver(t *testing.T) *Driver {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	d, err := New(context.Background(), addr, 0, ids.GenerateID("atmosphere-test")+":")
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		for _, c := range store.Collections {
			d.client.Del(ctx, d.key(c))
		}
		d.Close()
	})
	return d
}

func TestReadWrite(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()

	if _, err := d.Read(ctx, store.Events); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := d.Write(ctx, store.Events, []byte(`{}`)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	data, err := d.Read(ctx, store.Events)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected {}, got %s", data)
	}
}
