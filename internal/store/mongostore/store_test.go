package mongostore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

func TestReadWrite(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx := context.Background()

	d, err := New(ctx, uri, ids.GenerateID("atmosphere_test"))
	if err != nil {
		t.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer func() {
		d.docs.Database().Drop(ctx)
		d.Close()
	}()

	if _, err := d.Read(ctx, store.Reports); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	for _, doc := range []string{`[]`, `[{"report_id":"rep_1"}]`} {
		if err := d.Write(ctx, store.Reports, []byte(doc)); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
	}
	data, err := d.Read(ctx, store.Reports)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(data) != `[{"report_id":"rep_1"}]` {
		t.Errorf("Expected last write, got %s", data)
	}
}
