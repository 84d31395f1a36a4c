package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/TEJ12356788/atmosphere/internal/store"
)

// Driver keeps one <collection>.json file per collection under dir.
type Driver struct {
	dir string
}

func New(dir string) (*Driver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Driver{dir: dir}, nil
}

func (d *Driver) Path(c store.Collection) string {
	return filepath.Join(d.dir, string(c)+".json")
}

func (d *Driver) Read(_ context.Context, c store.Collection) ([]byte, error) {
	data, err := os.ReadFile(d.Path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	return data, err
}

// Write replaces the collection file atomically: the data goes to a temp file
// in the same directory which is then renamed over the target.
func (d *Driver) Write(_ context.Context, c store.Collection, data []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.dir, "."+string(c)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, d.Path(c)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}
