package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
)

// Collection names one independently persisted entity collection.
type Collection string

const (
	Users         Collection = "users"
	Businesses    Collection = "businesses"
	Media         Collection = "media"
	Circles       Collection = "circles"
	Events        Collection = "events"
	Promotions    Collection = "promotions"
	Notifications Collection = "notifications"
	Reports       Collection = "reports"
)

var Collections = []Collection{Users, Businesses, Media, Circles, Events, Promotions, Notifications, Reports}

// Kind is the JSON container shape of a collection.
type Kind int

const (
	Mapping Kind = iota
	Sequence
)

var (
	ErrNotFound          = errors.New("store: collection not found")
	ErrUnknownCollection = errors.New("store: unknown collection")
)

func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

func (c Collection) Kind() Kind {
	if c == Media || c == Reports {
		return Sequence
	}
	return Mapping
}

// Empty returns the default document for the collection.
func (c Collection) Empty() []byte {
	if c.Kind() == Sequence {
		return []byte("[]")
	}
	return []byte("{}")
}

// Driver reads and writes raw collection documents. Read returns ErrNotFound
// when the collection has never been written.
type Driver interface {
	Read(ctx context.Context, c Collection) ([]byte, error)
	Write(ctx context.Context, c Collection, data []byte) error
	Close() error
}

// Store loads and saves whole typed collections.
type Store interface {
	Load(ctx context.Context, c Collection, v any) error
	Save(ctx context.Context, c Collection, v any) error
}

// DocStore is a Store over a Driver. Missing or corrupt documents are replaced
// with the collection's empty default; only write failures reach the caller.
type DocStore struct {
	driver Driver
}

func New(driver Driver) *DocStore {
	return &DocStore{driver: driver}
}

func (s *DocStore) Close() error {
	return s.driver.Close()
}

func (s *DocStore) Load(ctx context.Context, c Collection, v any) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("store: load %s: destination must be a non-nil pointer", c)
	}

	data, err := s.driver.Read(ctx, c)
	switch {
	case err == nil:
		if !hasShape(data, c.Kind()) {
			log.Printf("store: %s has the wrong shape, reinitializing", c)
			break
		}
		target.Elem().SetZero()
		decodeErr := json.Unmarshal(data, v)
		if decodeErr == nil {
			return nil
		}
		log.Printf("store: %s does not decode, reinitializing: %v", c, decodeErr)
	case errors.Is(err, ErrNotFound):
	default:
		log.Printf("store: read %s failed, reinitializing: %v", c, err)
	}

	empty := c.Empty()
	if err := s.driver.Write(ctx, c, empty); err != nil {
		return fmt.Errorf("store: reinitialize %s: %w", c, err)
	}
	target.Elem().SetZero()
	return json.Unmarshal(empty, v)
}

func (s *DocStore) Save(ctx context.Context, c Collection, v any) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c, err)
	}
	if bytes.Equal(data, []byte("null")) {
		data = c.Empty()
	}
	if !hasShape(data, c.Kind()) {
		return fmt.Errorf("store: encode %s: value is not a JSON %s", c, kindName(c.Kind()))
	}
	if err := s.driver.Write(ctx, c, data); err != nil {
		return fmt.Errorf("store: save %s: %w", c, err)
	}
	return nil
}

func hasShape(data []byte, kind Kind) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return false
	}
	if kind == Sequence {
		return data[0] == '['
	}
	return data[0] == '{'
}

func kindName(kind Kind) string {
	if kind == Sequence {
		return "array"
	}
	return "object"
}
