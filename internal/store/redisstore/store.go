package redisstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/TEJ12356788/atmosphere/internal/store"
)

// Driver keeps each collection document under the key prefix+collection.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(ctx context.Context, addr string, db int, prefix string) (*Driver, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Driver{client: client, prefix: prefix}, nil
}

func (d *Driver) key(c store.Collection) string {
	return d.prefix + string(c)
}

func (d *Driver) Read(ctx context.Context, c store.Collection) ([]byte, error) {
	data, err := d.client.Get(ctx, d.key(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	return data, err
}

func (d *Driver) Write(ctx context.Context, c store.Collection, data []byte) error {
	return d.client.Set(ctx, d.key(c), data, 0).Err()
}

func (d *Driver) Close() error {
	return d.client.Close()
}
