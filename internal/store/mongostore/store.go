package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TEJ12356788/atmosphere/internal/store"
)

const collectionName = "collections"

type document struct {
	Name string `bson:"_id"`
	Data string `bson:"data"`
}

// Driver keeps each collection document as one Mongo document keyed by name.
type Driver struct {
	client *mongo.Client
	docs   *mongo.Collection
}

func New(ctx context.Context, uri, database string) (*Driver, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return &Driver{
		client: client,
		docs:   client.Database(database).Collection(collectionName),
	}, nil
}

func (d *Driver) Read(ctx context.Context, c store.Collection) ([]byte, error) {
	var doc document
	err := d.docs.FindOne(ctx, bson.M{"_id": string(c)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

func (d *Driver) Write(ctx context.Context, c store.Collection, data []byte) error {
	_, err := d.docs.ReplaceOne(ctx,
		bson.M{"_id": string(c)},
		document{Name: string(c), Data: string(data)},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (d *Driver) Close() error {
	return d.client.Disconnect(context.Background())
}
