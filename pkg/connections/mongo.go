package dbconnections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CacheDBConfig struct {
	ConnectionString string
	Database         string
}

type CacheDBProductionConnection struct {
	config CacheDBConfig
	client *mongo.Client
}

var _ CacheDBConnection = (*CacheDBProductionConnection)(nil)

func NewCacheDBProductionConnection(ctx context.Context, config CacheDBConfig) (*CacheDBProductionConnection, error) {
	client, err := mongo.NewClient(options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	err = client.Connect(ctx)
	if err != nil {
		return nil, err
	}

	if config.Database == "" {
		config.Database = "imload"
	}

	return &CacheDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *CacheDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(collectionName)
}

func (c *CacheDBProductionConnection) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
