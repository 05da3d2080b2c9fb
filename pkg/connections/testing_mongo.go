package dbconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CacheDBTestingConnection struct {
	testDBName string
	client     *mongo.Client
}

var _ CacheDBConnection = (*CacheDBTestingConnection)(nil)

func NewCacheDBTestingConnection(t *testing.T) *CacheDBTestingConnection {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(os.Getenv("IMLOAD_MONGO_CONNECTION_STRING")))
	if err != nil {
		t.Fatalf("Cannot connect to mongodb: %v", err)
	}

	testDBName := generateTestDBName(t, client)
	conn := &CacheDBTestingConnection{testDBName, client}

	t.Cleanup(conn.Cleanup)
	return conn
}

func (c *CacheDBTestingConnection) Collection(name string) *mongo.Collection {
	return c.client.Database(c.testDBName).Collection(name)
}

func (c *CacheDBTestingConnection) Cleanup() {
	c.client.Database(c.testDBName).Drop(context.Background())
	c.client.Disconnect(context.Background())
}

func generateTestDBName(t *testing.T, client *mongo.Client) string {
	databases, err := client.ListDatabaseNames(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("Cannot fetch database names list: %v", err)
	}

	for i := 0; i < 10; i++ {
		id := "imload-test-" + uuid.New().String()
		if !contains(databases, id) {
			return id
		}
	}

	t.Fatalf("Cannot generate unique test DB name")
	return ""
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}
