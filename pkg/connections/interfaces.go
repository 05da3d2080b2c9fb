package dbconnections

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
)

type CacheDBConnection interface {
	Collection(collectionName string) *mongo.Collection
}

type ObjectInfo struct {
	Size        int64
	ContentType string
}

type MinioBlockStorageConnection interface {
	GetObject(ctx context.Context, bucket, objectName string) (io.ReadCloser, ObjectInfo, error)
	PutObject(ctx context.Context, bucket, objectName string, objectSize int64, mimeType string, reader io.Reader) error
	ObjectExists(ctx context.Context, bucket, objectName string) (exists bool, err error)
}

var (
	ErrObjectNotFound = errors.New("object not found")
)
