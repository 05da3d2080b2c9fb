package dbconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

type MinioBlockStorageTestingConnection struct {
	*MinioBlockStorageProductionConnection
	Bucket string
}

func NewMinioBlockStorageTestingConnection(t *testing.T) *MinioBlockStorageTestingConnection {
	endpoint := os.Getenv("IMLOAD_MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = testingServerEndpoint
	}

	conn, err := NewMinioBlockStorageProductionConnection(MinioBlockStorageProductionConnectionConfig{
		Endpoint:  endpoint,
		AccessKey: testingServerAccessKey,
		SecretKey: testingServerSecretKey,
		UseSSL:    false,
	})
	if err != nil {
		t.Fatalf("Error when connecting to minio block storage: %v", err)
	}

	bucket := uuid.New().String() + "-testing-bucket"
	if err := conn.ensureBucket(context.Background(), bucket, "us-east-1"); err != nil {
		t.Fatalf("Error when creating testing bucket: %v", err)
	}

	return &MinioBlockStorageTestingConnection{conn, bucket}
}

const testingServerEndpoint = "IntegrationTests.Imload.Minio:9000"
const testingServerAccessKey = "minio"
const testingServerSecretKey = "minio123"
