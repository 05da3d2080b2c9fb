package dbconnections

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioBlockStorageProductionConnectionConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type MinioBlockStorageProductionConnection struct {
	config MinioBlockStorageProductionConnectionConfig
	client *minio.Client
}

var _ MinioBlockStorageConnection = (*MinioBlockStorageProductionConnection)(nil)

func NewMinioBlockStorageProductionConnection(config MinioBlockStorageProductionConnectionConfig) (*MinioBlockStorageProductionConnection, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioBlockStorageProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *MinioBlockStorageProductionConnection) GetObject(ctx context.Context, bucket, objectName string) (io.ReadCloser, ObjectInfo, error) {
	object, err := c.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapMinioError(err)
	}

	// GetObject is lazy, Stat performs the actual request.
	stat, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, ObjectInfo{}, mapMinioError(err)
	}

	return object, ObjectInfo{Size: stat.Size, ContentType: stat.ContentType}, nil
}

func (c *MinioBlockStorageProductionConnection) PutObject(
	ctx context.Context,
	bucket string,
	objectName string,
	objectSize int64,
	mimeType string,
	reader io.Reader,
) error {
	_, err := c.client.PutObject(
		ctx,
		bucket,
		objectName,
		reader,
		objectSize,
		minio.PutObjectOptions{ContentType: mimeType},
	)
	return err
}

func (c *MinioBlockStorageProductionConnection) ObjectExists(ctx context.Context, bucket, objectName string) (exists bool, err error) {
	_, err = c.client.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *MinioBlockStorageProductionConnection) ensureBucket(ctx context.Context, bucket, location string) error {
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil || exists {
		return err
	}

	return c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location})
}

func mapMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrObjectNotFound
	}
	return err
}
