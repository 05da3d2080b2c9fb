package cacherepositories

import (
	"context"
	"errors"

	dbconnections "github.com/thebartekbanach/imload/pkg/connections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type cachedImagesRepository struct {
	conn dbconnections.CacheDBConnection
}

var _ CachedImagesRepository = (*cachedImagesRepository)(nil)

func NewCachedImagesRepository(conn dbconnections.CacheDBConnection) CachedImagesRepository {
	return &cachedImagesRepository{conn}
}

func (repo *cachedImagesRepository) CreateCachedImageInfo(ctx context.Context, info CachedImageModel) error {
	if info.CacheKey == "" || info.SourceURI == "" {
		return ErrCachedImageNotAllowed
	}

	collection := repo.conn.Collection("cachedImages")

	result := collection.FindOne(ctx, bson.M{"cacheKey": info.CacheKey})
	if result.Err() == nil {
		return ErrCachedImageAlreadyExists
	} else if result.Err() != mongo.ErrNoDocuments {
		return result.Err()
	}

	_, err := collection.InsertOne(ctx, info)
	return err
}

func (repo *cachedImagesRepository) DeleteCachedImageInfo(ctx context.Context, cacheKey string) error {
	collection := repo.conn.Collection("cachedImages")

	result, err := collection.DeleteOne(ctx, bson.M{"cacheKey": cacheKey})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrCachedImageNotFound
	}

	return nil
}

func (repo *cachedImagesRepository) GetCachedImageInfo(ctx context.Context, cacheKey string) (CachedImageModel, error) {
	collection := repo.conn.Collection("cachedImages")

	var info CachedImageModel
	if err := collection.FindOne(ctx, bson.M{"cacheKey": cacheKey}).Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return info, ErrCachedImageNotFound
		}

		return CachedImageModel{}, err
	}

	return info, nil
}

func (repo *cachedImagesRepository) GetCachedImageInfosOfSource(ctx context.Context, sourceURI string) ([]CachedImageModel, error) {
	collection := repo.conn.Collection("cachedImages")

	cursor, err := collection.Find(ctx, bson.M{"sourceURI": sourceURI})
	if err != nil {
		return nil, err
	}

	infos := []CachedImageModel{}
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, err
	}

	return infos, nil
}

var (
	ErrCachedImageNotFound      = errors.New("cached image not found")
	ErrCachedImageAlreadyExists = errors.New("cached image already exists")
	ErrCachedImageNotAllowed    = errors.New("cached image must have cache key and source uri")
)
