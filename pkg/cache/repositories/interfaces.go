package cacherepositories

import (
	"context"
	"time"
)

// CachedImageModel records that a cache entry was produced from a source,
// so every variant of that source can be found and invalidated later.
type CachedImageModel struct {
	CacheKey  string `json:"cacheKey" bson:"cacheKey"`
	SourceURI string `json:"sourceURI" bson:"sourceURI"`

	MimeType    string   `json:"mimeType" bson:"mimeType"`
	Width       int      `json:"width" bson:"width"`
	Height      int      `json:"height" bson:"height"`
	Transformed []string `json:"transformed" bson:"transformed"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type InvalidationModel struct {
	ProjectName string `json:"projectName" bson:"projectName"`
	CommitHash  string `json:"commitHash" bson:"commitHash"`

	InvalidationDate       time.Time          `json:"invalidationDate" bson:"invalidationDate"`
	RequestedInvalidations []string           `json:"requestedInvalidations" bson:"requestedInvalidations"`
	DoneInvalidations      []string           `json:"doneInvalidations" bson:"doneInvalidations"`
	InvalidatedImages      []CachedImageModel `json:"invalidatedImages" bson:"invalidatedImages"`
	InvalidationError      *string            `json:"invalidationError" bson:"invalidationError"`
}

type CachedImagesRepository interface {
	CreateCachedImageInfo(ctx context.Context, info CachedImageModel) error
	DeleteCachedImageInfo(ctx context.Context, cacheKey string) error
	GetCachedImageInfo(ctx context.Context, cacheKey string) (CachedImageModel, error)
	GetCachedImageInfosOfSource(ctx context.Context, sourceURI string) ([]CachedImageModel, error)
}

type InvalidationsRepository interface {
	CreateInvalidation(ctx context.Context, invalidation InvalidationModel) error
	GetLatestInvalidation(ctx context.Context, projectName string) (InvalidationModel, error)
}
