package cacherepositories

import (
	"context"
	"sync"
)

// In-memory repositories are used when no MongoDB connection is configured.
// Their content does not survive a restart.

type memoryCachedImagesRepository struct {
	lock   sync.RWMutex
	images map[string]CachedImageModel
}

var _ CachedImagesRepository = (*memoryCachedImagesRepository)(nil)

func NewMemoryCachedImagesRepository() CachedImagesRepository {
	return &memoryCachedImagesRepository{images: map[string]CachedImageModel{}}
}

func (repo *memoryCachedImagesRepository) CreateCachedImageInfo(ctx context.Context, info CachedImageModel) error {
	if info.CacheKey == "" || info.SourceURI == "" {
		return ErrCachedImageNotAllowed
	}

	repo.lock.Lock()
	defer repo.lock.Unlock()

	if _, exists := repo.images[info.CacheKey]; exists {
		return ErrCachedImageAlreadyExists
	}

	repo.images[info.CacheKey] = info
	return nil
}

func (repo *memoryCachedImagesRepository) DeleteCachedImageInfo(ctx context.Context, cacheKey string) error {
	repo.lock.Lock()
	defer repo.lock.Unlock()

	if _, exists := repo.images[cacheKey]; !exists {
		return ErrCachedImageNotFound
	}

	delete(repo.images, cacheKey)
	return nil
}

func (repo *memoryCachedImagesRepository) GetCachedImageInfo(ctx context.Context, cacheKey string) (CachedImageModel, error) {
	repo.lock.RLock()
	defer repo.lock.RUnlock()

	info, exists := repo.images[cacheKey]
	if !exists {
		return CachedImageModel{}, ErrCachedImageNotFound
	}

	return info, nil
}

func (repo *memoryCachedImagesRepository) GetCachedImageInfosOfSource(ctx context.Context, sourceURI string) ([]CachedImageModel, error) {
	repo.lock.RLock()
	defer repo.lock.RUnlock()

	infos := []CachedImageModel{}
	for _, info := range repo.images {
		if info.SourceURI == sourceURI {
			infos = append(infos, info)
		}
	}

	return infos, nil
}

type memoryInvalidationsRepository struct {
	lock          sync.RWMutex
	invalidations map[string]InvalidationModel
}

var _ InvalidationsRepository = (*memoryInvalidationsRepository)(nil)

func NewMemoryInvalidationsRepository() InvalidationsRepository {
	return &memoryInvalidationsRepository{invalidations: map[string]InvalidationModel{}}
}

func (r *memoryInvalidationsRepository) CreateInvalidation(ctx context.Context, invalidation InvalidationModel) error {
	if err := validateInvalidation(invalidation); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	latest, exists := r.invalidations[invalidation.ProjectName]
	if !exists || !invalidation.InvalidationDate.Before(latest.InvalidationDate) {
		r.invalidations[invalidation.ProjectName] = invalidation
	}

	return nil
}

func (r *memoryInvalidationsRepository) GetLatestInvalidation(ctx context.Context, projectName string) (InvalidationModel, error) {
	if projectName == "" {
		return InvalidationModel{}, ErrProjectNameNotAllowed
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	invalidation, exists := r.invalidations[projectName]
	if !exists {
		return InvalidationModel{}, ErrProjectNotFound
	}

	return invalidation, nil
}
