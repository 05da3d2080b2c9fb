package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
)

type invalidationService struct {
	invalidationsRepository cacherepositories.InvalidationsRepository
	cacheService            CacheService
	logger                  logrus.FieldLogger
}

var _ InvalidationService = (*invalidationService)(nil)

func NewInvalidationService(invalidationsRepository cacherepositories.InvalidationsRepository, cacheService CacheService, logger logrus.FieldLogger) InvalidationService {
	return &invalidationService{
		invalidationsRepository,
		cacheService,
		logger.WithField("component", "invalidationService"),
	}
}

func (s *invalidationService) GetLastKnownInvalidation(ctx context.Context, projectName string) (cacherepositories.InvalidationModel, error) {
	if projectName == "" {
		return cacherepositories.InvalidationModel{}, cacherepositories.ErrProjectNameNotAllowed
	}

	return s.invalidationsRepository.GetLatestInvalidation(ctx, projectName)
}

// Invalidate removes every cached variant of the given source URIs and
// records the outcome, also when it stopped on an error.
func (s *invalidationService) Invalidate(ctx context.Context, projectName, latestCommitHash string, urls []string) (cacherepositories.InvalidationModel, error) {
	if projectName == "" {
		return cacherepositories.InvalidationModel{}, cacherepositories.ErrProjectNameNotAllowed
	}

	if latestCommitHash == "" {
		return cacherepositories.InvalidationModel{}, cacherepositories.ErrCommitHashNotAllowed
	}

	invalidationInfo := cacherepositories.InvalidationModel{
		ProjectName:            projectName,
		CommitHash:             latestCommitHash,
		RequestedInvalidations: urls,
		DoneInvalidations:      []string{},
		InvalidatedImages:      []cacherepositories.CachedImageModel{},
	}

	logger := s.logger.WithFields(logrus.Fields{"project": projectName, "commit": latestCommitHash})
	var invalidationError error

	for _, url := range urls {
		invalidatedEntries, err := s.cacheService.InvalidateAllEntriesForURL(ctx, url)
		invalidationInfo.InvalidatedImages = append(invalidationInfo.InvalidatedImages, invalidatedEntries...)

		if err != nil {
			logger.WithError(err).WithField("source", url).Error("invalidation stopped")
			invalidationError = err
			errText := err.Error()
			invalidationInfo.InvalidationError = &errText
			break
		}

		invalidationInfo.DoneInvalidations = append(invalidationInfo.DoneInvalidations, url)
	}

	invalidationInfo.InvalidationDate = time.Now()
	if err := s.invalidationsRepository.CreateInvalidation(ctx, invalidationInfo); err != nil {
		return invalidationInfo, err
	}

	logger.WithFields(logrus.Fields{
		"done":        len(invalidationInfo.DoneInvalidations),
		"invalidated": len(invalidationInfo.InvalidatedImages),
	}).Info("invalidation recorded")

	return invalidationInfo, invalidationError
}
