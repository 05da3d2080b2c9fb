package cache_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/thebartekbanach/imload/pkg/cache"
	mock_cache "github.com/thebartekbanach/imload/pkg/cache/mocks"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
	mock_cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories/mocks"
)

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

type invalidationEqMatcher struct {
	expected cacherepositories.InvalidationModel
}

func invalidationEq(expected cacherepositories.InvalidationModel) gomock.Matcher {
	return &invalidationEqMatcher{expected}
}

func errorText(s *string) string {
	if s == nil {
		return "nil"
	}

	return *s
}

// Matches ignores InvalidationDate, which is set by the service.
func (m *invalidationEqMatcher) Matches(x interface{}) bool {
	invalidation, ok := x.(cacherepositories.InvalidationModel)
	if !ok {
		return false
	}

	invalidation.InvalidationDate = m.expected.InvalidationDate
	return errorText(m.expected.InvalidationError) == errorText(invalidation.InvalidationError) &&
		reflect.DeepEqual(withoutError(m.expected), withoutError(invalidation))
}

func withoutError(invalidation cacherepositories.InvalidationModel) cacherepositories.InvalidationModel {
	invalidation.InvalidationError = nil
	return invalidation
}

func (m *invalidationEqMatcher) String() string {
	return fmt.Sprintf("expected invalidation to be: %v", m.expected)
}

type invalidationTestDeps struct {
	repository   *mock_cacherepositories.MockInvalidationsRepository
	cacheService *mock_cache.MockCacheService
	service      cache.InvalidationService
}

func newInvalidationTestDeps(t *testing.T) *invalidationTestDeps {
	mockCtrl := gomock.NewController(t)
	repository := mock_cacherepositories.NewMockInvalidationsRepository(mockCtrl)
	cacheService := mock_cache.NewMockCacheService(mockCtrl)

	return &invalidationTestDeps{
		repository:   repository,
		cacheService: cacheService,
		service:      cache.NewInvalidationService(repository, cacheService, nullLogger()),
	}
}

func variantsOf(source string, resizes ...int) []cacherepositories.CachedImageModel {
	entries := make([]cacherepositories.CachedImageModel, len(resizes))
	for i, resize := range resizes {
		entries[i] = cacherepositories.CachedImageModel{CacheKey: fmt.Sprintf("%s?_resize=%d", source, resize), SourceURI: source}
	}

	return entries
}

func TestInvalidationService_GetLastKnownInvalidation(t *testing.T) {
	repositoryErr := errors.New("repository error")
	invalidation := cacherepositories.InvalidationModel{ProjectName: "project", CommitHash: "hash"}

	t.Run("ReturnsLatestInvalidationOfProject", func(t *testing.T) {
		deps := newInvalidationTestDeps(t)
		deps.repository.EXPECT().GetLatestInvalidation(gomock.Any(), "project").Return(invalidation, nil)

		result, err := deps.service.GetLastKnownInvalidation(context.Background(), "project")

		if err != nil || !reflect.DeepEqual(result, invalidation) {
			t.Errorf("Expected %#v, got %#v, %v", invalidation, result, err)
		}
	})

	t.Run("ReturnsRepositoryError", func(t *testing.T) {
		deps := newInvalidationTestDeps(t)
		deps.repository.EXPECT().GetLatestInvalidation(gomock.Any(), "project").Return(cacherepositories.InvalidationModel{}, repositoryErr)

		if _, err := deps.service.GetLastKnownInvalidation(context.Background(), "project"); err != repositoryErr {
			t.Errorf("Expected %v, got %v", repositoryErr, err)
		}
	})

	t.Run("RejectsEmptyProjectName", func(t *testing.T) {
		deps := newInvalidationTestDeps(t)

		if _, err := deps.service.GetLastKnownInvalidation(context.Background(), ""); err != cacherepositories.ErrProjectNameNotAllowed {
			t.Errorf("Expected %v, got %v", cacherepositories.ErrProjectNameNotAllowed, err)
		}
	})
}

func TestInvalidationService_Invalidate(t *testing.T) {
	cacheErrText := "cache error"
	cacheErr := errors.New(cacheErrText)
	repositoryErr := errors.New("repository error")

	type invalidationResult struct {
		entries []cacherepositories.CachedImageModel
		err     error
	}

	cases := []struct {
		name          string
		urls          []string
		results       map[string]invalidationResult
		done          []string
		invalidated   []cacherepositories.CachedImageModel
		recordedError *string
		repositoryErr error
		expectedErr   error
	}{
		{
			name:        "InvalidatesSingleSource",
			urls:        []string{"image"},
			results:     map[string]invalidationResult{"image": {variantsOf("image", 1, 2), nil}},
			done:        []string{"image"},
			invalidated: variantsOf("image", 1, 2),
		},
		{
			name: "InvalidatesMultipleSourcesInOrder",
			urls: []string{"image1", "image2"},
			results: map[string]invalidationResult{
				"image1": {variantsOf("image1", 1, 2), nil},
				"image2": {variantsOf("image2", 3, 4), nil},
			},
			done:        []string{"image1", "image2"},
			invalidated: append(variantsOf("image1", 1, 2), variantsOf("image2", 3, 4)...),
		},
		{
			name: "StopsOnCacheErrorAndRecordsIt",
			urls: []string{"image1", "image2", "image3"},
			results: map[string]invalidationResult{
				"image1": {variantsOf("image1", 1), nil},
				"image2": {variantsOf("image2", 2), cacheErr},
			},
			done:          []string{"image1"},
			invalidated:   append(variantsOf("image1", 1), variantsOf("image2", 2)...),
			recordedError: &cacheErrText,
			expectedErr:   cacheErr,
		},
		{
			name:          "ReturnsRepositoryError",
			urls:          []string{"image"},
			results:       map[string]invalidationResult{"image": {variantsOf("image", 1), cacheErr}},
			done:          []string{},
			invalidated:   variantsOf("image", 1),
			recordedError: &cacheErrText,
			repositoryErr: repositoryErr,
			expectedErr:   repositoryErr,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			deps := newInvalidationTestDeps(t)

			for _, url := range c.urls {
				if result, ok := c.results[url]; ok {
					deps.cacheService.EXPECT().InvalidateAllEntriesForURL(gomock.Any(), url).Return(result.entries, result.err)
				}
			}

			expected := cacherepositories.InvalidationModel{
				ProjectName:            "project",
				CommitHash:             "hash",
				RequestedInvalidations: c.urls,
				DoneInvalidations:      c.done,
				InvalidatedImages:      c.invalidated,
				InvalidationError:      c.recordedError,
			}
			deps.repository.EXPECT().CreateInvalidation(gomock.Any(), invalidationEq(expected)).Return(c.repositoryErr)

			result, err := deps.service.Invalidate(context.Background(), "project", "hash", c.urls)

			if err != c.expectedErr {
				t.Errorf("Expected %v, got %v", c.expectedErr, err)
			}

			if !invalidationEq(expected).Matches(result) {
				t.Errorf("Expected %v, got %v", expected, result)
			}

			if result.InvalidationDate.IsZero() {
				t.Errorf("Expected invalidation date to be set")
			}
		})
	}

	t.Run("RejectsEmptyProjectNameAndCommitHash", func(t *testing.T) {
		deps := newInvalidationTestDeps(t)

		if _, err := deps.service.Invalidate(context.Background(), "", "hash", []string{"image"}); err != cacherepositories.ErrProjectNameNotAllowed {
			t.Errorf("Expected %v, got %v", cacherepositories.ErrProjectNameNotAllowed, err)
		}

		if _, err := deps.service.Invalidate(context.Background(), "project", "", []string{"image"}); err != cacherepositories.ErrCommitHashNotAllowed {
			t.Errorf("Expected %v, got %v", cacherepositories.ErrCommitHashNotAllowed, err)
		}
	})
}
