package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
	"github.com/thebartekbanach/imload/pkg/logging"
	"github.com/thebartekbanach/imload/pkg/proxy"
)

func (s *server) routes(ctx context.Context) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleRequest(ctx, s.proxyService, s.logger))
	mux.HandleFunc("/cache", s.authorized(handleCacheClearRequest(s.cacheService, s.logger)))
	mux.HandleFunc("/cache/trim", s.authorized(handleCacheTrimRequest(s.cacheService)))
	mux.HandleFunc("/invalidate", s.authorized(handleInvalidationRequest(ctx, s.invalidationService, s.logger)))
	mux.HandleFunc("/invalidations", s.authorized(handleLatestInvalidationInfoRequest(ctx, s.invalidationService, s.logger)))
	return mux
}

func handleRequest(ctx context.Context, proxyService proxy.ProxyService, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processingCtx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only GET method is allowed"))
			return
		}

		request := r.URL.Path + "?" + r.URL.RawQuery
		logger.WithFields(logging.BaseFields("proxy")).WithField("request", request).Debug("processing")

		proxyService.Handle(processingCtx, request, r.Header.Get("Origin"), &proxyResponseWriter{w})
		r.Body.Close()
	}
}

// authorized rejects requests without the configured bearer token. An empty
// token disables the check.
func (s *server) authorized(next http.HandlerFunc) http.HandlerFunc {
	rawAccessToken := s.config.InvalidationToken
	accessToken := fmt.Sprintf("Bearer %s", rawAccessToken)

	return func(w http.ResponseWriter, r *http.Request) {
		if rawAccessToken != "" && r.Header.Get("Authorization") != accessToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("access token authorization failed"))
			return
		}

		next(w, r)
	}
}

func handleCacheClearRequest(cacheService cache.CacheService, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only DELETE method is allowed"))
			return
		}

		if err := cacheService.Clear(); err != nil {
			logger.WithFields(logging.BaseFields("cacheClear")).WithError(err).Error("cannot clear cache")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("error ocurred when clearing cache"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCacheTrimRequest(cacheService cache.CacheService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only POST method is allowed"))
			return
		}

		targetSize, err := strconv.ParseInt(r.URL.Query().Get("memory"), 10, 64)
		if err != nil || targetSize < 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("memory query parameter must be a non-negative number of bytes"))
			return
		}

		cacheService.Trim(targetSize)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleInvalidationRequest(ctx context.Context, invalidationService cache.InvalidationService, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only DELETE method is allowed"))
			return
		}

		projectName := r.URL.Query().Get("projectName")
		if projectName == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("projectName query parameter is required"))
			return
		}

		latestCommitHash := r.URL.Query().Get("latestCommitHash")
		if latestCommitHash == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("latestCommitHash query parameter is required"))
			return
		}

		urls := r.URL.Query()["urls"]
		if len(urls) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("urls query parameter is required"))
			return
		}

		result, invalidationErr := invalidationService.Invalidate(ctx, projectName, latestCommitHash, urls)
		writeJSONResult(w, logger.WithFields(logging.BaseFields("invalidate")), result, invalidationErr)
	}
}

func handleLatestInvalidationInfoRequest(ctx context.Context, invalidationService cache.InvalidationService, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only GET method is allowed"))
			return
		}

		projectName := r.URL.Query().Get("projectName")
		if projectName == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("projectName query parameter is required"))
			return
		}

		result, infoGetErr := invalidationService.GetLastKnownInvalidation(ctx, projectName)
		writeJSONResult(w, logger.WithFields(logging.BaseFields("latestInvalidation")), result, infoGetErr)
	}
}

func writeJSONResult(w http.ResponseWriter, logger logrus.FieldLogger, result interface{}, resultErr error) {
	jsonResult, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		logger.WithError(marshalErr).Error("error ocurred when marshalling result")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("error ocurred when marshalling result"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if resultErr != nil {
		logger.WithError(resultErr).Error("request failed")
		w.WriteHeader(http.StatusInternalServerError)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	w.Write(jsonResult)
}
