package filefetcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	mock_filefetcher "github.com/thebartekbanach/imload/pkg/filefetcher/mocks"
	"github.com/thebartekbanach/imload/pkg/request"
)

func TestRegistry_ShouldDispatchBySchemeCaseInsensitively(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	httpFetcher := mock_filefetcher.NewMockFetcher(mockCtrl)
	fileFetcher := mock_filefetcher.NewMockFetcher(mockCtrl)
	registry := filefetcher.NewRegistry().
		Register(httpFetcher, "http", "https").
		Register(fileFetcher, "file")

	expected := filefetcher.FetchResult{MimeType: "image/png"}
	httpFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(expected, nil)
	fileFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(filefetcher.FetchResult{}, nil)

	result, err := registry.Fetch(context.Background(), request.New("HTTPS://example.com/a.png"))
	if err != nil || result.MimeType != expected.MimeType {
		t.Errorf("Expected %v, got %v (%v)", expected, result, err)
	}

	if _, err := registry.Fetch(context.Background(), request.New("/tmp/a.png")); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestRegistry_ShouldReturnErrorForUnknownScheme(t *testing.T) {
	registry := filefetcher.NewRegistry()

	_, err := registry.Fetch(context.Background(), request.New("ftp://example.com/a.png"))

	if !errors.Is(err, filefetcher.ErrUnsupportedScheme) {
		t.Errorf("Expected %v, got %v", filefetcher.ErrUnsupportedScheme, err)
	}
}
