package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thebartekbanach/imload/pkg/config"
	"github.com/thebartekbanach/imload/pkg/request"
)

func TestInitLogger_DefaultsToStdout(t *testing.T) {
	logger, err := InitLogger(&config.Config{LogLevel: "info"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if logger.Out != os.Stdout {
		t.Errorf("Expected logger to write to stdout when no file is configured")
	}
}

func TestInitLogger_FallsBackToStdoutOnPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatalf("Cannot create directory: %v", err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("Cannot change directory permissions: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	logger, err := InitLogger(&config.Config{
		LogLevel:    "info",
		LogFilePath: filepath.Join(blocked, "sub", "imload.log"),
	})
	if err != nil {
		t.Fatalf("Expected fallback instead of error, got: %v", err)
	}

	if logger.Out != os.Stdout {
		t.Errorf("Expected fallback to stdout")
	}
}

func TestInitLogger_CreatesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imload.log")

	logger, err := InitLogger(&config.Config{LogLevel: "debug", LogFilePath: path, LogMaxSize: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	logger.Info("test")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected log file to be created: %v", err)
	}
}

func TestInitLogger_RejectsUnknownLevel(t *testing.T) {
	if _, err := InitLogger(&config.Config{LogLevel: "loud"}); err == nil {
		t.Errorf("Expected error for unknown log level")
	}
}

func TestRequestFields_DescribeRequest(t *testing.T) {
	requestContext := request.NewContext(request.New("http://example.com/a.jpg", request.WithSize(10, 20)), request.Size{})

	fields := RequestFields(requestContext)

	if fields["uri"] != "http://example.com/a.jpg" || fields["requestId"] != requestContext.ID() {
		t.Errorf("Expected request fields, got %v", fields)
	}
}
