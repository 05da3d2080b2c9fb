package testutils

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/phayes/freeport"
)

// TestHttpServer is a mux listening on a free local port that records how
// many times each path was requested.
type TestHttpServer struct {
	*http.ServeMux

	lock     sync.Mutex
	requests map[string]int
	port     int
}

func NewTestHttpServer() *TestHttpServer {
	return &TestHttpServer{ServeMux: http.NewServeMux(), requests: map[string]int{}}
}

// ServeImage answers path with data and the given content type.
func (s *TestHttpServer) ServeImage(path, mimeType string, data []byte) {
	s.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", mimeType)
		w.Write(data)
	})
}

func (s *TestHttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	s.requests[r.URL.Path]++
	s.lock.Unlock()

	s.ServeMux.ServeHTTP(w, r)
}

// Requests returns how many times path was requested so far.
func (s *TestHttpServer) Requests(path string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.requests[path]
}

// URL returns the address of path on the started server.
func (s *TestHttpServer) URL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, path)
}

// Returns the port the server is listening on.
func (s *TestHttpServer) Start(t *testing.T) int {
	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatalf("cannot start test server: %v", err)
	}
	s.port = port

	srvAddr := fmt.Sprintf(":%d", port)
	srv := http.Server{
		Addr:    srvAddr,
		Handler: s,
	}

	t.Cleanup(func() {
		srv.Close()
	})

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			t.Errorf("cannot start test server: %v", err)
		}
	}()

	waitForServer(t, srvAddr)
	return port
}

func waitForServer(t *testing.T, url string) {
	backoff := 50 * time.Millisecond

	for i := 0; i < 10; i++ {
		conn, err := net.DialTimeout("tcp", url, 1*time.Second)
		if err != nil {
			time.Sleep(backoff)
			continue
		}
		err = conn.Close()
		if err != nil {
			t.Fatal(err)
		}
		return
	}

	t.Fatalf("server on URL %s not up after 10 attempts", url)
}
