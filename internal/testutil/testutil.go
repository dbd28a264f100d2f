// Package testutil provides test helpers for the update pipeline.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "appupdater-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// MetadataJSON returns a release metadata document with a single variant.
func MetadataJSON(versionCode int64) string {
	return fmt.Sprintf(`{
  "version": 3,
  "artifactType": {"type": "APK", "kind": "Directory"},
  "applicationId": "com.example.app",
  "variantName": "release",
  "elements": [
    {
      "type": "SINGLE",
      "filters": [],
      "attributes": [],
      "versionCode": %d,
      "versionName": "1.%d.0",
      "outputFile": "app-release.apk"
    }
  ],
  "elementType": "File"
}`, versionCode, versionCode)
}

// Route is a canned response served by a test server.
type Route struct {
	Status int
	Body   string

	// Stall flushes Body and then holds the response open until the client
	// goes away or the server closes.
	Stall bool
}

// Server is an httptest server that serves canned routes and records hits.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	requests map[string]*http.Request
	stop     chan struct{}
}

// NewServer starts a server for routes keyed by path. Unknown paths return 404.
// The server is closed when the test ends.
func NewServer(t *testing.T, routes map[string]Route) *Server {
	t.Helper()
	s := &Server{
		hits:     make(map[string]int),
		requests: make(map[string]*http.Request),
		stop:     make(chan struct{}),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.requests[r.URL.Path] = r.Clone(r.Context())
		s.mu.Unlock()

		route, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(route.Body))
		if route.Stall {
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			select {
			case <-r.Context().Done():
			case <-s.stop:
			}
		}
	}))
	t.Cleanup(func() {
		close(s.stop)
		s.Close()
	})
	return s
}

// URLFor returns the absolute URL for path.
func (s *Server) URLFor(path string) string {
	return s.Server.URL + path
}

// Hits returns how many requests were made for path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastRequest returns the most recent request for path, or nil.
func (s *Server) LastRequest(path string) *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}
