package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/testutil"
)

func TestClientGet(t *testing.T) {
	t.Run("sends user agent and options", func(t *testing.T) {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		c := NewClient(Options{UserAgent: "appupdater-test/1.0"})
		resp, err := c.Get(context.Background(), srv.URL, NoCache())
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, "appupdater-test/1.0", got.Get("User-Agent"))
		assert.Equal(t, "no-cache, no-store", got.Get("Cache-Control"))
		assert.Equal(t, "no-cache", got.Get("Pragma"))
	})

	t.Run("non-2xx is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient(Options{}).Get(context.Background(), srv.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrTransport))

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("connection error is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(Options{Timeout: time.Second}).Get(context.Background(), url)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrTransport))
	})

	t.Run("invalid url is a transport error", func(t *testing.T) {
		_, err := NewClient(Options{}).Get(context.Background(), "://bad")
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrTransport))
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("late"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(Options{}).Get(ctx, srv.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.True(t, errors.Is(err, oerrors.ErrTransport))
	})
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	c := NewClient(Options{})

	data, err := c.Fetch(context.Background(), srv.URL, 64)
	require.NoError(t, err)
	assert.Len(t, data, 64)

	_, err = c.Fetch(context.Background(), srv.URL, 63)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrTransport))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestClientFetch_StalledBody(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/output.json": {Body: `{"version": 3`, Stall: true},
	})
	c := NewClient(Options{Timeout: 200 * time.Millisecond})
	assert.Equal(t, 200*time.Millisecond, c.Timeout())

	start := time.Now()
	_, err := c.Fetch(context.Background(), srv.URLFor("/output.json"), MaxDocumentSize)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.True(t, errors.Is(err, oerrors.ErrTransport))
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(Options{}).Timeout())
}

func TestRegistryClient(t *testing.T) {
	var created atomic.Int32
	r := NewRegistry(Options{})
	r.newFn = func(o Options) *Client {
		created.Add(1)
		return NewClient(o)
	}

	var wg sync.WaitGroup
	clients := make([]*Client, 16)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i] = r.Client("dk.example.app")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load(), "concurrent first access creates one client")
	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}

	other := r.Client("other.app")
	assert.NotSame(t, clients[0], other)
	assert.Equal(t, int32(2), created.Load())
}
