// Package download streams a release package into the local cache.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/transport"
)

const (
	// Subdir is the cache subdirectory holding downloaded packages.
	Subdir = "apk"

	// FileName is the single reused package file name.
	FileName = "app.apk"
)

// Package is a downloaded release package.
type Package struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
	URI  string `json:"uri" yaml:"uri"`
}

// Getter performs streaming GET requests.
type Getter interface {
	Get(ctx context.Context, url string, opts ...transport.RequestOption) (*http.Response, error)
}

// errStalled reports a body that stopped delivering data.
var errStalled = errors.New("no data received within idle timeout")

// Downloader writes packages to <cacheDir>/apk/app.apk. Concurrent downloads
// into the same cache directory are not synchronised.
type Downloader struct {
	client   Getter
	cacheDir string
	idle     time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithIdleTimeout sets how long a download may go without receiving data.
// Non-positive values keep the default.
func WithIdleTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		if d > 0 {
			dl.idle = d
		}
	}
}

// New creates a Downloader rooted at cacheDir.
func New(client Getter, cacheDir string, opts ...Option) *Downloader {
	d := &Downloader{client: client, cacheDir: cacheDir, idle: transport.DefaultTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the destination file path.
func (d *Downloader) Path() string {
	return filepath.Join(d.cacheDir, Subdir, FileName)
}

// Download fetches rawURL bypassing every cache and streams it to Path,
// replacing any previous file. A partially written file is removed on failure.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*Package, error) {
	dest := d.Path()
	log := output.Logger("download")

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	idle := time.AfterFunc(d.idle, func() { cancel(errStalled) })
	defer idle.Stop()

	resp, err := d.client.Get(ctx, rawURL, transport.NoCache())
	if err != nil {
		return nil, oerrors.NewDownloadError("requesting package", rawURL,
			"check the package URL and network connectivity", stalledCause(ctx, err))
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, oerrors.NewDownloadError("response has no body", rawURL, "", nil)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, oerrors.NewDownloadError("creating cache directory", filepath.Dir(dest), "", err)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, oerrors.NewDownloadError("creating package file", dest, "", err)
	}

	written, err := copyBody(f, &idleReader{ctx: ctx, r: resp.Body, timer: idle, idle: d.idle})
	closeErr := f.Close()
	if err == nil && written == 0 {
		err = errors.New("empty body")
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(dest); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("removing partial package", "path", dest, "error", rmErr)
		}
		return nil, oerrors.NewDownloadError("writing package", dest, "", err)
	}

	log.Info("package downloaded", "path", dest, "size", written)

	return &Package{
		Path: dest,
		Size: written,
		URI:  FileURI(dest),
	}, nil
}

// countingWriter hides io.ReaderFrom so the pooled buffer is always used.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// idleReader pushes the stall deadline back on every read that returns data.
type idleReader struct {
	ctx   context.Context
	r     io.Reader
	timer *time.Timer
	idle  time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.timer.Reset(r.idle)
	}
	if err != nil && err != io.EOF {
		err = stalledCause(r.ctx, err)
	}
	return n, err
}

// stalledCause replaces err with errStalled when the idle timer cancelled ctx.
func stalledCause(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), errStalled) {
		return errStalled
	}
	return err
}

func copyBody(dst io.Writer, src io.Reader) (int64, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	cw := &countingWriter{w: dst}
	if _, err := io.CopyBuffer(cw, src, *buf); err != nil {
		return cw.n, fmt.Errorf("after %d bytes: %w", cw.n, err)
	}
	return cw.n, nil
}

// FileURI returns the file:// URI for path.
func FileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
