// Package changelog fetches release notes and trims them for the consent prompt.
package changelog

import (
	"context"
	"strings"

	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/transport"
)

// MaxLines is the number of changelog lines shown in the consent prompt.
const MaxLines = 20

// Reason explains how a fetch reached its result.
type Reason string

const (
	// ReasonFetched means the changelog was retrieved.
	ReasonFetched Reason = "fetched"

	// ReasonNoURL means no changelog location was configured.
	ReasonNoURL Reason = "no-url"

	// ReasonTransportFailure means the changelog could not be retrieved.
	ReasonTransportFailure Reason = "transport-failure"
)

// Result is the outcome of a changelog fetch. Text is already truncated.
type Result struct {
	Text   string `json:"text" yaml:"text"`
	Reason Reason `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

// DocumentFetcher retrieves small documents over the network.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string, limit int64, opts ...transport.RequestOption) ([]byte, error)
}

// Fetcher retrieves changelogs. A failed fetch never fails the caller.
type Fetcher struct {
	client DocumentFetcher
}

// NewFetcher creates a Fetcher using client.
func NewFetcher(client DocumentFetcher) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves and truncates the changelog at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) Result {
	if strings.TrimSpace(url) == "" {
		return Result{Reason: ReasonNoURL}
	}

	body, err := f.client.Fetch(ctx, url, transport.MaxDocumentSize)
	if err != nil {
		output.Warn("changelog fetch failed", "url", url, "error", err)
		return Result{Reason: ReasonTransportFailure, Err: err}
	}

	return Result{Text: Truncate(string(body)), Reason: ReasonFetched}
}

// Truncate keeps at most MaxLines lines of text and stops before the first
// blank line within them.
func Truncate(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return ""
	}
	return strings.Join(TruncateLines(strings.Split(text, "\n")), "\n")
}

// TruncateLines applies the Truncate rule to pre-split lines.
func TruncateLines(lines []string) []string {
	if len(lines) > MaxLines {
		lines = lines[:MaxLines]
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			return lines[:i]
		}
	}
	return lines
}
