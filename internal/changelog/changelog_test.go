package changelog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/testutil"
	"github.com/appupdater/cli/internal/transport"
)

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func TestTruncateLines(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "thirty lines keep twenty", input: numbered(30), want: numbered(20)},
		{name: "blank line stops", input: []string{"a", "b", "", "c"}, want: []string{"a", "b"}},
		{name: "short input unchanged", input: numbered(5), want: numbered(5)},
		{name: "exactly twenty", input: numbered(20), want: numbered(20)},
		{name: "whitespace-only counts as blank", input: []string{"a", "   ", "b"}, want: []string{"a"}},
		{name: "blank first line", input: []string{"", "a"}, want: []string{}},
		{
			name:  "blank after window ignored",
			input: append(numbered(20), "", "tail"),
			want:  numbered(20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateLines(tt.input)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxLines)
			for _, line := range got {
				assert.NotEmpty(t, strings.TrimSpace(line))
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "blank line section", input: "a\nb\n\nc", want: "a\nb"},
		{name: "trailing newline", input: "a\nb\n", want: "a\nb"},
		{name: "crlf", input: "- fix\r\n- feat\r\n\r\nold", want: "- fix\n- feat"},
		{name: "thirty lines", input: strings.Join(numbered(30), "\n"), want: strings.Join(numbered(20), "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input))
		})
	}
}

func TestFetch(t *testing.T) {
	srv := testutil.NewServer(t, map[string]testutil.Route{
		"/changelog.md": {Body: "## 1.4.0\n- faster sync\n\n## 1.3.0\n- old"},
		"/broken":       {Status: http.StatusBadGateway},
	})
	f := NewFetcher(transport.NewClient(transport.Options{}))

	t.Run("fetched and truncated", func(t *testing.T) {
		res := f.Fetch(context.Background(), srv.URLFor("/changelog.md"))
		assert.Equal(t, ReasonFetched, res.Reason)
		assert.Equal(t, "## 1.4.0\n- faster sync", res.Text)
		assert.NoError(t, res.Err)
	})

	t.Run("blank url makes no request", func(t *testing.T) {
		res := f.Fetch(context.Background(), "  ")
		assert.Equal(t, ReasonNoURL, res.Reason)
		assert.Empty(t, res.Text)
	})

	t.Run("transport failure yields empty text", func(t *testing.T) {
		res := f.Fetch(context.Background(), srv.URLFor("/broken"))
		assert.Equal(t, ReasonTransportFailure, res.Reason)
		assert.Empty(t, res.Text)
		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, oerrors.ErrTransport))
		assert.Equal(t, 1, srv.Hits("/broken"))
	})

	t.Run("stalled body yields empty text", func(t *testing.T) {
		stalled := testutil.NewServer(t, map[string]testutil.Route{
			"/changelog.md": {Body: "## 1.4.0\n", Stall: true},
		})
		f := NewFetcher(transport.NewClient(transport.Options{Timeout: 200 * time.Millisecond}))

		start := time.Now()
		res := f.Fetch(context.Background(), stalled.URLFor("/changelog.md"))

		assert.Less(t, time.Since(start), 3*time.Second)
		assert.Equal(t, ReasonTransportFailure, res.Reason)
		assert.Empty(t, res.Text)
		assert.True(t, errors.Is(res.Err, context.DeadlineExceeded), "got %v", res.Err)
	})
}
