package metrics

import (
	"os"
	"path/filepath"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveCheck("newer")
	r.ObserveCheck("newer")
	r.ObserveCheck("transport-failure")
	r.ObserveOutcome("installer-launched")
	r.ObserveDownload(1024)
	r.ObserveDownload(0)

	assert.Equal(t, 2.0, promtest.ToFloat64(r.checks.WithLabelValues("newer")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.checks.WithLabelValues("transport-failure")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.updates.WithLabelValues("installer-launched")))
	assert.Equal(t, 1024.0, promtest.ToFloat64(r.downloaded))
	assert.Greater(t, promtest.ToFloat64(r.lastRun), 0.0)
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveCheck("up-to-date")
	r.ObserveOutcome("up-to-date")

	path := filepath.Join(t.TempDir(), "textfile", "appupdater.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `appupdater_checks_total{reason="up-to-date"} 1`)
	assert.Contains(t, string(data), `appupdater_updates_total{outcome="up-to-date"} 1`)
	assert.Contains(t, string(data), "# TYPE appupdater_downloaded_bytes_total counter")
}

func TestGatherer(t *testing.T) {
	r := NewRecorder()
	r.ObserveCheck("newer")
	r.ObserveCheck("debug-build")

	n, err := promtest.GatherAndCount(r.Gatherer(), "appupdater_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
