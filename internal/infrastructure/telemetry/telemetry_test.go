package telemetry

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMessage("list_slots", "ok", time.Millisecond)
		m.RecordDuplicate()
		m.RecordRestore("delivered")
		m.SetBridgeConnected(true)
		m.RecordBridgeCall("query_tabs", nil)
		m.SetSlots(3)
	})
}

func TestMetrics_Records(t *testing.T) {
	m := NewMetrics()

	m.RecordMessage("jump_to_slot", "ok", 5*time.Millisecond)
	m.RecordMessage("jump_to_slot", "ok", 5*time.Millisecond)
	m.RecordRestore("exhausted")
	m.RecordBridgeCall("create_tab", errors.New("boom"))
	m.SetBridgeConnected(true)
	m.SetSlots(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Messages.WithLabelValues("jump_to_slot", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RestoreOutcomes.WithLabelValues("exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BridgeCalls.WithLabelValues("create_tab", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BridgeConnected))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotsTracked))

	m.SetBridgeConnected(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BridgeConnected))
}

func TestMetrics_HandlerServesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RecordDuplicate()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "harpoon_router_duplicates_total 1")
}

func TestProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(TracingConfig{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	_, span := p.Tracer().Start(context.Background(), "x")
	assert.False(t, span.IsRecording())
	span.End()
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.jsonl")
	p, err := NewProvider(TracingConfig{Enabled: true, Exporter: "file", FilePath: path})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "router.dispatch")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "router.dispatch")
}

func TestProvider_RejectsUnknownExporter(t *testing.T) {
	_, err := NewProvider(TracingConfig{Enabled: true, Exporter: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = NewProvider(TracingConfig{Enabled: true, Exporter: "file"})
	assert.Error(t, err)
}
