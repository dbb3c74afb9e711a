package metrics

import (
	"sync/atomic"

	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// Metrics collects per-run I/O statistics.
type Metrics interface {
	AddFilesWritten(n int64)
	AddBytesRead(n int64)
	AddBytesWritten(n int64)
	Log(command string)
}

// IOMetrics holds atomic counters for one run.
type IOMetrics struct {
	FilesWritten atomic.Int64
	BytesRead    atomic.Int64
	BytesWritten atomic.Int64
}

func (m *IOMetrics) AddFilesWritten(n int64) { m.FilesWritten.Add(n) }
func (m *IOMetrics) AddBytesRead(n int64)    { m.BytesRead.Add(n) }
func (m *IOMetrics) AddBytesWritten(n int64) { m.BytesWritten.Add(n) }

// Log prints a summary line. Bytes written differ from bytes read only when
// outputs are compressed or inputs are decompressed.
func (m *IOMetrics) Log(command string) {
	plog.Notice("SUM",
		"command", command,
		"filesWritten", m.FilesWritten.Load(),
		"bytesRead", m.BytesRead.Load(),
		"bytesWritten", m.BytesWritten.Load(),
	)
}

// NoopMetrics discards everything. It is used when metrics are disabled.
type NoopMetrics struct{}

func (m *NoopMetrics) AddFilesWritten(n int64) {}
func (m *NoopMetrics) AddBytesRead(n int64)    {}
func (m *NoopMetrics) AddBytesWritten(n int64) {}
func (m *NoopMetrics) Log(command string)      {}

// New returns IOMetrics when enabled and NoopMetrics otherwise.
func New(enabled bool) Metrics {
	if enabled {
		return &IOMetrics{}
	}
	return &NoopMetrics{}
}

var _ Metrics = (*IOMetrics)(nil)
var _ Metrics = (*NoopMetrics)(nil)
