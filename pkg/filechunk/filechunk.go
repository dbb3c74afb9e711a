// Package filechunk splits a file into fixed-size sibling chunk files and joins
// them back together.
//
// Chunks of a file named "data.bin" are "data.bin-00", "data.bin-01", ... in the
// same directory. Compressed chunks additionally carry the format's extension,
// e.g. "data.bin-00.zst".
package filechunk

import (
	"fmt"
	"path/filepath"

	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/pool"
)

// ChunkName returns the path of chunk index i of base. The index is zero-padded
// to at least two digits.
func ChunkName(base string, i int, format compression.Format) string {
	return fmt.Sprintf("%s-%02d%s", base, i, format.Extension())
}

// Chunker splits and joins files through pooled copy buffers.
type Chunker struct {
	buffers *pool.BufferPool
	format  compression.Format
	level   compression.Level
	metrics metrics.Metrics
}

// NewChunker creates a Chunker copying in blocks of bufferSize bytes. format
// and level apply to chunks written by Split; Join detects the format of each
// chunk from its name. A nil m disables metrics.
func NewChunker(bufferSize int, format compression.Format, level compression.Level, m metrics.Metrics) *Chunker {
	if m == nil {
		m = &metrics.NoopMetrics{}
	}
	return &Chunker{
		buffers: pool.NewBufferPool(bufferSize),
		format:  format,
		level:   level,
		metrics: m,
	}
}

// splitPath separates path into its parent directory and file name and
// reports whether both are present.
func splitPath(path string) (dir, name string, ok bool) {
	dir, name = filepath.Split(filepath.Clean(path))
	if name == "" || name == "." || name == ".." || dir == "" {
		return "", "", false
	}
	return filepath.Clean(dir), name, true
}
