// Package fileextract copies a byte range of a file into a new file.
package fileextract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/outfile"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
	"github.com/paulschiretz/pgl-bincut/pkg/pool"
	"github.com/paulschiretz/pgl-bincut/pkg/preflight"
)

// Request describes one extraction.
type Request struct {
	Source      string
	Destination string
	Start       int64
	Terminus    EndOrLen
	Overwrite   bool

	DryRun         bool
	CheckFreeSpace bool
}

// Extractor copies byte ranges through pooled buffers.
type Extractor struct {
	buffers *pool.BufferPool
	format  compression.Format
	level   compression.Level
	metrics metrics.Metrics
}

// NewExtractor creates an Extractor that copies in blocks of bufferSize bytes
// and compresses its output with format. A nil m disables metrics.
func NewExtractor(bufferSize int, format compression.Format, level compression.Level, m metrics.Metrics) *Extractor {
	if m == nil {
		m = &metrics.NoopMetrics{}
	}
	return &Extractor{
		buffers: pool.NewBufferPool(bufferSize),
		format:  format,
		level:   level,
		metrics: m,
	}
}

// Extract copies the requested range of req.Source into req.Destination and
// returns the number of bytes extracted.
//
// The destination is created (or truncated with Overwrite) before the copy
// starts; a read failure part way leaves it behind incomplete.
func (e *Extractor) Extract(ctx context.Context, req Request) (n int64, retErr error) {
	if req.Destination == req.Source {
		return 0, failure.New(failure.InvalidArgument, "output path must differ from the source path %s", req.Source)
	}
	if _, err := preflight.CheckSourceFile(req.Source); err != nil {
		return 0, err
	}

	src, err := os.Open(req.Source)
	if err != nil {
		return 0, failure.Wrap(failure.IoError, err, "could not open source file", req.Source)
	}
	defer src.Close()

	total, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, failure.Wrap(failure.IoError, err, "could not determine length of", req.Source)
	}

	length, err := ResolveLength(total, req.Start, req.Terminus)
	if err != nil {
		return 0, err
	}

	outDir := filepath.Dir(req.Destination)
	if err := preflight.CheckOutputDir(outDir); err != nil {
		return 0, err
	}

	if req.DryRun {
		if err := outfile.CheckAvailable(req.Destination, req.Overwrite); err != nil {
			return 0, err
		}
		plog.Notice("[DRY RUN] Would extract",
			"source", req.Source, "destination", req.Destination,
			"start", req.Start, "length", length, "compression", e.format)
		return length, nil
	}

	if req.CheckFreeSpace {
		if err := preflight.CheckFreeSpace(outDir, length); err != nil {
			return 0, err
		}
	}

	if _, err := src.Seek(req.Start, io.SeekStart); err != nil {
		return 0, failure.Wrap(failure.IoError, err, fmt.Sprintf("could not seek to offset %d in", req.Start), req.Source)
	}

	out, err := outfile.Create(req.Destination, outfile.Options{
		Overwrite: req.Overwrite,
		Format:    e.format,
		Level:     e.level,
		Written:   e.metrics.AddBytesWritten,
	})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := out.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	startTime := time.Now()
	reader := &metrics.CountingReader{R: src, Count: e.metrics.AddBytesRead}
	n, err = e.buffers.CopyN(ctx, out, reader, length)
	if err != nil {
		return n, failure.Wrap(failure.IoError, err, fmt.Sprintf("could not extract %d bytes at offset %d from", length, req.Start), req.Source)
	}
	e.metrics.AddFilesWritten(1)

	plog.Info("Extracted range",
		"source", req.Source, "destination", req.Destination,
		"start", req.Start, "length", n, "duration", time.Since(startTime).Round(time.Millisecond))
	return n, nil
}
