package filechunk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/outfile"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
	"github.com/paulschiretz/pgl-bincut/pkg/preflight"
)

// SplitRequest describes one split.
type SplitRequest struct {
	Source    string
	ChunkSize int64
	Overwrite bool

	DryRun         bool
	CheckFreeSpace bool
}

// Split writes req.Source into consecutive chunks of req.ChunkSize bytes and
// returns the paths written, in index order. Only the last chunk may be
// shorter. An empty source produces no chunks.
//
// Any failure aborts the split; chunks written so far are left in place.
func (c *Chunker) Split(ctx context.Context, req SplitRequest) ([]string, error) {
	if req.ChunkSize <= 0 {
		return nil, failure.New(failure.InvalidArgument, "chunk size must be greater than zero, got %d", req.ChunkSize)
	}
	dir, name, ok := splitPath(req.Source)
	if !ok {
		return nil, failure.New(failure.InvalidPath, "path %s has no parent directory or file name", req.Source)
	}
	if _, err := preflight.CheckSourceFile(req.Source); err != nil {
		return nil, err
	}

	src, err := os.Open(req.Source)
	if err != nil {
		return nil, failure.Wrap(failure.IoError, err, "could not open source file", req.Source)
	}
	defer src.Close()

	total, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, failure.Wrap(failure.IoError, err, "could not determine length of", req.Source)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, failure.Wrap(failure.IoError, err, "could not rewind", req.Source)
	}

	base := filepath.Join(dir, name)
	if req.DryRun {
		return c.planSplit(base, total, req)
	}

	if req.CheckFreeSpace {
		if err := preflight.CheckFreeSpace(dir, total); err != nil {
			return nil, err
		}
	}

	startTime := time.Now()
	reader := &metrics.CountingReader{R: src, Count: c.metrics.AddBytesRead}
	var written []string
	for i, remaining := 0, total; remaining > 0; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		count := min(req.ChunkSize, remaining)
		path := ChunkName(base, i, c.format)

		if err := c.writeChunk(ctx, reader, path, count, req.Overwrite); err != nil {
			return written, err
		}
		written = append(written, path)
		remaining -= count
		plog.Debug("Wrote chunk", "path", path, "size", count)
	}

	plog.Info("Split complete", "source", req.Source, "chunks", len(written), "bytes", total,
		"duration", time.Since(startTime).Round(time.Millisecond))
	return written, nil
}

func (c *Chunker) writeChunk(ctx context.Context, src io.Reader, path string, count int64, overwrite bool) (retErr error) {
	out, err := outfile.Create(path, outfile.Options{
		Overwrite: overwrite,
		Format:    c.format,
		Level:     c.level,
		Written:   c.metrics.AddBytesWritten,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	if _, err := c.buffers.CopyN(ctx, out, src, count); err != nil {
		return failure.Wrap(failure.IoError, err, fmt.Sprintf("could not write %d bytes to chunk", count), path)
	}
	c.metrics.AddFilesWritten(1)
	return nil
}

// planSplit reports the chunks a split would write without creating them.
func (c *Chunker) planSplit(base string, total int64, req SplitRequest) ([]string, error) {
	var planned []string
	for i, remaining := 0, total; remaining > 0; i++ {
		count := min(req.ChunkSize, remaining)
		path := ChunkName(base, i, c.format)
		if err := outfile.CheckAvailable(path, req.Overwrite); err != nil {
			return nil, err
		}
		plog.Notice("[DRY RUN] Would write chunk", "path", path, "size", count, "compression", c.format)
		planned = append(planned, path)
		remaining -= count
	}
	return planned, nil
}
