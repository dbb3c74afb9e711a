package filechunk

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/outfile"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
	"github.com/paulschiretz/pgl-bincut/pkg/preflight"
)

// JoinRequest describes one join. Base is the path of the original file the
// chunks were split from; it does not have to exist.
type JoinRequest struct {
	Base        string
	Destination string
	Overwrite   bool

	DryRun         bool
	CheckFreeSpace bool
}

// Chunk is one chunk file found on disk.
type Chunk struct {
	Index  int
	Path   string
	Format compression.Format
	Size   int64
}

// FindChunks probes base-00, base-01, ... until an index is missing. Each
// index may be stored uncompressed or with a compression extension, but not in
// more than one form.
func FindChunks(base string) ([]Chunk, error) {
	formats := []compression.Format{compression.None, compression.Gzip, compression.Zstd}

	var chunks []Chunk
	for i := 0; ; i++ {
		var found []Chunk
		for _, format := range formats {
			path := ChunkName(base, i, format)
			info, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, failure.Wrap(failure.IoError, err, "cannot access chunk", path)
			}
			if !info.Mode().IsRegular() {
				return nil, failure.New(failure.InvalidPath, "chunk %s is not a regular file", path)
			}
			found = append(found, Chunk{Index: i, Path: path, Format: format, Size: info.Size()})
		}

		switch len(found) {
		case 0:
			if i == 0 {
				return nil, failure.New(failure.InvalidPath, "no chunks found for %s: expected %s", base, ChunkName(base, 0, compression.None))
			}
			return chunks, nil
		case 1:
			chunks = append(chunks, found[0])
		default:
			return nil, failure.New(failure.InvalidArgument, "chunk index %d of %s exists in more than one form", i, base)
		}
	}
}

// Join concatenates the chunks of req.Base into req.Destination, decompressing
// each chunk according to its extension, and returns the number of bytes
// written.
func (c *Chunker) Join(ctx context.Context, req JoinRequest) (n int64, retErr error) {
	dir, name, ok := splitPath(req.Base)
	if !ok {
		return 0, failure.New(failure.InvalidPath, "path %s has no parent directory or file name", req.Base)
	}
	base := filepath.Join(dir, name)

	chunks, err := FindChunks(base)
	if err != nil {
		return 0, err
	}
	var onDisk int64
	for _, chunk := range chunks {
		if chunk.Path == req.Destination {
			return 0, failure.New(failure.InvalidArgument, "output path %s is one of the chunks being joined", req.Destination)
		}
		onDisk += chunk.Size
	}

	outDir := filepath.Dir(req.Destination)
	if err := preflight.CheckOutputDir(outDir); err != nil {
		return 0, err
	}

	if req.DryRun {
		if err := outfile.CheckAvailable(req.Destination, req.Overwrite); err != nil {
			return 0, err
		}
		for _, chunk := range chunks {
			plog.Notice("[DRY RUN] Would join chunk", "path", chunk.Path, "size", chunk.Size, "compression", chunk.Format)
		}
		plog.Notice("[DRY RUN] Would write", "destination", req.Destination, "chunks", len(chunks))
		return 0, nil
	}

	// Compressed chunks expand on the way out, so this is only a lower bound.
	if req.CheckFreeSpace {
		if err := preflight.CheckFreeSpace(outDir, onDisk); err != nil {
			return 0, err
		}
	}

	out, err := outfile.Create(req.Destination, outfile.Options{
		Overwrite: req.Overwrite,
		Format:    compression.None,
		Written:   c.metrics.AddBytesWritten,
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
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		copied, err := c.appendChunk(ctx, out, chunk)
		n += copied
		if err != nil {
			return n, err
		}
		plog.Debug("Joined chunk", "path", chunk.Path, "bytes", copied)
	}
	c.metrics.AddFilesWritten(1)

	plog.Info("Join complete", "destination", req.Destination, "chunks", len(chunks), "bytes", n,
		"duration", time.Since(startTime).Round(time.Millisecond))
	return n, nil
}

func (c *Chunker) appendChunk(ctx context.Context, out *outfile.File, chunk Chunk) (int64, error) {
	f, err := os.Open(chunk.Path)
	if err != nil {
		return 0, failure.Wrap(failure.IoError, err, "could not open chunk", chunk.Path)
	}
	defer f.Close()

	r, err := compression.NewReader(&metrics.CountingReader{R: f, Count: c.metrics.AddBytesRead}, chunk.Format)
	if err != nil {
		return 0, failure.Wrap(failure.IoError, err, "could not read compressed chunk", chunk.Path)
	}
	defer r.Close()

	n, err := c.buffers.Copy(ctx, out, r)
	if err != nil {
		return n, failure.Wrap(failure.IoError, err, "could not copy chunk", chunk.Path)
	}
	return n, nil
}
