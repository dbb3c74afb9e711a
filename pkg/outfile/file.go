package outfile

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
)

// Options control how Create opens and wraps a destination.
type Options struct {
	Overwrite bool
	Format    compression.Format
	Level     compression.Level
	// Written, if set, is called with the number of bytes that reach the
	// file on disk (after compression).
	Written func(n int64)
}

// File is a guarded destination, optionally wrapped in a compression stream.
// Writes go through the stream; Close finishes the stream and then the file.
type File struct {
	path   string
	f      *os.File
	stream io.WriteCloser
}

// Create opens path through the overwrite guard and wraps it according to
// opts.
func Create(path string, opts Options) (*File, error) {
	f, err := Open(path, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	var sink io.Writer = f
	if opts.Written != nil {
		sink = &metrics.CountingWriter{W: f, Count: opts.Written}
	}

	stream, err := compression.NewWriter(sink, opts.Format, opts.Level)
	if err != nil {
		f.Close()
		return nil, failure.Wrap(failure.IoError, err, "could not set up compression for", path)
	}
	return &File{path: path, f: f, stream: stream}, nil
}

// Path returns the destination path.
func (o *File) Path() string { return o.path }

func (o *File) Write(p []byte) (int, error) {
	return o.stream.Write(p)
}

// Close flushes the compression stream and closes the file. The first error
// wins.
func (o *File) Close() error {
	var errs []error
	if err := o.stream.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := o.f.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return failure.Wrap(failure.IoError, errs[0], "could not finish output file", o.path)
	}
	return nil
}

// CheckAvailable reports the error Open would return for an existing
// destination, without creating anything. It is used by dry runs.
func CheckAvailable(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	_, err := os.Lstat(path)
	if err == nil {
		return failure.New(failure.OutputExists, "output file %s already exists: pass --overwrite to overwrite", path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return failure.Wrap(failure.IoError, err, "cannot access output file", path)
}
