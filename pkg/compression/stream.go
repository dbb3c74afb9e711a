// Package compression wraps written files in a gzip or zstd stream and unwraps
// them again on read. Gzip uses klauspost/pgzip, which compresses blocks in
// parallel internally; zstd uses klauspost/compress.
package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that compresses into w. Closing the returned
// writer flushes the compressed stream but does not close w. For None, writes
// pass straight through.
func NewWriter(w io.Writer, format Format, level Level) (io.WriteCloser, error) {
	switch format {
	case None, "":
		return nopWriteCloser{w}, nil
	case Zstd:
		var encoderLevel zstd.EncoderLevel
		switch level {
		case Fastest:
			encoderLevel = zstd.SpeedFastest
		case Better:
			encoderLevel = zstd.SpeedBetterCompression
		case Best:
			encoderLevel = zstd.SpeedBestCompression
		default:
			encoderLevel = zstd.SpeedDefault
		}
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(encoderLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zw, nil
	case Gzip:
		var lvl int
		switch level {
		case Fastest:
			lvl = pgzip.BestSpeed
		case Better:
			lvl = 6
		case Best:
			lvl = pgzip.BestCompression
		default:
			lvl = pgzip.DefaultCompression
		}
		gw, err := pgzip.NewWriterLevel(w, lvl)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader returns a reader that decompresses r. Closing it releases decoder
// resources but does not close r.
func NewReader(r io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case None, "":
		return io.NopCloser(r), nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zstdReadCloser{zr}, nil
	case Gzip:
		gr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gr, nil
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}
}
