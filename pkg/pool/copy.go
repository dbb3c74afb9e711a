package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is returned by CopyN when src ends before n bytes were read.
var ErrShortRead = errors.New("source ended before the requested number of bytes")

// CopyN copies exactly n bytes from src to dst using a pooled buffer. A source
// that ends early yields ErrShortRead. The context is checked before every
// block. Read and write failures are wrapped so the caller can tell them apart
// in the message.
func (bp *BufferPool) CopyN(ctx context.Context, dst io.Writer, src io.Reader, n int64) (int64, error) {
	bufPtr := bp.Get()
	defer bp.Put(bufPtr)
	buf := *bufPtr

	var written int64
	for written < n {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		block := buf
		if remaining := n - written; remaining < int64(len(block)) {
			block = block[:remaining]
		}

		nr, err := io.ReadFull(src, block)
		if nr > 0 {
			nw, werr := dst.Write(block[:nr])
			written += int64(nw)
			if werr != nil {
				return written, fmt.Errorf("write failed: %w", werr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return written, fmt.Errorf("read failed after %d of %d bytes: %w", written, n, ErrShortRead)
			}
			return written, fmt.Errorf("read failed: %w", err)
		}
	}
	return written, nil
}

// Copy copies src to dst until EOF using a pooled buffer, checking the
// context before every block.
func (bp *BufferPool) Copy(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	bufPtr := bp.Get()
	defer bp.Put(bufPtr)
	buf := *bufPtr

	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		nr, err := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, fmt.Errorf("write failed: %w", werr)
			}
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, fmt.Errorf("read failed: %w", err)
		}
	}
}
