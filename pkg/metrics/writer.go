package metrics

import "io"

// CountingWriter forwards writes to W and records the bytes that reached it.
type CountingWriter struct {
	W     io.Writer
	Count func(n int64)
}

func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	cw.Count(int64(n))
	return n, err
}

// CountingReader forwards reads to R and records the bytes returned.
type CountingReader struct {
	R     io.Reader
	Count func(n int64)
}

func (cr *CountingReader) Read(p []byte) (int, error) {
	n, err := cr.R.Read(p)
	cr.Count(int64(n))
	return n, err
}
