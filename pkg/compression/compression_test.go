package compression

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", None, false},
		{"none", None, false},
		{"gzip", Gzip, false},
		{"ZSTD", Zstd, false},
		{"zip", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFormat(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(""); err != nil || l != Default {
		t.Errorf("ParseLevel(\"\") = %q, %v; want default", l, err)
	}
	if l, err := ParseLevel("best"); err != nil || l != Best {
		t.Errorf("ParseLevel(best) = %q, %v; want best", l, err)
	}
	if _, err := ParseLevel("max"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestFormatFromName(t *testing.T) {
	testCases := map[string]Format{
		"disk.img-00":     None,
		"disk.img-00.gz":  Gzip,
		"disk.img-12.zst": Zstd,
	}
	for name, expected := range testCases {
		if got := FormatFromName(name); got != expected {
			t.Errorf("FormatFromName(%q) = %q, want %q", name, got, expected)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	var cfg struct {
		Format Format `json:"format"`
		Level  Level  `json:"level"`
	}
	if err := json.Unmarshal([]byte(`{"format":"zstd","level":"fastest"}`), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Format != Zstd || cfg.Level != Fastest {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if err := json.Unmarshal([]byte(`{"format":"rar"}`), &cfg); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if err := json.Unmarshal([]byte(`{"format":7}`), &cfg); err == nil {
		t.Error("expected an error for a non-string format")
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("pgl-bincut round trip \x00\x01\x02\xff"), 4096)

	for _, format := range []Format{None, Gzip, Zstd} {
		for _, level := range []Level{Default, Fastest, Best} {
			t.Run(format.String()+"/"+level.String(), func(t *testing.T) {
				var compressed bytes.Buffer
				w, err := NewWriter(&compressed, format, level)
				if err != nil {
					t.Fatalf("NewWriter failed: %v", err)
				}
				if _, err := w.Write(payload); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				if err := w.Close(); err != nil {
					t.Fatalf("Close failed: %v", err)
				}
				if format != None && compressed.Len() >= len(payload) {
					t.Errorf("expected %s output to be smaller than input, got %d >= %d", format, compressed.Len(), len(payload))
				}

				r, err := NewReader(&compressed, format)
				if err != nil {
					t.Fatalf("NewReader failed: %v", err)
				}
				defer r.Close()
				got, err := io.ReadAll(r)
				if err != nil {
					t.Fatalf("ReadAll failed: %v", err)
				}
				if !bytes.Equal(got, payload) {
					t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
				}
			})
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(io.Discard, Format("lz4"), Default); err == nil {
		t.Error("expected NewWriter to reject an unknown format")
	}
	if _, err := NewReader(bytes.NewReader(nil), Format("lz4")); err == nil {
		t.Error("expected NewReader to reject an unknown format")
	}
}
