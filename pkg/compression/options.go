package compression

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulschiretz/pgl-bincut/pkg/util"
)

// Format is the stream compression applied to a written file.
type Format string

const (
	None Format = "none"
	Gzip Format = "gzip"
	Zstd Format = "zstd"
)

// Level trades speed against size. Each format maps it onto its own scale.
type Level string

const (
	Default Level = "default"
	Fastest Level = "fastest"
	Better  Level = "better"
	Best    Level = "best"
)

var formatToExtension = map[Format]string{
	None: "",
	Gzip: ".gz",
	Zstd: ".zst",
}

var (
	stringToFormat = util.InvertMap(map[Format]string{None: "none", Gzip: "gzip", Zstd: "zstd"})
	stringToLevel  = util.InvertMap(map[Level]string{Default: "default", Fastest: "fastest", Better: "better", Best: "best"})
)

func (f Format) String() string {
	if _, ok := formatToExtension[f]; ok {
		return string(f)
	}
	return fmt.Sprintf("unknown_compression_format(%s)", string(f))
}

// Extension returns the file name suffix for the format, e.g. ".gz". None has
// no suffix.
func (f Format) Extension() string {
	return formatToExtension[f]
}

// ParseFormat parses a format name. The empty string means None.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return None, nil
	}
	if format, ok := stringToFormat[strings.ToLower(s)]; ok {
		return format, nil
	}
	return "", fmt.Errorf("invalid compression format: %q. Must be 'none', 'gzip', or 'zstd'", s)
}

// FormatFromName derives the format from a file name's extension.
func FormatFromName(name string) Format {
	for _, f := range []Format{Gzip, Zstd} {
		if strings.HasSuffix(name, f.Extension()) {
			return f
		}
	}
	return None
}

func (l Level) String() string {
	if _, ok := stringToLevel[string(l)]; ok {
		return string(l)
	}
	return string(Default)
}

// ParseLevel parses a level name. The empty string means Default.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return Default, nil
	}
	if l, ok := stringToLevel[strings.ToLower(s)]; ok {
		return l, nil
	}
	return "", fmt.Errorf("invalid compression level: %q. Must be 'default', 'fastest', 'better', or 'best'", s)
}

func (f Format) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }
func (l Level) MarshalJSON() ([]byte, error)  { return json.Marshal(l.String()) }

func (f *Format) UnmarshalJSON(data []byte) error {
	return unmarshalOption(data, "compression format", ParseFormat, f)
}

func (l *Level) UnmarshalJSON(data []byte) error {
	return unmarshalOption(data, "compression level", ParseLevel, l)
}

// unmarshalOption decodes a JSON string and runs it through parse.
func unmarshalOption[T any](data []byte, what string, parse func(string) (T, error), dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s should be a string, got %s", what, data)
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
