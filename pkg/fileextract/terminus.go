package fileextract

import (
	"fmt"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
)

// TerminusKind tells how the end of an extraction range was given.
type TerminusKind int

const (
	// ToEOF extracts up to the end of the file. It is the zero value.
	ToEOF TerminusKind = iota
	// End is an absolute end offset.
	End
	// Len is a length relative to the start offset.
	Len
)

// EndOrLen is the terminus of an extraction range.
type EndOrLen struct {
	Kind  TerminusKind
	Value int64
}

// EndAt returns a terminus at the absolute offset end.
func EndAt(end int64) EndOrLen { return EndOrLen{Kind: End, Value: end} }

// Length returns a terminus n bytes after the start offset.
func Length(n int64) EndOrLen { return EndOrLen{Kind: Len, Value: n} }

func (t EndOrLen) String() string {
	switch t.Kind {
	case End:
		return fmt.Sprintf("end %d", t.Value)
	case Len:
		return fmt.Sprintf("+%d", t.Value)
	default:
		return "eof"
	}
}

// ResolveLength returns the number of bytes to extract from a file of total
// bytes beginning at start.
//
// For an End terminus the length is min(total, end-start). When that reaches
// past the end of the file the request is rejected rather than shortened, as is
// a start beyond the end of the file or an end before the start.
func ResolveLength(total, start int64, t EndOrLen) (int64, error) {
	if start > total {
		return 0, failure.New(failure.RangeError, "start offset %d is beyond the end of the file (%d bytes)", start, total)
	}
	remaining := total - start

	switch t.Kind {
	case ToEOF:
		return remaining, nil
	case Len:
		return min(remaining, t.Value), nil
	case End:
		if t.Value < start {
			return 0, failure.New(failure.RangeError, "end offset %d is before start offset %d", t.Value, start)
		}
		n := min(total, t.Value-start)
		if n > remaining {
			return 0, failure.New(failure.RangeError, "range %d..%d extends past the end of the file (%d bytes)", start, start+n, total)
		}
		return n, nil
	default:
		return 0, failure.New(failure.InvalidArgument, "unknown range terminus %d", t.Kind)
	}
}
