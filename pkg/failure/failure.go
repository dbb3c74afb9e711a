// Package failure classifies the errors a command can end with.
//
// Producers wrap the underlying cause in an *Error carrying a Kind. Consumers
// match on the kind with errors.Is(err, failure.OutputExists) without knowing
// which package produced the error or how deeply it was wrapped.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure. A Kind is itself an error so it can be
// used as the target of errors.Is.
type Kind int

const (
	// InvalidPath: a path cannot be resolved or lacks a required component.
	InvalidPath Kind = iota + 1
	// NumberParse: a numeric argument is malformed or out of range.
	NumberParse
	// OutputExists: the destination exists and overwriting was not allowed.
	OutputExists
	// IoError: an open, seek, read or write failed.
	IoError
	// RangeError: the requested byte range does not fit the source file.
	RangeError
	// InvalidArgument: an argument is well-formed but not acceptable.
	InvalidArgument
)

var kindToString = map[Kind]string{
	InvalidPath:     "invalid path",
	NumberParse:     "number parse error",
	OutputExists:    "output exists",
	IoError:         "i/o error",
	RangeError:      "range error",
	InvalidArgument: "invalid argument",
}

func (k Kind) String() string {
	if str, ok := kindToString[k]; ok {
		return str
	}
	return fmt.Sprintf("unknown_failure_kind(%d)", int(k))
}

// Error implements the error interface so a Kind can be an errors.Is target.
func (k Kind) Error() string { return k.String() }

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Msg describes what was being attempted, e.g. "could not open source file".
	Msg string
	// Path is the file the failure relates to, if any.
	Path string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New creates a failure without an underlying cause.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. The message describes the attempted action; path may be
// empty. Wrap returns nil when err is nil.
func Wrap(kind Kind, err error, msg, path string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0 if there is
// none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
