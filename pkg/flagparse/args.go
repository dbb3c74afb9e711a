package flagparse

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/fileextract"
)

// ParseAbsolutePath resolves s against the working directory. The result is
// lexically cleaned; symlinks are not followed and the path does not have to
// exist.
func ParseAbsolutePath(s string) (string, error) {
	if s == "" {
		return "", failure.New(failure.InvalidPath, "invalid path: empty")
	}
	if strings.ContainsRune(s, 0) {
		return "", failure.New(failure.InvalidPath, "invalid path %q: contains a NUL byte", s)
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return "", &failure.Error{Kind: failure.InvalidPath, Msg: fmt.Sprintf("invalid path %q", s), Err: err}
	}
	return abs, nil
}

// ParseNumber parses a byte count or offset. Decimal is the default; a "0x" or
// "0X" prefix selects hexadecimal. Signs are rejected.
func ParseNumber(s string) (int64, error) {
	digits, base := s, 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits, base = s[2:], 16
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, failure.New(failure.NumberParse, "invalid number %q", s)
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &failure.Error{Kind: failure.NumberParse, Msg: fmt.Sprintf("invalid number %q", s), Err: err}
	}
	return v, nil
}

// ParseEndOrLen parses the terminus of an extract range. A leading "+" marks a
// length relative to the start offset; anything else is an absolute end offset.
func ParseEndOrLen(s string) (fileextract.EndOrLen, error) {
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		n, err := ParseNumber(rest)
		if err != nil {
			return fileextract.EndOrLen{}, err
		}
		return fileextract.Length(n), nil
	}
	n, err := ParseNumber(s)
	if err != nil {
		return fileextract.EndOrLen{}, err
	}
	return fileextract.EndAt(n), nil
}
