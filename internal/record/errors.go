package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat marks every violation of an expected binary or text layout.
var ErrFormat = errors.New("malformed output data")

// FormatError reports a failed expectation about decoded bytes.
type FormatError struct {
	Layout   string
	Check    string
	Expected string
	Actual   string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Layout != "" {
		b.WriteString(e.Layout)
		b.WriteString(": ")
	}
	b.WriteString(e.Check)
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Actual)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// Mismatch builds a FormatError for a value that differs from its expectation.
func Mismatch(layout, check string, expected, actual any) error {
	return &FormatError{
		Layout:   layout,
		Check:    check,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}
}

// Malformed builds a FormatError without an expected/actual pair.
func Malformed(layout, format string, args ...any) error {
	return &FormatError{Layout: layout, Check: fmt.Sprintf(format, args...)}
}

// HexWords renders buf as lowercase hex, one colon-separated group per word.
func HexWords(buf []byte) string {
	groups := make([]string, 0, (len(buf)+WordSize-1)/WordSize)
	for start := 0; start < len(buf); start += WordSize {
		end := min(start+WordSize, len(buf))
		groups = append(groups, fmt.Sprintf("%x", buf[start:end]))
	}
	return strings.Join(groups, ":")
}
