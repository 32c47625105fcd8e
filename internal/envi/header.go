package envi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mod6/internal/record"
)

// ErrNotLibrary reports an ENVI file whose header does not describe a
// spectral library.
var ErrNotLibrary = errors.New("not a spectral library")

// Header is a parsed ENVI header. Keys are lower-cased; brace-delimited
// values are stored without braces.
type Header struct {
	Fields map[string]string
	order  []string
}

// ParseHeader reads an ENVI header. The first non-blank line must be "ENVI".
func ParseHeader(r io.Reader) (*Header, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	h := &Header{Fields: make(map[string]string)}
	sawMagic := false
	var pendingKey string
	var pending strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if pendingKey != "" {
			pending.WriteByte('\n')
			pending.WriteString(line)
			if strings.Contains(line, "}") {
				h.set(pendingKey, unbrace(pending.String()))
				pendingKey = ""
				pending.Reset()
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !sawMagic {
			if !strings.HasPrefix(trimmed, "ENVI") {
				return nil, record.Mismatch("envi header", "magic line", "ENVI", trimmed)
			}
			sawMagic = true
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, "{") && !strings.Contains(value, "}") {
			pendingKey = key
			pending.WriteString(value)
			continue
		}
		h.set(key, unbrace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ENVI header: %w", err)
	}
	if !sawMagic {
		return nil, record.Malformed("envi header", "empty header")
	}
	if pendingKey != "" {
		return nil, record.Malformed("envi header", "unterminated value for %q", pendingKey)
	}
	return h, nil
}

func (h *Header) set(key, value string) {
	if _, ok := h.Fields[key]; !ok {
		h.order = append(h.order, key)
	}
	h.Fields[key] = value
}

// Keys returns header keys in file order.
func (h *Header) Keys() []string {
	return append([]string(nil), h.order...)
}

// String returns the value of key.
func (h *Header) String(key string) (string, bool) {
	v, ok := h.Fields[key]
	return v, ok
}

// Int returns the integer value of key, or fallback when absent.
func (h *Header) Int(key string, fallback int) (int, error) {
	v, ok := h.Fields[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, record.Malformed("envi header", "%s: %v", key, err)
	}
	return n, nil
}

// RequireInt returns the integer value of a mandatory key.
func (h *Header) RequireInt(key string) (int, error) {
	if _, ok := h.Fields[key]; !ok {
		return 0, record.Malformed("envi header", "missing required key %q", key)
	}
	return h.Int(key, 0)
}

// List splits a brace list value on commas.
func (h *Header) List(key string) []string {
	v, ok := h.Fields[key]
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Floats parses a brace list value as numbers.
func (h *Header) Floats(key string) ([]float64, error) {
	items := h.List(key)
	if items == nil {
		return nil, nil
	}
	out := make([]float64, len(items))
	for i, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, record.Malformed("envi header", "%s[%d]: %v", key, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func unbrace(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "{")
	value = strings.TrimSuffix(value, "}")
	return strings.TrimSpace(value)
}
