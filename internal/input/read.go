package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalid marks documents that fail structural validation.
var ErrInvalid = errors.New("invalid input document")

// Read parses a JSON document. With validate set, the document must carry a
// MODTRAN list whose cases all have a well-formed MODTRANINPUT.
func Read(data []byte, validate bool) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if !validate {
		return &doc, nil
	}
	if _, ok := raw["MODTRAN"]; !ok {
		return nil, fmt.Errorf("%w: missing MODTRAN case list", ErrInvalid)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile reads and parses the document at path.
func ReadFile(path string, validate bool) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input document: %w", err)
	}
	doc, err := Read(data, validate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks that every case has a valid MODTRANINPUT.
func (d *Document) Validate() error {
	for i, c := range d.Cases {
		if c.Input == nil {
			return fmt.Errorf("%w: case %d: missing MODTRANINPUT", ErrInvalid, i)
		}
		if err := c.Input.Validate(); err != nil {
			return fmt.Errorf("%w: case %d: %w", ErrInvalid, i, err)
		}
	}
	return nil
}

// Marshal encodes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
