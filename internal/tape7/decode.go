package tape7

import (
	"fmt"
	"os"
	"slices"

	"mod6/internal/record"
)

// Spectra is a decoded tape7 binary file.
type Spectra struct {
	Kind    Kind
	Records *record.Table
}

// Read decodes the tape7 binary file at path.
func Read(path string) (*Spectra, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tape7 binary: %w", err)
	}
	s, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode infers the record layout from the byte at HeaderSize, decodes every
// record, and checks that the first and last records are framed by markers
// matching that byte.
func Decode(buf []byte) (*Spectra, error) {
	if len(buf) <= HeaderSize {
		return nil, record.Mismatch("tape7", "buffer shorter than header", fmt.Sprintf("more than %d bytes", HeaderSize), len(buf))
	}
	kind, err := KindFromMarker(buf[HeaderSize])
	if err != nil {
		return nil, err
	}
	layout := kind.Layout()
	table, err := record.Decode(buf, HeaderSize, layout)
	if err != nil {
		return nil, err
	}

	lead, _ := table.Words("_delim0")
	trail, _ := table.Words("_delim1")
	n := len(lead) - 1
	marker := kind.Marker()
	observed := [2][2]uint32{{lead[0], trail[0]}, {lead[n], trail[n]}}
	if observed != [2][2]uint32{{marker, marker}, {marker, marker}} {
		return nil, record.Mismatch(layout.Name, "unexpected word(s) in (first, last)-row delimiter columns",
			fmt.Sprintf("all 0x%x", marker), fmt.Sprintf("%#x", observed))
	}
	return &Spectra{Kind: kind, Records: table}, nil
}

// Len returns the number of spectral points.
func (s *Spectra) Len() int { return s.Records.Len() }

// Comparable returns the columns shared with the JSON, CSV and SLI outputs.
func (s *Spectra) Comparable() []string {
	var out []string
	for _, name := range s.Records.Fields() {
		if !slices.Contains(LegacyOnlyFields, name) {
			out = append(out, name)
		}
	}
	return out
}
