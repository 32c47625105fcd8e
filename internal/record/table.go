package record

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
)

// Table holds decoded records column by column. Values are kept as their raw
// 32-bit words so that two tables decoded from identical bytes compare equal
// bit for bit, NaN payloads included.
type Table struct {
	layout  Layout
	rows    int
	columns map[string][]uint32
}

// NewTable returns an empty table for layout.
func NewTable(layout Layout) *Table {
	columns := make(map[string][]uint32, len(layout.Fields))
	for _, f := range layout.Fields {
		columns[f.Name] = nil
	}
	return &Table{layout: layout, columns: columns}
}

// Decode unpacks every record of layout stored in buf after offset bytes.
// The remainder must hold at least one record and no partial record.
func Decode(buf []byte, offset int, layout Layout) (*Table, error) {
	size := layout.Size()
	if size == 0 {
		return nil, Malformed(layout.Name, "layout has no fields")
	}
	if offset < 0 || len(buf) < offset {
		return nil, Mismatch(layout.Name, "buffer shorter than header", offset, len(buf))
	}
	body := buf[offset:]
	if len(body)%size != 0 {
		return nil, Mismatch(layout.Name, "trailing partial record",
			"a multiple of "+strconv.Itoa(size)+" bytes", len(body))
	}
	rows := len(body) / size
	if rows == 0 {
		return nil, Malformed(layout.Name, "no records after %d-byte header", offset)
	}

	t := NewTable(layout)
	t.rows = rows
	for _, f := range layout.Fields {
		t.columns[f.Name] = make([]uint32, 0, rows*f.words())
	}
	pos := 0
	for r := 0; r < rows; r++ {
		for _, f := range layout.Fields {
			col := t.columns[f.Name]
			for w := 0; w < f.words(); w++ {
				col = append(col, binary.LittleEndian.Uint32(body[pos:pos+WordSize]))
				pos += WordSize
			}
			t.columns[f.Name] = col
		}
	}
	return t, nil
}

// AppendRow adds one record given as raw words in layout order.
func (t *Table) AppendRow(words []uint32) error {
	if len(words) != t.layout.Words() {
		return Mismatch(t.layout.Name, "row width", t.layout.Words(), len(words))
	}
	pos := 0
	for _, f := range t.layout.Fields {
		n := f.words()
		t.columns[f.Name] = append(t.columns[f.Name], words[pos:pos+n]...)
		pos += n
	}
	t.rows++
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int { return t.rows }

// Layout returns the record layout the table was decoded with.
func (t *Table) Layout() Layout { return t.layout }

// Fields lists the public field names in declaration order.
func (t *Table) Fields() []string { return t.layout.Public() }

// Has reports whether name is a public field of the table.
func (t *Table) Has(name string) bool {
	f, ok := t.layout.Field(name)
	return ok && !f.Internal
}

// Words returns the raw words of any field, internal ones included.
func (t *Table) Words(name string) ([]uint32, bool) {
	col, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(col), true
}

// Float32 returns the values of a float32 field.
func (t *Table) Float32(name string) ([]float32, bool) {
	col, ok := t.typed(name, Float32)
	if !ok {
		return nil, false
	}
	out := make([]float32, len(col))
	for i, w := range col {
		out[i] = math.Float32frombits(w)
	}
	return out, true
}

// Int32 returns the values of an int32 field.
func (t *Table) Int32(name string) ([]int32, bool) {
	col, ok := t.typed(name, Int32)
	if !ok {
		return nil, false
	}
	out := make([]int32, len(col))
	for i, w := range col {
		out[i] = int32(w)
	}
	return out, true
}

// Uint32 returns the values of a uint32 field.
func (t *Table) Uint32(name string) ([]uint32, bool) {
	col, ok := t.typed(name, Uint32)
	if !ok {
		return nil, false
	}
	return slices.Clone(col), true
}

// Float64 returns any single-word public field widened to float64.
func (t *Table) Float64(name string) ([]float64, bool) {
	f, ok := t.layout.Field(name)
	if !ok || f.Internal {
		return nil, false
	}
	col := t.columns[name]
	out := make([]float64, len(col))
	for i, w := range col {
		out[i] = widen(f.Kind, w)
	}
	return out, true
}

// Row returns record i's public fields, in Fields order, as float64.
func (t *Table) Row(i int) []float64 {
	var out []float64
	for _, f := range t.layout.Fields {
		if f.Internal {
			continue
		}
		n := f.words()
		for _, w := range t.columns[f.Name][i*n : (i+1)*n] {
			out = append(out, widen(f.Kind, w))
		}
	}
	return out
}

// Equal reports whether both tables share a layout and hold bit-identical
// public values.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.rows != other.rows || !slices.Equal(t.Fields(), other.Fields()) {
		return false
	}
	for _, name := range t.Fields() {
		if !slices.Equal(t.columns[name], other.columns[name]) {
			return false
		}
	}
	return true
}

func (t *Table) typed(name string, kind Kind) ([]uint32, bool) {
	f, ok := t.layout.Field(name)
	if !ok || f.Internal || f.Kind != kind {
		return nil, false
	}
	return t.columns[name], true
}

func widen(kind Kind, w uint32) float64 {
	switch kind {
	case Int32:
		return float64(int32(w))
	case Float32:
		return float64(math.Float32frombits(w))
	default:
		return float64(w)
	}
}
