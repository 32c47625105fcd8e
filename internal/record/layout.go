package record

import "fmt"

// WordSize is the width in bytes of every field word.
const WordSize = 4

// Kind identifies how a 32-bit word is interpreted.
type Kind int

const (
	Int32 Kind = iota
	Uint32
	Float32
)

func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one named run of words inside a record.
type Field struct {
	Name string
	Kind Kind
	// Count is the number of consecutive words; zero means one.
	Count int
	// Internal fields are decoded for validation but not listed by Table.Fields.
	Internal bool
}

func (f Field) words() int {
	if f.Count <= 0 {
		return 1
	}
	return f.Count
}

// Layout is an ordered record descriptor.
type Layout struct {
	Name   string
	Fields []Field
}

// Size returns the record size in bytes.
func (l Layout) Size() int {
	return l.Words() * WordSize
}

// Words returns the number of 32-bit words in one record.
func (l Layout) Words() int {
	total := 0
	for _, f := range l.Fields {
		total += f.words()
	}
	return total
}

// Public returns the names of the non-internal fields in declaration order.
func (l Layout) Public() []string {
	names := make([]string, 0, len(l.Fields))
	for _, f := range l.Fields {
		if !f.Internal {
			names = append(names, f.Name)
		}
	}
	return names
}

// Field looks up a field descriptor by name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Floats builds public float32 fields for each name.
func Floats(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Kind: Float32}
	}
	return fields
}

// Concat joins field groups into one slice.
func Concat(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
