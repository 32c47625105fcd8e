package acd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"mod6/internal/bandmodel"
	"mod6/internal/input"
	"mod6/internal/record"
)

// Field names of one ACD record, in file order.
const (
	FieldFreq                    = "freq"
	FieldLOS                     = "los"
	FieldKInt                    = "k_int"
	FieldKWeight                 = "k_weight"
	FieldSunGndDiffuseTransm     = "sun_gnd_diffuse_transm"
	FieldSunGndObsDirectTransm   = "sun_gnd_obs_direct_transm"
	FieldObsGndEmbeddedDifTransm = "obs_gnd_embedded_dif_transm"
	FieldObsGndDirectTransm      = "obs_gnd_direct_transm"
	FieldSphericalAlbedo         = "spherical_albedo"
)

const (
	// HeaderSize is the byte length of the binary header, equal to one record.
	HeaderSize = 11 * record.WordSize
	// Marker is the record marker framing every binary record: the payload
	// length in bytes, which is also ASCII '$'.
	Marker = 0x24

	headerSentinel float32 = -9999.0
)

var dataFields = []record.Field{
	{Name: FieldFreq, Kind: record.Float32},
	{Name: FieldLOS, Kind: record.Int32},
	{Name: FieldKInt, Kind: record.Int32},
	{Name: FieldKWeight, Kind: record.Float32},
	{Name: FieldSunGndDiffuseTransm, Kind: record.Float32},
	{Name: FieldSunGndObsDirectTransm, Kind: record.Float32},
	{Name: FieldObsGndEmbeddedDifTransm, Kind: record.Float32},
	{Name: FieldObsGndDirectTransm, Kind: record.Float32},
	{Name: FieldSphericalAlbedo, Kind: record.Float32},
}

// DataLayout is the nine-column ACD record without framing.
var DataLayout = record.Layout{Name: "acd", Fields: dataFields}

// RecordLayout is one framed binary ACD record.
var RecordLayout = record.Layout{
	Name: "acd binary",
	Fields: record.Concat(
		[]record.Field{{Name: "_delim1", Kind: record.Int32, Internal: true}},
		dataFields,
		[]record.Field{{Name: "_delim2", Kind: record.Int32, Internal: true}},
	),
}

// ErrUnknownAlgorithm reports a k-index count with no matching band model.
var ErrUnknownAlgorithm = errors.New("unknown band model")

// kCountAlgorithms maps the header k-index count to the band model that
// produces it. A count of 1 is also written by RT_MODTRAN_POLAR.
var kCountAlgorithms = map[int32]input.RTAlgorithm{
	1:   input.RTModtran,
	17:  input.RTCorrKFast,
	33:  input.RTCorrKSlow,
	100: input.RTLineByLine,
}

// KCounts lists the legal header k-index counts in ascending order.
func KCounts() []int32 {
	counts := make([]int32, 0, len(kCountAlgorithms))
	for k := range kCountAlgorithms {
		counts = append(counts, k)
	}
	slices.Sort(counts)
	return counts
}

// Binary is a decoded binary ACD file.
type Binary struct {
	Records *record.Table
	// KCount is the number of k sub-bands per spectral point read from the header.
	KCount int32
}

// Algorithm maps the header k-index count to the band model that produced it.
func (b *Binary) Algorithm() (input.RTAlgorithm, error) {
	algo, ok := kCountAlgorithms[b.KCount]
	if !ok {
		return "", fmt.Errorf("%w: k-index count %d", ErrUnknownAlgorithm, b.KCount)
	}
	return algo, nil
}

// CombineBands sums a field's weighted k sub-band components into one value
// per spectral band.
func (b *Binary) CombineBands(field string) ([]float64, error) {
	values, ok := b.Records.Float64(field)
	if !ok {
		return nil, fmt.Errorf("unknown ACD field %q", field)
	}
	kInt, _ := b.Records.Int32(FieldKInt)
	if !bandmodel.CheckKInt(kInt) {
		return nil, record.Malformed(RecordLayout.Name, "k_int is not a sequence of runs starting at 1")
	}
	return bandmodel.CombineByKInt(values, kInt)
}

// ReadBinary reads and validates the binary ACD file at path.
func ReadBinary(path string) (*Binary, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read binary ACD: %w", err)
	}
	b, err := DecodeBinary(buf, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// DecodeBinary decodes a binary ACD buffer. With validate set the header,
// the first and last record markers, and the k_int progression are checked.
// Truncation, a trailing partial record and an empty body are always errors.
func DecodeBinary(buf []byte, validate bool) (*Binary, error) {
	if len(buf) < HeaderSize {
		return nil, record.Mismatch(RecordLayout.Name, "buffer shorter than header", HeaderSize, len(buf))
	}
	header := make([]uint32, HeaderSize/record.WordSize)
	for i := range header {
		header[i] = binary.LittleEndian.Uint32(buf[i*record.WordSize:])
	}
	kCount := int32(header[3])

	if validate {
		if err := checkHeader(header, buf[:HeaderSize]); err != nil {
			return nil, err
		}
	}

	table, err := record.Decode(buf, HeaderSize, RecordLayout)
	if err != nil {
		return nil, err
	}

	if validate {
		if err := checkDelimiters(table); err != nil {
			return nil, err
		}
		if err := checkKProgression(table, kCount); err != nil {
			return nil, err
		}
	}
	return &Binary{Records: table, KCount: kCount}, nil
}

func checkHeader(header []uint32, raw []byte) error {
	checks := []struct {
		ok      bool
		message string
	}{
		{header[0] == Marker, "expected first word to be $"},
		{math.Float32frombits(header[1]) == headerSentinel, "expected -9999.0 sentinel in second word"},
		{header[2] == 0, "expected third word to be 0"},
		{isKCount(header[3]), "expected fourth word to be in (0x01, 0x11, 0x21, 0x64)"},
		// Word 9 is left unchecked.
		{allZero(header[4:9]), "expected words [4:9] to be zero"},
		{header[10] == Marker, "expected last word to be $"},
	}
	for _, c := range checks {
		if !c.ok {
			return record.Malformed(RecordLayout.Name, "bad header, %s: %s", c.message, record.HexWords(raw))
		}
	}
	return nil
}

func checkDelimiters(table *record.Table) error {
	first, _ := table.Words("_delim1")
	last, _ := table.Words("_delim2")
	n := len(first) - 1
	observed := [2][2]uint32{{first[0], last[0]}, {first[n], last[n]}}
	if observed != [2][2]uint32{{Marker, Marker}, {Marker, Marker}} {
		return record.Mismatch(RecordLayout.Name, "unexpected word(s) in (first, last)-row delimiter columns",
			"[[36 36] [36 36]]", observed)
	}
	return nil
}

func checkKProgression(table *record.Table, kCount int32) error {
	if kCount <= 1 {
		return nil
	}
	k := int(kCount)
	kInt, _ := table.Int32(FieldKInt)
	if len(kInt) < k {
		return record.Mismatch(RecordLayout.Name, "too few records for k-index count", k, len(kInt))
	}
	expected := make([]int32, k)
	for i := range expected {
		expected[i] = int32(i + 1)
	}
	leading := kInt[:k]
	trailing := kInt[len(kInt)-k:]
	if !slices.Equal(leading, expected) || !slices.Equal(trailing, expected) {
		return record.Mismatch(RecordLayout.Name, "unexpected k_int progression",
			fmt.Sprint(expected), fmt.Sprintf("%v...%v", leading, trailing))
	}
	return nil
}

func isKCount(w uint32) bool {
	_, ok := kCountAlgorithms[int32(w)]
	return ok
}

func allZero(words []uint32) bool {
	for _, w := range words {
		if w != 0 {
			return false
		}
	}
	return true
}
