package testsupport

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mod6/internal/tape7"
)

// ACDRecord is one synthetic ACD record.
type ACDRecord struct {
	Freq    float32
	LOS     int32
	KInt    int32
	KWeight float32
	// Values holds the five transmittance and albedo columns in file order.
	Values [5]float32
}

// ACDRecords builds n spectral points with k sub-bands each. k_int runs
// 1..k within every point and the weights of a point sum to one.
func ACDRecords(n, k int) []ACDRecord {
	var out []ACDRecord
	for p := range n {
		for j := range k {
			out = append(out, ACDRecord{
				Freq:    float32(2000 + p),
				LOS:     1,
				KInt:    int32(j + 1),
				KWeight: 1 / float32(k),
				Values: [5]float32{
					0.1 + float32(p)*0.01,
					0.5 + float32(j)*0.001,
					0.25,
					0.75 - float32(p)*0.001,
					0.0625,
				},
			})
		}
	}
	return out
}

// ACDHeader returns the 11 header words of a binary ACD file.
func ACDHeader(kCount int32) []uint32 {
	return []uint32{
		0x24,
		math.Float32bits(-9999),
		0,
		uint32(kCount),
		0, 0, 0, 0, 0,
		0,
		0x24,
	}
}

// EncodeACDBinary renders a binary ACD file with the given header words.
func EncodeACDBinary(header []uint32, records []ACDRecord) []byte {
	words := append([]uint32(nil), header...)
	for _, r := range records {
		words = append(words,
			0x24,
			math.Float32bits(r.Freq),
			uint32(r.LOS),
			uint32(r.KInt),
			math.Float32bits(r.KWeight),
		)
		for _, v := range r.Values {
			words = append(words, math.Float32bits(v))
		}
		words = append(words, 0x24)
	}
	return wordsLE(words)
}

// EncodeACDText renders an ACD text file with five header lines. Values keep
// enough digits to round-trip float32 exactly.
func EncodeACDText(records []ACDRecord) string {
	return EncodeACDTextDigits(records, 9)
}

// EncodeACDTextDigits is EncodeACDText with floating values written to the
// given number of fractional mantissa digits.
func EncodeACDTextDigits(records []ACDRecord, digits int) string {
	sci := func(v float32) string { return fmt.Sprintf("%.*E", digits, v) }
	var b strings.Builder
	b.WriteString(" Atmospheric correction data\n")
	b.WriteString(" synthetic fixture\n")
	b.WriteString("\n")
	b.WriteString("   freq los k_int k_weight sun_diff sun_dir obs_dif obs_dir albedo\n")
	b.WriteString("  (cm-1)\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%12.4f %3d %3d %s", r.Freq, r.LOS, r.KInt, sci(r.KWeight))
		for _, v := range r.Values {
			b.WriteString(" ")
			b.WriteString(sci(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// EncodeTape7 renders a binary tape7 file of the given kind. Each row holds
// the public columns of kind in order.
func EncodeTape7(t testing.TB, kind tape7.Kind, rows [][]float32) []byte {
	t.Helper()

	buf := make([]byte, tape7.HeaderSize)
	for i := range buf {
		buf[i] = ' '
	}
	marker := kind.Marker()
	public := len(kind.Fields())
	for r, row := range rows {
		if len(row) != public {
			t.Fatalf("row %d: expected %d columns, got %d", r, public, len(row))
		}
		var words []uint32
		col := 0
		for _, f := range kind.Layout().Fields {
			n := max(f.Count, 1)
			switch {
			case !f.Internal:
				words = append(words, math.Float32bits(row[col]))
				col++
			case strings.HasPrefix(f.Name, "_delim"):
				words = append(words, marker)
			case f.Name == "_fill_99":
				words = append(words, math.Float32bits(-99))
			default:
				words = append(words, make([]uint32, n)...)
			}
		}
		buf = append(buf, wordsLE(words)...)
	}
	return buf
}

// Tape7Rows builds n rows for kind where column c of row r is r+c/100,
// except the spectral coordinate which is 4000+r.
func Tape7Rows(kind tape7.Kind, n int) [][]float32 {
	cols := len(kind.Fields())
	rows := make([][]float32, n)
	for r := range rows {
		row := make([]float32, cols)
		row[0] = float32(4000 + r)
		for c := 1; c < cols; c++ {
			row[c] = float32(r) + float32(c)/100
		}
		rows[r] = row
	}
	return rows
}

// ENVILibrary describes a synthetic spectral library.
type ENVILibrary struct {
	Names      []string
	Wavelength []float64
	// Spectra is indexed [line][sample].
	Spectra   [][]float64
	DataType  int
	BigEndian bool
}

// WriteENVI writes base.hdr and base.sli into dir and returns the header path.
func WriteENVI(t testing.TB, dir, base string, lib ENVILibrary) string {
	t.Helper()

	dataType := lib.DataType
	if dataType == 0 {
		dataType = 5
	}
	var order binary.AppendByteOrder = binary.LittleEndian
	byteOrder := 0
	if lib.BigEndian {
		order = binary.BigEndian
		byteOrder = 1
	}

	var data []byte
	for _, row := range lib.Spectra {
		for _, v := range row {
			switch dataType {
			case 4:
				data = order.AppendUint32(data, math.Float32bits(float32(v)))
			case 5:
				data = order.AppendUint64(data, math.Float64bits(v))
			default:
				t.Fatalf("unsupported fixture data type %d", dataType)
			}
		}
	}

	wl := make([]string, len(lib.Wavelength))
	for i, w := range lib.Wavelength {
		wl[i] = fmt.Sprintf("%g", w)
	}
	samples := len(lib.Wavelength)
	if samples == 0 && len(lib.Spectra) > 0 {
		samples = len(lib.Spectra[0])
	}
	header := fmt.Sprintf(`ENVI
description = {
  synthetic spectral library}
samples = %d
lines = %d
bands = 1
header offset = 0
file type = ENVI Spectral Library
data type = %d
interleave = bsq
byte order = %d
wavelength units = Micrometers
spectra names = {
 %s}
wavelength = {
 %s}
`, samples, len(lib.Spectra), dataType, byteOrder, strings.Join(lib.Names, ", "), strings.Join(wl, ", "))

	hdrPath := filepath.Join(dir, base+".hdr")
	if err := os.WriteFile(hdrPath, []byte(header), 0o644); err != nil {
		t.Fatalf("write %s: %v", hdrPath, err)
	}
	dataPath := filepath.Join(dir, base+".sli")
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", dataPath, err)
	}
	return hdrPath
}

// OutputCase is one case of a synthetic engine JSON output document.
type OutputCase struct {
	Input map[string]any
	// RawInput, when set, is written as MODTRANINPUT instead of Input.
	RawInput json.RawMessage
	Status   map[string]any
	Spectra  map[string]map[string][]float64
}

// EncodeOutputJSON renders an engine JSON output document.
func EncodeOutputJSON(t testing.TB, cases ...OutputCase) []byte {
	t.Helper()

	list := make([]map[string]any, len(cases))
	for i, c := range cases {
		entry := map[string]any{}
		switch {
		case c.RawInput != nil:
			entry["MODTRANINPUT"] = c.RawInput
		case c.Input != nil:
			entry["MODTRANINPUT"] = c.Input
		}
		if c.Status != nil {
			entry["MODTRANSTATUS"] = c.Status
		}
		if c.Spectra != nil {
			entry["MODTRANOUTPUT"] = map[string]any{"SPECTRA": c.Spectra}
		}
		list[i] = entry
	}
	data, err := json.MarshalIndent(map[string]any{"MODTRAN": list}, "", "  ")
	if err != nil {
		t.Fatalf("marshal output document: %v", err)
	}
	return data
}

// WriteBytes writes data to dir/name and returns the path.
func WriteBytes(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func wordsLE(words []uint32) []byte {
	out := make([]byte, 0, len(words)*4)
	for _, w := range words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}
