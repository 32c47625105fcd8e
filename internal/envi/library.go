package envi

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"mod6/internal/record"
)

// dataExtensions are tried, in order, when locating the data file of a header.
var dataExtensions = []string{".sli", ".spl", ".lib", ".dat", ".img", ""}

// Library is an opened ENVI spectral library.
type Library struct {
	HeaderPath string
	DataPath   string
	Header     *Header
	// Names holds one entry per spectrum (line).
	Names []string
	// Wavelength holds one entry per sample.
	Wavelength []float64
	// Spectra is indexed [line][sample].
	Spectra [][]float64
}

// Open reads a spectral library given either its header or its data path.
func Open(path string) (*Library, error) {
	headerPath, dataPath, err := locate(path)
	if err != nil {
		return nil, err
	}
	hf, err := os.Open(headerPath)
	if err != nil {
		return nil, fmt.Errorf("open ENVI header: %w", err)
	}
	defer hf.Close()
	header, err := ParseHeader(hf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", headerPath, err)
	}
	fileType, _ := header.String("file type")
	if !strings.Contains(strings.ToLower(fileType), "spectral library") {
		return nil, fmt.Errorf("%w: %s", ErrNotLibrary, path)
	}

	lib, err := decode(header, dataPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataPath, err)
	}
	lib.HeaderPath = headerPath
	lib.DataPath = dataPath
	return lib, nil
}

func locate(path string) (string, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".hdr") {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for _, ext := range dataExtensions {
			candidate := base + ext
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return path, candidate, nil
			}
		}
		return "", "", fmt.Errorf("locate ENVI data file for %s: no data file found", path)
	}
	candidates := []string{strings.TrimSuffix(path, filepath.Ext(path)) + ".hdr", path + ".hdr"}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, path, nil
		}
	}
	return "", "", fmt.Errorf("locate ENVI header for %s: no header file found", path)
}

func decode(h *Header, dataPath string) (*Library, error) {
	samples, err := h.RequireInt("samples")
	if err != nil {
		return nil, err
	}
	lines, err := h.RequireInt("lines")
	if err != nil {
		return nil, err
	}
	bands, err := h.Int("bands", 1)
	if err != nil {
		return nil, err
	}
	if bands != 1 {
		return nil, record.Mismatch("envi", "spectral library band count", 1, bands)
	}
	dataType, err := h.RequireInt("data type")
	if err != nil {
		return nil, err
	}
	offset, err := h.Int("header offset", 0)
	if err != nil {
		return nil, err
	}
	byteOrderValue, err := h.Int("byte order", 0)
	if err != nil {
		return nil, err
	}
	var order binary.ByteOrder = binary.LittleEndian
	switch byteOrderValue {
	case 0:
	case 1:
		order = binary.BigEndian
	default:
		return nil, record.Mismatch("envi", "byte order", "0 or 1", byteOrderValue)
	}
	read, size, err := sampleReader(dataType, order)
	if err != nil {
		return nil, err
	}
	for _, dim := range []struct {
		key   string
		value int
	}{{"samples", samples}, {"lines", lines}, {"header offset", offset}} {
		if dim.value < 0 {
			return nil, record.Mismatch("envi", dim.key, ">= 0", dim.value)
		}
	}
	if samples > 0 && lines > (math.MaxInt-offset)/size/samples {
		return nil, record.Malformed("envi", "data size %d x %d x %d overflows", lines, samples, size)
	}

	buf, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("read ENVI data: %w", err)
	}
	want := offset + lines*samples*size
	if len(buf) < want {
		return nil, record.Mismatch("envi", "data file size", want, len(buf))
	}

	spectra := make([][]float64, lines)
	pos := offset
	for l := range spectra {
		row := make([]float64, samples)
		for s := range row {
			row[s] = read(buf[pos : pos+size])
			pos += size
		}
		spectra[l] = row
	}

	names := h.List("spectra names")
	if names != nil && len(names) != lines {
		return nil, record.Mismatch("envi", "spectra names count", lines, len(names))
	}
	if names == nil {
		names = make([]string, lines)
		for i := range names {
			names[i] = fmt.Sprintf("Spectrum %d", i+1)
		}
	}
	wavelength, err := h.Floats("wavelength")
	if err != nil {
		return nil, err
	}
	if wavelength != nil && len(wavelength) != samples {
		return nil, record.Mismatch("envi", "wavelength count", samples, len(wavelength))
	}
	return &Library{Header: h, Names: names, Wavelength: wavelength, Spectra: spectra}, nil
}

// sampleReader returns a decoder for one value of an ENVI data type.
func sampleReader(dataType int, order binary.ByteOrder) (func([]byte) float64, int, error) {
	switch dataType {
	case 1:
		return func(b []byte) float64 { return float64(b[0]) }, 1, nil
	case 2:
		return func(b []byte) float64 { return float64(int16(order.Uint16(b))) }, 2, nil
	case 3:
		return func(b []byte) float64 { return float64(int32(order.Uint32(b))) }, 4, nil
	case 4:
		return func(b []byte) float64 { return float64(math.Float32frombits(order.Uint32(b))) }, 4, nil
	case 5:
		return func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }, 8, nil
	case 12:
		return func(b []byte) float64 { return float64(order.Uint16(b)) }, 2, nil
	case 13:
		return func(b []byte) float64 { return float64(order.Uint32(b)) }, 4, nil
	case 14:
		return func(b []byte) float64 { return float64(int64(order.Uint64(b))) }, 8, nil
	case 15:
		return func(b []byte) float64 { return float64(order.Uint64(b)) }, 8, nil
	default:
		return nil, 0, record.Malformed("envi", "unsupported data type %d", dataType)
	}
}
