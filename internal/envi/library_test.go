package envi_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mod6/internal/envi"
	"mod6/internal/record"
	"mod6/internal/testsupport"
)

func sampleLibrary(dataType int, bigEndian bool) testsupport.ENVILibrary {
	return testsupport.ENVILibrary{
		Names:      []string{"total transmittance", "path emission"},
		Wavelength: []float64{2.5, 2.25, 2},
		Spectra: [][]float64{
			{0.5, 0.25, 0.125},
			{1e-6, 2e-6, 4e-6},
		},
		DataType:  dataType,
		BigEndian: bigEndian,
	}
}

func TestOpenLibraryByteOrders(t *testing.T) {
	tests := []struct {
		name      string
		dataType  int
		bigEndian bool
	}{
		{"float64 little endian", 5, false},
		{"float64 big endian", 5, true},
		{"float32 little endian", 4, false},
		{"float32 big endian", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			want := sampleLibrary(tt.dataType, tt.bigEndian)
			hdr := testsupport.WriteENVI(t, dir, "case0", want)

			for _, path := range []string{hdr, filepath.Join(dir, "case0.sli")} {
				lib, err := envi.Open(path)
				if err != nil {
					t.Fatalf("Open(%s) returned error: %v", path, err)
				}
				if diff := cmp.Diff(want.Names, lib.Names); diff != "" {
					t.Fatalf("names mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(want.Wavelength, lib.Wavelength); diff != "" {
					t.Fatalf("wavelength mismatch (-want +got):\n%s", diff)
				}
				for i := range want.Spectra {
					for j, v := range want.Spectra[i] {
						got := lib.Spectra[i][j]
						if tt.dataType == 4 {
							v = float64(float32(v))
						}
						if got != v {
							t.Fatalf("spectra[%d][%d] = %v, want %v", i, j, got, v)
						}
					}
				}
			}
		})
	}
}

func TestDatasetKeysBySpectrumName(t *testing.T) {
	dir := t.TempDir()
	hdr := testsupport.WriteENVI(t, dir, "case0", sampleLibrary(5, false))
	ds, err := envi.ReadDataset(hdr)
	if err != nil {
		t.Fatalf("ReadDataset returned error: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d", ds.Len())
	}
	if got := ds.Vars["path emission"][2]; got != 4e-6 {
		t.Fatalf("path emission[2] = %v", got)
	}
	if ds.Attrs["file type"] != "ENVI Spectral Library" {
		t.Fatalf("unexpected attrs: %v", ds.Attrs)
	}
	if _, ok := ds.Attrs["wavelength"]; ok {
		t.Fatal("wavelength should be a coordinate, not an attribute")
	}
}

func TestOpenRejectsNonLibrary(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteBytes(t, dir, "image.hdr", []byte("ENVI\nsamples = 1\nlines = 1\nbands = 1\ndata type = 4\nfile type = ENVI Standard\n"))
	testsupport.WriteBytes(t, dir, "image.img", make([]byte, 4))
	if _, err := envi.Open(filepath.Join(dir, "image.hdr")); !errors.Is(err, envi.ErrNotLibrary) {
		t.Fatalf("expected ErrNotLibrary, got %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing data", func(t *testing.T) {
		dir := t.TempDir()
		hdr := testsupport.WriteBytes(t, dir, "lonely.hdr", []byte("ENVI\n"))
		if _, err := envi.Open(hdr); err == nil || !strings.Contains(err.Error(), "no data file") {
			t.Fatalf("expected missing data error, got %v", err)
		}
	})
	t.Run("truncated data", func(t *testing.T) {
		dir := t.TempDir()
		hdr := testsupport.WriteENVI(t, dir, "case0", sampleLibrary(5, false))
		testsupport.WriteBytes(t, dir, "case0.sli", make([]byte, 8))
		if _, err := envi.Open(hdr); !errors.Is(err, record.ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	badHeaders := []struct {
		name   string
		fields string
	}{
		{"negative samples", "samples = -2\nlines = 1\nheader offset = 0\n"},
		{"negative lines", "samples = 2\nlines = -1\nheader offset = 0\n"},
		{"negative offset", "samples = 1\nlines = 1\nheader offset = -4\n"},
		{"size overflow", "samples = 4611686018427387904\nlines = 4\nheader offset = 0\n"},
	}
	for _, tt := range badHeaders {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			hdr := testsupport.WriteBytes(t, dir, "bad.hdr", []byte("ENVI\nfile type = ENVI Spectral Library\ndata type = 4\nbands = 1\n"+tt.fields))
			testsupport.WriteBytes(t, dir, "bad.sli", make([]byte, 16))
			if _, err := envi.Open(hdr); !errors.Is(err, record.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestParseHeaderMultilineValues(t *testing.T) {
	h, err := envi.ParseHeader(strings.NewReader("ENVI\nSpectra Names = {\n a,\n b }\nlines = 2\n"))
	if err != nil {
		t.Fatalf("ParseHeader returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.List("spectra names")); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"spectra names", "lines"}, h.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if _, err := envi.ParseHeader(strings.NewReader("NOT ENVI\n")); !errors.Is(err, record.ErrFormat) {
		t.Fatalf("expected ErrFormat for bad magic, got %v", err)
	}
}
