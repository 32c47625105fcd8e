package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mod6/internal/tape7"
	"mod6/internal/testsupport"
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read %s: %v", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", dst, err)
	}
}

func TestDecodeACDBinaryAndText(t *testing.T) {
	dir := t.TempDir()
	records := testsupport.ACDRecords(2, 17)
	bin := testsupport.WriteBytes(t, dir, "case_b.acd", testsupport.EncodeACDBinary(testsupport.ACDHeader(17), records))
	text := testsupport.WriteBytes(t, dir, "case.acd", []byte(testsupport.EncodeACDText(records)))

	out, _, err := runCLI(t, []string{"decode", "acd", bin, "-n", "3"}, "")
	if err != nil {
		t.Fatalf("decode acd: %v", err)
	}
	requireContains(t, out, "Records: 34")
	requireContains(t, out, "k-index count: 17 (RT_CORRK_FAST)")
	requireContains(t, out, "spherical_albedo")
	if rows := strings.Count(out, "\n2000\t"); rows != 3 {
		t.Fatalf("expected 3 printed records, got %d:\n%s", rows, out)
	}

	out, _, err = runCLI(t, []string{"decode", "acd", "--text", text}, "")
	if err != nil {
		t.Fatalf("decode acd --text: %v", err)
	}
	requireContains(t, out, "Records: 34")

	out, _, err = runCLI(t, []string{"decode", "acd", bin, "--combine", "spherical_albedo", "--json"}, "")
	if err != nil {
		t.Fatalf("decode acd --combine: %v", err)
	}
	var combined map[string][]float64
	if err := json.Unmarshal([]byte(out), &combined); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff([]float64{2000, 2001}, combined["freq"]); diff != "" {
		t.Fatalf("band frequencies mismatch (-want +got):\n%s", diff)
	}
	if len(combined["spherical_albedo"]) != 2 {
		t.Fatalf("expected 2 combined values, got %v", combined["spherical_albedo"])
	}

	if _, _, err := runCLI(t, []string{"decode", "acd", "--text", text, "--combine", "freq"}, ""); err == nil {
		t.Fatal("expected --combine with --text to fail")
	}
}

func TestDecodeACDRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	header := testsupport.ACDHeader(17)
	header[3] = 5
	bin := testsupport.WriteBytes(t, dir, "bad_b.acd", testsupport.EncodeACDBinary(header, testsupport.ACDRecords(1, 5)))

	if _, _, err := runCLI(t, []string{"decode", "acd", bin}, ""); err == nil {
		t.Fatal("expected invalid k-index count to fail")
	}
	out, _, err := runCLI(t, []string{"decode", "acd", bin, "--no-validate"}, "")
	if err != nil {
		t.Fatalf("decode acd --no-validate: %v", err)
	}
	requireContains(t, out, "(unknown)")
}

func TestDecodeTape7Wavelengths(t *testing.T) {
	dir := t.TempDir()
	rows := testsupport.Tape7Rows(tape7.KindTransmittance, 3)
	path := testsupport.WriteBytes(t, dir, "case_b.tp7", testsupport.EncodeTape7(t, tape7.KindTransmittance, rows))

	out, _, err := runCLI(t, []string{"decode", "tape7", path, "-u", "um"}, "")
	if err != nil {
		t.Fatalf("decode tape7: %v", err)
	}
	requireContains(t, out, "Spectra: transmittance")
	requireContains(t, out, "Records: 3")
	requireContains(t, out, "wavelength (um)")
	// 4000 cm-1 is 2.5 um
	requireContains(t, out, "2.5\t")

	out, _, err = runCLI(t, []string{"decode", "tape7", path, "--json", "-u", "nm"}, "")
	if err != nil {
		t.Fatalf("decode tape7 --json: %v", err)
	}
	var view columnsView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if view.Records != 3 || len(view.Columns["wavelength"]) != 3 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if got := view.Columns["wavelength"][0]; got < 2499.999 || got > 2500.001 {
		t.Fatalf("expected 2500 nm, got %v", got)
	}
}

func TestDecodeSLISummary(t *testing.T) {
	dir := t.TempDir()
	hdr := testsupport.WriteENVI(t, dir, "lib", testsupport.ENVILibrary{
		Names:      []string{"combin trans", "H2O trans"},
		Wavelength: []float64{0.4, 0.5, 0.6},
		Spectra:    [][]float64{{0.9, 0.8, 0.7}, {1, 0.5, 0.25}},
	})

	out, _, err := runCLI(t, []string{"decode", "sli", hdr}, "")
	if err != nil {
		t.Fatalf("decode sli: %v", err)
	}
	requireContains(t, out, "Samples: 3")
	requireContains(t, out, "Wavelength: 0.4 to 0.6 Micrometers")
	requireContains(t, out, "H2O trans\t3\t0.25\t1")

	out, _, err = runCLI(t, []string{"decode", "sli", filepath.Join(dir, "lib.sli"), "--json"}, "")
	if err != nil {
		t.Fatalf("decode sli --json: %v", err)
	}
	var view libraryView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := []spectrumView{
		{Name: "combin trans", Samples: 3, Min: 0.7, Max: 0.9},
		{Name: "H2O trans", Samples: 3, Min: 0.25, Max: 1},
	}
	if diff := cmp.Diff(want, view.Spectra); diff != "" {
		t.Fatalf("spectra mismatch (-want +got):\n%s", diff)
	}
}
