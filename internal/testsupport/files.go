package testsupport

import (
	"testing"

	"mod6/internal/crosscheck"
	"mod6/internal/input"
	"mod6/internal/tape7"
)

// WriteInput marshals doc to dir/name and returns the path.
func WriteInput(t testing.TB, dir, name string, doc *input.Document) string {
	t.Helper()

	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal input document: %v", err)
	}
	return WriteBytes(t, dir, name, data)
}

// CaseWithRoot returns a case whose legacy, spectral library and JSON outputs
// all use root, computing mode.
func CaseWithRoot(root string, mode input.RTExecutionMode) input.Case {
	return input.Case{Input: &input.CaseInput{
		Name: &root,
		FileOptions: &input.FileOptions{
			FLRoot:    &root,
			SLIPrint:  &root,
			JSONPrint: &root,
		},
		Sections: map[string]any{"RTOPTIONS": map[string]any{"IEMSCT": string(mode)}},
	}}
}

// WriteCaseOutputs writes one set of n spectral points as root_b.tp7,
// root.hdr/root.sli and root.json in dir, so every encoding agrees. The JSON
// output echoes c as its MODTRANINPUT when c is non-nil.
func WriteCaseOutputs(t testing.TB, dir, root string, kind tape7.Kind, n int, c *input.Case) {
	t.Helper()

	rows := Tape7Rows(kind, n)
	WriteBytes(t, dir, root+"_b.tp7", EncodeTape7(t, kind, rows))

	lib := ENVILibrary{DataType: 5}
	spectra := map[string][]float64{}
	for col, field := range kind.Fields() {
		column := make([]float64, n)
		for r := range rows {
			column[r] = float64(rows[r][col])
		}
		switch field {
		case tape7.FieldFreq:
			lib.Wavelength = column
		case tape7.FieldLogCombin:
		default:
			lib.Names = append(lib.Names, field)
			lib.Spectra = append(lib.Spectra, column)
			spectra[crosscheck.SLIToJSON[field]] = column
		}
	}
	WriteENVI(t, dir, root, lib)

	out := OutputCase{Spectra: map[string]map[string][]float64{kind.SpectralKeyword(): spectra}}
	if c != nil && c.Input != nil {
		data, err := c.Input.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal case input: %v", err)
		}
		out.RawInput = data
	}
	WriteBytes(t, dir, root+".json", EncodeOutputJSON(t, out))
}
