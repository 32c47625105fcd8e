package outputs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mod6/internal/input"
	"mod6/internal/outputs"
)

func intPtr(v int) *int { return &v }

func threeCaseDoc() *input.Document {
	doc := &input.Document{}
	for _, root := range []string{"a", "b", "c"} {
		doc.Cases = append(doc.Cases, input.Case{Input: &input.CaseInput{
			FileOptions: &input.FileOptions{FLRoot: strPtr(root)},
		}})
	}
	return doc
}

func roots(t *testing.T, cfs []outputs.CaseFiles) []string {
	t.Helper()
	out := make([]string, len(cfs))
	for i, cf := range cfs {
		out[i] = cf.RootName()
	}
	return out
}

func TestFilesIndexing(t *testing.T) {
	files := outputs.New(threeCaseDoc(), "/w")
	if files.Len() != 3 {
		t.Fatalf("Len() = %d", files.Len())
	}
	last, err := files.At(-1)
	if err != nil {
		t.Fatalf("At(-1): %v", err)
	}
	if last.Tape7Text() != "/w/c.tp7" {
		t.Fatalf("At(-1).Tape7Text() = %q", last.Tape7Text())
	}
	if _, err := files.At(3); !errors.Is(err, outputs.ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
	if _, err := files.At(-4); !errors.Is(err, outputs.ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestFilesSlice(t *testing.T) {
	files := outputs.New(threeCaseDoc(), "/w")
	tests := []struct {
		name              string
		start, stop, step *int
		want              []string
	}{
		{"all", nil, nil, nil, []string{"a", "b", "c"}},
		{"reverse", nil, nil, intPtr(-1), []string{"c", "b", "a"}},
		{"negative start", intPtr(-2), nil, nil, []string{"b", "c"}},
		{"stride", nil, nil, intPtr(2), []string{"a", "c"}},
		{"clamped", intPtr(1), intPtr(99), nil, []string{"b", "c"}},
		{"empty", intPtr(2), intPtr(1), nil, []string{}},
		{"reverse bounded", intPtr(2), intPtr(0), intPtr(-1), []string{"c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := files.Slice(tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatalf("Slice: %v", err)
			}
			if diff := cmp.Diff(tt.want, roots(t, got)); diff != "" {
				t.Fatalf("slice mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := files.Slice(nil, nil, intPtr(0)); err == nil {
		t.Fatal("expected zero step to fail")
	}
}

func TestLoadUsesInputDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.json")
	body := `{"MODTRAN": [{"MODTRANINPUT": {"NAME": "n1", "FILEOPTIONS": {}}}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files, err := outputs.Load(path, "", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if files.WorkDir() != dir {
		t.Fatalf("WorkDir() = %q, want %q", files.WorkDir(), dir)
	}
	cf, _ := files.At(0)
	if cf.ACDText() != filepath.Join(dir, "n1.acd") {
		t.Fatalf("ACDText() = %q", cf.ACDText())
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirConcatenatesSortedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"MODTRAN": [{"MODTRANINPUT": {"FILEOPTIONS": {"FLROOT": "second"}}}]}`)
	writeFile(t, dir, "a.json", `{"MODTRAN": [{"MODTRANINPUT": {"FILEOPTIONS": {"FLROOT": "first"}}}]}`)
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := outputs.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, roots(t, files.All())); diff != "" {
		t.Fatalf("case order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDirSingleFileMayHoldManyCases(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "run.json", `{"MODTRAN": [
		{"MODTRANINPUT": {"NAME": "x"}},
		{"MODTRANINPUT": {"NAME": "y"}}
	]}`)
	files, err := outputs.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if files.Len() != 2 {
		t.Fatalf("Len() = %d", files.Len())
	}
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := outputs.LoadDir(t.TempDir()); !errors.Is(err, outputs.ErrScan) {
			t.Fatalf("expected ErrScan, got %v", err)
		}
	})
	t.Run("multi-case file among many", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.json", `{"MODTRAN": [{"MODTRANINPUT": {}}, {"MODTRANINPUT": {}}]}`)
		writeFile(t, dir, "b.json", `{"MODTRAN": [{"MODTRANINPUT": {}}]}`)
		_, err := outputs.LoadDir(dir)
		if !errors.Is(err, outputs.ErrScan) || !strings.Contains(err.Error(), "a.json") {
			t.Fatalf("expected per-file ErrScan naming a.json, got %v", err)
		}
	})
	t.Run("missing input section", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "only.json", `{"MODTRAN": [{"MODTRANSTATUS": {"CASE_STATUS": "OK"}}]}`)
		_, err := outputs.LoadDir(dir)
		if !errors.Is(err, outputs.ErrScan) || !strings.Contains(err.Error(), "MODTRANINPUT") {
			t.Fatalf("expected missing MODTRANINPUT error, got %v", err)
		}
	})
}
