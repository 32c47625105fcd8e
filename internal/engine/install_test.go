package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mod6/internal/engine"
)

func TestExampleFiles(t *testing.T) {
	root := t.TempDir()
	examples := filepath.Join(root, "TestCases", "JSON")
	if err := os.MkdirAll(examples, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"b.json", "a.json", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(examples, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	env := &engine.Env{Exe: "mod6c", Data: filepath.Join(root, "DATA")}
	got, err := env.ExampleFiles()
	if err != nil {
		t.Fatalf("ExampleFiles returned error: %v", err)
	}
	want := []string{filepath.Join(examples, "a.json"), filepath.Join(examples, "b.json")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("examples mismatch (-want +got):\n%s", diff)
	}

	empty := &engine.Env{Data: filepath.Join(t.TempDir(), "DATA")}
	if _, err := empty.ExampleFiles(); err == nil {
		t.Fatal("expected error without an examples directory")
	}
}

func TestParseInputDefaults(t *testing.T) {
	catalog := `{"VALID_MODTRAN": {"MODTRANINPUT": {
		"NAME": {"DEFAULT": ""},
		"RTOPTIONS": {
			"MODTRN": {"ENUM": ["RT_MODTRAN", "RT_CORRK_FAST"]},
			"IMULT": {"DEFAULT": 0}
		},
		"SPECTRAL": {"V1": {"DEFAULT": 2000.0}}
	}}}`
	got, err := engine.ParseInputDefaults([]byte(catalog))
	if err != nil {
		t.Fatalf("ParseInputDefaults returned error: %v", err)
	}
	want := map[string]any{
		"NAME": "",
		"RTOPTIONS": map[string]any{
			"MODTRN": []any{"RT_MODTRAN", "RT_CORRK_FAST"},
			"IMULT":  float64(0),
		},
		"SPECTRAL": map[string]any{"V1": float64(2000)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	if _, err := engine.ParseInputDefaults([]byte(`{"OTHER": {}}`)); err == nil {
		t.Fatal("expected error for catalog without MODTRANINPUT")
	}
}
