package input_test

import (
	"strings"
	"testing"

	"mod6/internal/input"
)

func TestBuilderStampsFileOptions(t *testing.T) {
	b := input.NewBuilder()
	base := input.CaseInput{
		Sections: map[string]any{
			"RTOPTIONS": map[string]any{"IEMSCT": "RT_TRANSMITTANCE"},
		},
	}
	first, err := b.AddCase(base, map[string]any{"SPECTRAL__V1": 2000.0})
	if err != nil {
		t.Fatalf("AddCase returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := b.TemplateExtend(first, input.CaseInput{}, map[string]any{"SPECTRAL__V2": 2100.0 + float64(i)}); err != nil {
			t.Fatalf("TemplateExtend returned error: %v", err)
		}
	}

	opts := input.DefaultBuildOptions()
	opts.OutputLegacy = true
	opts.OutputSLI = true
	opts.OutputCSV = true
	opts.UnifyCSV = true
	doc, err := b.Build(opts)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(doc.Cases) != 11 {
		t.Fatalf("expected 11 cases, got %d", len(doc.Cases))
	}

	c0 := doc.Cases[0].Input
	if *c0.Name != "case00" {
		t.Fatalf("unexpected name: %q", *c0.Name)
	}
	fo := c0.Options()
	if *fo.FLRoot != "case00" || *fo.JSONPrint != "case00.json" || *fo.SLIPrint != "case00" {
		t.Fatalf("unexpected file options: root=%q json=%q sli=%q", *fo.FLRoot, *fo.JSONPrint, *fo.SLIPrint)
	}
	if *fo.CSVPrint != input.UnifiedCSVName {
		t.Fatalf("unexpected csv: %q", *fo.CSVPrint)
	}
	if *fo.NoFile != input.FCAllowAll || *fo.JSONOpt != input.WrtStatInput {
		t.Fatalf("unexpected NOFILE/JSONOPT: %v %v", *fo.NoFile, *fo.JSONOpt)
	}
	spectral := c0.Sections["SPECTRAL"].(map[string]any)
	if spectral["V1"] != 2000.0 {
		t.Fatalf("override not applied: %v", spectral)
	}

	c10 := doc.Cases[10].Input
	if *c10.Case != 10 || *c10.CaseTemplate != 0 || *c10.Name != "case10" {
		t.Fatalf("unexpected extended case: case=%d template=%d name=%q", *c10.Case, *c10.CaseTemplate, *c10.Name)
	}
}

func TestBuilderKeepsExplicitName(t *testing.T) {
	b := input.NewBuilder()
	name := "mine"
	if _, err := b.AddCase(input.CaseInput{Name: &name}, nil); err != nil {
		t.Fatalf("AddCase returned error: %v", err)
	}
	doc, err := b.Build(input.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	in := doc.Cases[0].Input
	if *in.Name != "mine" || *in.Options().FLRoot != "case0" {
		t.Fatalf("unexpected naming: name=%q root=%q", *in.Name, *in.Options().FLRoot)
	}
	if *in.Options().NoFile != input.FCNoFiles {
		t.Fatalf("expected legacy files disabled by default")
	}
	if in.Options().CSVPrint != nil {
		t.Fatal("expected CSVPRNT unset")
	}
}

func TestBuilderOverrideCollision(t *testing.T) {
	b := input.NewBuilder(input.WithoutValidation())
	base := input.CaseInput{Sections: map[string]any{"SPECTRAL": 5.0}}
	_, err := b.AddCase(base, map[string]any{"SPECTRAL__V1": 1.0})
	if err == nil || !strings.Contains(err.Error(), "expected mapping at SPECTRAL") {
		t.Fatalf("expected collision error, got %v", err)
	}
}

func TestBuilderRejectsEmptyAndBadTemplate(t *testing.T) {
	b := input.NewBuilder()
	if _, err := b.Build(input.DefaultBuildOptions()); err == nil {
		t.Fatal("expected error for empty builder")
	}
	if _, err := b.TemplateExtend(3, input.CaseInput{}, nil); err == nil {
		t.Fatal("expected template range error")
	}
}
