package unit_test

import (
	"errors"
	"math"
	"testing"

	"mod6/internal/unit"
)

func near(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

func TestFrequencyConversions(t *testing.T) {
	f, err := unit.NewFrequency(120, unit.THz)
	if err != nil {
		t.Fatalf("NewFrequency: %v", err)
	}
	wl, _ := f.AsWavelength(unit.Micrometre)
	near(t, "120 THz in um", wl, 2.5, 0.01)
	wn, _ := f.AsWavenumber(unit.PerCentimetre)
	near(t, "120 THz in cm-1", wn, 4000, 5)

	f, _ = unit.NewFrequency(2.4, unit.GHz)
	wl, _ = f.AsWavelength(unit.Centimetre)
	near(t, "2.4 GHz in cm", wl, 12.5, 0.05)

	f, _ = unit.NewFrequency(1.25, unit.MHz)
	khz, _ := f.AsFrequency(unit.KHz)
	near(t, "1.25 MHz in kHz", khz, 1250, 1e-9)
}

func TestWavelengthConversions(t *testing.T) {
	w, _ := unit.NewWavelength(2.5, unit.Micrometre)
	wn, _ := w.AsWavenumber(unit.PerCentimetre)
	near(t, "2.5 um in cm-1", wn, 4000, 1e-9)
	thz, _ := w.AsFrequency(unit.THz)
	near(t, "2.5 um in THz", thz, 120, 0.5)

	w, _ = unit.NewWavelength(4000, unit.Nanometre)
	um, _ := w.AsWavelength(unit.Micrometre)
	near(t, "4000 nm in um", um, 4, 1e-12)
}

func TestWavenumberConversions(t *testing.T) {
	k, _ := unit.NewWavenumber(4000, unit.PerCentimetre)
	wl, _ := k.AsWavelength(unit.Micrometre)
	near(t, "4000 cm-1 in um", wl, 2.5, 1e-12)
	mm, _ := k.AsWavenumber(unit.PerMillimetre)
	near(t, "4000 cm-1 in mm-1", mm, 400, 1e-9)

	k, _ = unit.NewWavenumber(0.08, unit.PerCentimetre)
	ghz, _ := k.AsFrequency(unit.GHz)
	near(t, "0.08 cm-1 in GHz", ghz, 2.4, 0.005)
}

func TestPrefixOnlyAndUnknownUnits(t *testing.T) {
	w, err := unit.NewWavelength(1, "u")
	if err != nil {
		t.Fatalf("prefix-only unit rejected: %v", err)
	}
	nm, _ := w.AsWavelength("n")
	near(t, "1 u in n", nm, 1000, 1e-9)

	if _, err := unit.NewFrequency(1, "um"); !errors.Is(err, unit.ErrUnit) {
		t.Fatalf("expected ErrUnit for wavelength symbol, got %v", err)
	}
	if _, err := unit.NewWavenumber(1, "xm-1"); !errors.Is(err, unit.ErrUnit) {
		t.Fatalf("expected ErrUnit, got %v", err)
	}
}

func TestWavenumbersToWavelengths(t *testing.T) {
	got, err := unit.WavenumbersToWavelengths([]float64{4000, 5000}, unit.PerCentimetre, unit.Micrometre)
	if err != nil {
		t.Fatalf("WavenumbersToWavelengths: %v", err)
	}
	near(t, "axis[0]", got[0], 2.5, 1e-12)
	near(t, "axis[1]", got[1], 2, 1e-12)
}

func TestBarePrefixMeansMilli(t *testing.T) {
	w, err := unit.NewWavelength(1, "m")
	if err != nil {
		t.Fatalf("NewWavelength: %v", err)
	}
	um, _ := w.AsWavelength(unit.Micrometre)
	near(t, "1 m(illi) in um", um, 1000, 1e-9)
}
