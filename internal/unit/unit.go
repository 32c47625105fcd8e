// Package unit converts between frequency, wavelength and wavenumber
// measures with SI prefixes.
//
// Every unit may be written with its prefix alone ("u") or with the full
// symbol ("um"). The prefix "-" means no scaling ("-m" is metres).
package unit

import (
	"errors"
	"fmt"
	"strings"
)

// SpeedOfLight is the speed of light in vacuum in metres per second.
const SpeedOfLight = 299792458.0

// ErrUnit reports an unknown unit symbol.
var ErrUnit = errors.New("unknown unit")

var prefixScales = map[string]float64{
	"P": 1e15,
	"T": 1e12,
	"G": 1e9,
	"M": 1e6,
	"k": 1e3,
	"-": 1,
	"c": 1e-2,
	"m": 1e-3,
	"u": 1e-6,
	"n": 1e-9,
	"p": 1e-12,
}

type (
	FrequencyUnit  string
	WavelengthUnit string
	WavenumberUnit string
)

const (
	THz FrequencyUnit = "THz"
	GHz FrequencyUnit = "GHz"
	MHz FrequencyUnit = "MHz"
	KHz FrequencyUnit = "kHz"
	Hz  FrequencyUnit = "-Hz"

	Metre      WavelengthUnit = "-m"
	Centimetre WavelengthUnit = "cm"
	Millimetre WavelengthUnit = "mm"
	Micrometre WavelengthUnit = "um"
	Nanometre  WavelengthUnit = "nm"

	PerMetre      WavenumberUnit = "-m-1"
	PerCentimetre WavenumberUnit = "cm-1"
	PerMillimetre WavenumberUnit = "mm-1"
)

func scale(symbol, suffix string) (float64, error) {
	if s, ok := prefixScales[symbol]; ok {
		return s, nil
	}
	if prefix, ok := strings.CutSuffix(symbol, suffix); ok {
		if s, ok := prefixScales[prefix]; ok {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnit, symbol)
}

func (u FrequencyUnit) Scale() (float64, error)  { return scale(string(u), "Hz") }
func (u WavelengthUnit) Scale() (float64, error) { return scale(string(u), "m") }
func (u WavenumberUnit) Scale() (float64, error) { return scale(string(u), "m-1") }

// Frequency is a frequency stored in hertz.
type Frequency struct{ hz float64 }

// Wavelength is a wavelength stored in metres.
type Wavelength struct{ m float64 }

// Wavenumber is a wavenumber stored in inverse metres.
type Wavenumber struct{ perM float64 }

func NewFrequency(v float64, u FrequencyUnit) (Frequency, error) {
	s, err := u.Scale()
	return Frequency{v * s}, err
}

func NewWavelength(v float64, u WavelengthUnit) (Wavelength, error) {
	s, err := u.Scale()
	return Wavelength{v * s}, err
}

// NewWavenumber divides by the scale: 1 cm-1 is 100 m-1.
func NewWavenumber(v float64, u WavenumberUnit) (Wavenumber, error) {
	s, err := u.Scale()
	if err != nil {
		return Wavenumber{}, err
	}
	return Wavenumber{v / s}, nil
}

func (f Frequency) AsFrequency(u FrequencyUnit) (float64, error) {
	s, err := u.Scale()
	return f.hz / s, err
}

func (f Frequency) AsWavelength(u WavelengthUnit) (float64, error) {
	s, err := u.Scale()
	return SpeedOfLight / f.hz / s, err
}

func (f Frequency) AsWavenumber(u WavenumberUnit) (float64, error) {
	s, err := u.Scale()
	return f.hz / SpeedOfLight * s, err
}

func (w Wavelength) AsFrequency(u FrequencyUnit) (float64, error) {
	s, err := u.Scale()
	return SpeedOfLight / w.m / s, err
}

func (w Wavelength) AsWavelength(u WavelengthUnit) (float64, error) {
	s, err := u.Scale()
	return w.m / s, err
}

func (w Wavelength) AsWavenumber(u WavenumberUnit) (float64, error) {
	s, err := u.Scale()
	return 1 / w.m * s, err
}

func (k Wavenumber) AsFrequency(u FrequencyUnit) (float64, error) {
	s, err := u.Scale()
	return SpeedOfLight * k.perM / s, err
}

func (k Wavenumber) AsWavelength(u WavelengthUnit) (float64, error) {
	s, err := u.Scale()
	return 1 / k.perM / s, err
}

func (k Wavenumber) AsWavenumber(u WavenumberUnit) (float64, error) {
	s, err := u.Scale()
	return k.perM * s, err
}

// WavenumbersToWavelengths converts a spectral axis in one pass.
func WavenumbersToWavelengths(values []float64, from WavenumberUnit, to WavelengthUnit) ([]float64, error) {
	fromScale, err := from.Scale()
	if err != nil {
		return nil, err
	}
	toScale, err := to.Scale()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = 1 / (v / fromScale) / toScale
	}
	return out, nil
}
