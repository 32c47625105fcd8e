package tape7

import (
	"fmt"

	"mod6/internal/input"
	"mod6/internal/record"
)

// FieldFreq is the spectral coordinate column shared by every layout.
const FieldFreq = "freq"

// FieldLogCombin only appears in tape7 output, never in JSON, CSV or SLI.
const FieldLogCombin = "-log combin"

// TransmittanceFields are the transmittance columns in file order.
var TransmittanceFields = []string{
	FieldFreq,
	"combin trans",
	"H2O trans",
	"umix trans",
	"O3 trans",
	"trace trans",
	"N2 trans",
	"H2Ocnt trans",
	"molec scat",
	"aercld trans",
	"HNO3 trans",
	"aercld abtrns",
	FieldLogCombin,
	"CO2 trans",
	"CO trans",
	"CH4 trans",
	"N2O trans",
	"O2 trans",
	"NH3 trans",
	"NO trans",
	"NO2 trans",
	"SO2 trans",
	"cloud trans",
	"F11 trans",
	"F12 trans",
	"CCl3F trans",
	"CF4 trans",
	"F22 trans",
	"F113 trans",
	"F114 trans",
	"F115 trans",
	"ClONO2 trans",
	"HNO4 trans",
	"CHCl2F trans",
	"CCl4 trans",
	"N2O5 trans",
	"H2-H2 trans",
	"H2-He trans",
	"H2-CH4 trans",
	"CH4-CH4 trans",
}

// RadianceFields are the full radiance columns in file order.
var RadianceFields = []string{
	FieldFreq,
	"total transmittance",
	"path emission",
	"path thermal scat",
	"surface emission",
	"path multiple scat",
	"path single scat",
	"ground reflect",
	"direct reflect",
	"total radiance",
	"reference irradiance",
	"irradiance at observer",
	"- nat log path trans",
	"directional emissivity",
	"top-of-atmosphere irradiance",
	"brightness temp",
}

// ThermalOnlyFields are the radiance columns written when no solar or lunar
// source is modelled.
var ThermalOnlyFields = []string{
	FieldFreq,
	"total transmittance",
	"path emission",
	"path thermal scat",
	"surface emission",
	"ground reflect",
	"total radiance",
	"- nat log path trans",
	"directional emissivity",
	"brightness temp",
}

// LegacyOnlyFields lists columns absent from every other output format.
var LegacyOnlyFields = []string{FieldLogCombin}

// HeaderSize is the byte offset of the first record.
const HeaderSize = 0x6F

// Kind is the spectral content of a tape7 file.
type Kind int

const (
	KindTransmittance Kind = iota + 1
	KindRadiance
	KindRadianceThermalOnly
)

// Record markers, equal to each layout's payload length in bytes.
const (
	markerThermalOnly   = 0x48
	markerRadiance      = 0x74
	markerTransmittance = 0xA0
)

var (
	transmittanceLayout = record.Layout{
		Name: "tape7 transmittance",
		Fields: record.Concat(
			[]record.Field{{Name: "_delim0", Kind: record.Uint32, Internal: true}},
			record.Floats(TransmittanceFields...),
			[]record.Field{{Name: "_delim1", Kind: record.Uint32, Internal: true}},
		),
	}
	radianceLayout = record.Layout{
		Name: "tape7 radiance",
		Fields: record.Concat(
			[]record.Field{{Name: "_delim0", Kind: record.Uint32, Internal: true}},
			record.Floats(RadianceFields...),
			fillFields(11),
		),
	}
	thermalOnlyLayout = record.Layout{
		Name: "tape7 thermal-only radiance",
		Fields: record.Concat(
			[]record.Field{{Name: "_delim0", Kind: record.Uint32, Internal: true}},
			record.Floats(ThermalOnlyFields...),
			fillFields(6),
		),
	}
)

func fillFields(zeros int) []record.Field {
	return []record.Field{
		{Name: "_fill_zero0", Kind: record.Uint32, Count: zeros, Internal: true},
		{Name: "_fill_99", Kind: record.Float32, Internal: true},
		{Name: "_fill_zero1", Kind: record.Uint32, Internal: true},
		{Name: "_delim1", Kind: record.Uint32, Internal: true},
	}
}

// KindFromMarker maps the first record marker byte to its Kind.
func KindFromMarker(b byte) (Kind, error) {
	switch b {
	case markerThermalOnly:
		return KindRadianceThermalOnly, nil
	case markerRadiance:
		return KindRadiance, nil
	case markerTransmittance:
		return KindTransmittance, nil
	default:
		return 0, record.Malformed("tape7", "unable to determine spectra type - unknown delimiter byte 0x%x", b)
	}
}

// Marker returns the record marker framing records of this kind.
func (k Kind) Marker() uint32 {
	switch k {
	case KindRadianceThermalOnly:
		return markerThermalOnly
	case KindRadiance:
		return markerRadiance
	case KindTransmittance:
		return markerTransmittance
	default:
		return 0
	}
}

// Layout returns the framed record layout of this kind.
func (k Kind) Layout() record.Layout {
	switch k {
	case KindRadianceThermalOnly:
		return thermalOnlyLayout
	case KindRadiance:
		return radianceLayout
	default:
		return transmittanceLayout
	}
}

// Fields returns the public columns of this kind.
func (k Kind) Fields() []string {
	return k.Layout().Public()
}

// SpectralKeyword names the JSON spectra section holding the same data.
func (k Kind) SpectralKeyword() string {
	if k == KindTransmittance {
		return input.KeywordTransmittance
	}
	return input.KeywordRadiance
}

func (k Kind) String() string {
	switch k {
	case KindTransmittance:
		return "transmittance"
	case KindRadiance:
		return "radiance"
	case KindRadianceThermalOnly:
		return "radiance (thermal only)"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
