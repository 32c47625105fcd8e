package crosscheck

import (
	"errors"
	"fmt"

	"mod6/internal/acd"
	"mod6/internal/envi"
	"mod6/internal/record"
	"mod6/internal/tape7"
)

// ErrField reports a column present in one encoding and absent in the other.
var ErrField = errors.New("missing field")

// SLIToJSON maps spectral library spectrum names to JSON spectra keys.
var SLIToJSON = map[string]string{
	// transmittance
	"combin trans":  "TOT_TRANS",
	"H2O trans":     "TRANS_H2O",
	"umix trans":    "TRANS_UMIX",
	"O3 trans":      "TRANS_O3",
	"trace trans":   "TRANS_TRACE",
	"N2 trans":      "CONT_N2",
	"H2Ocnt trans":  "CONT_H2O",
	"molec scat":    "MOLEC_SCAT",
	"aercld trans":  "TRANS_AERCLD",
	"HNO3 trans":    "TRANS_HNO3",
	"aercld abtrns": "ABTRNS_AERCLD",
	"CO2 trans":     "TRANS_CO2",
	"CO trans":      "TRANS_CO",
	"CH4 trans":     "TRANS_CH4",
	"N2O trans":     "TRANS_N2O",
	"O2 trans":      "TRANS_O2",
	"NH3 trans":     "TRANS_NH3",
	"NO trans":      "TRANS_NO",
	"NO2 trans":     "TRANS_NO2",
	"SO2 trans":     "TRANS_SO2",
	"cloud trans":   "TRANS_CLOUD",
	"F11 trans":     "TRANS_CFC11",
	"F12 trans":     "TRANS_CFC12",
	"CCl3F trans":   "TRANS_CFC13",
	"CF4 trans":     "TRANS_CFC14",
	"F22 trans":     "TRANS_CFC22",
	"F113 trans":    "TRANS_CFC113",
	"F114 trans":    "TRANS_CFC114",
	"F115 trans":    "TRANS_CFC115",
	"ClONO2 trans":  "TRANS_CLONO2",
	"HNO4 trans":    "TRANS_HNO4",
	"CHCl2F trans":  "TRANS_CHCL2F",
	"CCl4 trans":    "TRANS_CCL4",
	"N2O5 trans":    "TRANS_N2O5",
	"H2-H2 trans":   "TRANS_H2_H2",
	"H2-He trans":   "TRANS_H2_HE",
	"H2-CH4 trans":  "TRANS_H2_CH4",
	"CH4-CH4 trans": "TRANS_CH4_CH4",
	// radiance
	"total transmittance":          "TOT_TRANS",
	"path emission":                "THRML_EM",
	"path thermal scat":            "THRML_SCT",
	"surface emission":             "SURF_EMIS",
	"path multiple scat":           "MULT_SCAT",
	"path single scat":             "SING_SCAT",
	"ground reflect":               "GRND_RFLT",
	"direct reflect":               "DRCT_RFLT",
	"total radiance":               "TOTAL_RAD",
	"reference irradiance":         "REF_SOL",
	"irradiance at observer":       "SOL_AT_OBS",
	"- nat log path trans":         "DEPTH",
	"directional emissivity":       "DIR_EM",
	"top-of-atmosphere irradiance": "TOA_RAD",
	"brightness temp":              "BBODY_TK",
}

// CompareACD checks every ACD field of the text file against the binary one.
func CompareACD(text *record.Table, binary *acd.Binary) error {
	for _, field := range binary.Records.Fields() {
		desired, _ := binary.Records.Float64(field)
		actual, ok := text.Float64(field)
		if !ok {
			return fmt.Errorf("ACD text: %w %q", ErrField, field)
		}
		if err := ACDTextBinary.Columns(field, actual, desired); err != nil {
			return err
		}
	}
	return nil
}

// CompareTape7SLI checks every tape7 column shared with the spectral library.
// The tape7 frequency column is compared with the library wavelengths.
func CompareTape7SLI(spectra *tape7.Spectra, ds *envi.Dataset) error {
	for _, field := range spectra.Comparable() {
		actual, _ := spectra.Records.Float64(field)
		var desired []float64
		if field == tape7.FieldFreq {
			desired = ds.Wavelength
		} else {
			desired = ds.Vars[field]
		}
		if desired == nil {
			return fmt.Errorf("spectral library: %w %q", ErrField, field)
		}
		if err := Tape7SLI.Columns(field, actual, desired); err != nil {
			return err
		}
	}
	return nil
}

// CompareSLIJSON checks every spectrum of the library against its JSON
// counterpart.
func CompareSLIJSON(ds *envi.Dataset, spectra map[string][]float64) error {
	for _, name := range ds.Names {
		key, ok := SLIToJSON[name]
		if !ok {
			return fmt.Errorf("no JSON key for spectrum %q", name)
		}
		desired, ok := spectra[key]
		if !ok {
			return fmt.Errorf("JSON spectra: %w %q (spectrum %q)", ErrField, key, name)
		}
		if err := SLIJSON.Columns(name, ds.Vars[name], desired); err != nil {
			return err
		}
	}
	return nil
}
