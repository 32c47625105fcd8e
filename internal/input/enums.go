package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RTAlgorithm selects the radiative transfer band model (RTOPTIONS.MODTRN).
type RTAlgorithm string

const (
	RTModtran      RTAlgorithm = "RT_MODTRAN"
	RTCorrKSlow    RTAlgorithm = "RT_CORRK_SLOW"
	RTCorrKFast    RTAlgorithm = "RT_CORRK_FAST"
	RTModtranPolar RTAlgorithm = "RT_MODTRAN_POLAR"
	RTLineByLine   RTAlgorithm = "RT_LINE_BY_LINE"
)

// Valid reports whether a is a known algorithm.
func (a RTAlgorithm) Valid() bool {
	switch a {
	case RTModtran, RTCorrKSlow, RTCorrKFast, RTModtranPolar, RTLineByLine:
		return true
	}
	return false
}

// RTExecutionMode selects what the engine computes (RTOPTIONS.IEMSCT).
type RTExecutionMode string

const (
	RTTransmittance   RTExecutionMode = "RT_TRANSMITTANCE"
	RTThermalOnly     RTExecutionMode = "RT_THERMAL_ONLY"
	RTSolarAndThermal RTExecutionMode = "RT_SOLAR_AND_THERMAL"
	RTSolarIrradiance RTExecutionMode = "RT_SOLAR_IRRADIANCE"
	RTLunarAndThermal RTExecutionMode = "RT_LUNAR_AND_THERMAL"
	RTLunarIrradiance RTExecutionMode = "RT_LUNAR_IRRADIANCE"
)

// Spectral output keywords used under MODTRANOUTPUT.SPECTRA.
const (
	KeywordTransmittance = "TRANSMITTANCE"
	KeywordRadiance      = "RADIANCE"
	KeywordIrradiance    = "IRRADIANCE"
)

// Valid reports whether m is a known execution mode.
func (m RTExecutionMode) Valid() bool {
	switch m {
	case RTTransmittance, RTThermalOnly, RTSolarAndThermal,
		RTSolarIrradiance, RTLunarAndThermal, RTLunarIrradiance:
		return true
	}
	return false
}

// SpectralKeyword returns the JSON spectra section written for this mode.
func (m RTExecutionMode) SpectralKeyword() string {
	switch m {
	case RTTransmittance:
		return KeywordTransmittance
	case RTSolarIrradiance, RTLunarIrradiance:
		return KeywordIrradiance
	default:
		return KeywordRadiance
	}
}

// IsIrradiance reports whether the mode produces irradiance-only spectra.
func (m RTExecutionMode) IsIrradiance() bool {
	return m.SpectralKeyword() == KeywordIrradiance
}

// JSONPrintOpt is the bit set selecting JSON output content (FILEOPTIONS.JSONOPT).
type JSONPrintOpt int

const (
	WrtNone        JSONPrintOpt = 0
	WrtStatus      JSONPrintOpt = 1
	WrtInput       JSONPrintOpt = 2
	WrtStatInput   JSONPrintOpt = WrtStatus | WrtInput
	WrtOutput      JSONPrintOpt = 4
	WrtStatOutput  JSONPrintOpt = WrtStatus | WrtOutput
	WrtInputOutput JSONPrintOpt = WrtInput | WrtOutput
	WrtAll         JSONPrintOpt = WrtStatus | WrtInput | WrtOutput
)

var jsonPrintOptNames = []string{
	"WRT_NONE",
	"WRT_STATUS",
	"WRT_INPUT",
	"WRT_STAT_INPUT",
	"WRT_OUTPUT",
	"WRT_STAT_OUTPUT",
	"WRT_INPUT_OUTPUT",
	"WRT_ALL",
}

// Has reports whether every bit of flag is set.
func (o JSONPrintOpt) Has(flag JSONPrintOpt) bool { return o&flag == flag }

func (o JSONPrintOpt) String() string {
	if o >= 0 && int(o) < len(jsonPrintOptNames) {
		return jsonPrintOptNames[o]
	}
	return "JSONPrintOpt(" + strconv.Itoa(int(o)) + ")"
}

func (o JSONPrintOpt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(o))
}

func (o *JSONPrintOpt) UnmarshalJSON(data []byte) error {
	v, err := decodeIntOrName(data, "JSONOPT", jsonPrintOptNames)
	if err != nil {
		return err
	}
	if v < 0 || v >= len(jsonPrintOptNames) {
		return fmt.Errorf("JSONOPT: value %d out of range", v)
	}
	*o = JSONPrintOpt(v)
	return nil
}

// FileControl limits which legacy files the engine writes (FILEOPTIONS.NOFILE).
type FileControl int

const (
	FCAllowAll   FileControl = 0
	FCTape6Only  FileControl = 1
	FCNoFiles    FileControl = 2
	fileControlN             = 3
)

var fileControlNames = []string{"FC_ALLOWALL", "FC_TAPE6ONLY", "FC_NOFILES"}

func (c FileControl) String() string {
	if c >= 0 && c < fileControlN {
		return fileControlNames[c]
	}
	return "FileControl(" + strconv.Itoa(int(c)) + ")"
}

func (c FileControl) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

func (c *FileControl) UnmarshalJSON(data []byte) error {
	v, err := decodeIntOrName(data, "NOFILE", fileControlNames)
	if err != nil {
		return err
	}
	if v < 0 || v >= int(fileControlN) {
		return fmt.Errorf("NOFILE: value %d out of range", v)
	}
	*c = FileControl(v)
	return nil
}

// MessageLevel sets console verbosity (FILEOPTIONS.MSGPRNT).
type MessageLevel int

var messageLevelNames = []string{"MSG_NONE", "MSG_ERROR", "MSG_WARN", "MSG_INFO", "MSG_DEBUG"}

func (l MessageLevel) String() string {
	if l >= 0 && int(l) < len(messageLevelNames) {
		return messageLevelNames[l]
	}
	return "MessageLevel(" + strconv.Itoa(int(l)) + ")"
}

func (l MessageLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(l))
}

func (l *MessageLevel) UnmarshalJSON(data []byte) error {
	v, err := decodeIntOrName(data, "MSGPRNT", messageLevelNames)
	if err != nil {
		return err
	}
	if v < 0 || v >= len(messageLevelNames) {
		return fmt.Errorf("MSGPRNT: value %d out of range", v)
	}
	*l = MessageLevel(v)
	return nil
}

// decodeIntOrName accepts a JSON integer or one of names, whose position is
// its integer value.
func decodeIntOrName(data []byte, key string, names []string) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		name = strings.TrimSpace(name)
		for i, candidate := range names {
			if candidate == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%s: unknown value %q", key, name)
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
