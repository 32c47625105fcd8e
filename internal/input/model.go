package input

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Document is an engine JSON document: a list of cases under "MODTRAN".
type Document struct {
	Cases []Case `json:"MODTRAN"`
}

// Case is one entry of a document. Input documents carry MODTRANINPUT;
// output documents may also carry status and output sections.
type Case struct {
	Input  *CaseInput      `json:"MODTRANINPUT,omitempty"`
	Status *CaseStatus     `json:"MODTRANSTATUS,omitempty"`
	Output json.RawMessage `json:"MODTRANOUTPUT,omitempty"`
}

// CaseStatus is the MODTRANSTATUS block written by the engine.
type CaseStatus struct {
	Version    string `json:"VERSION,omitempty"`
	Name       string `json:"NAME,omitempty"`
	CaseStatus string `json:"CASE_STATUS,omitempty"`
	Warnings   string `json:"WARNINGS,omitempty"`
}

// FileOptions is the FILEOPTIONS block. Every key is optional; a nil pointer
// means the key is absent, which is distinct from a present blank string.
type FileOptions struct {
	NoFile    *FileControl  `json:"NOFILE,omitempty"`
	Binary    *bool         `json:"BINARY,omitempty"`
	CKPrint   *bool         `json:"CKPRNT,omitempty"`
	NoPrint   *int          `json:"NOPRNT,omitempty"`
	MsgPrint  *MessageLevel `json:"MSGPRNT,omitempty"`
	DataDir   *string       `json:"DATDIR,omitempty"`
	FLRoot    *string       `json:"FLROOT,omitempty"`
	CSVPrint  *string       `json:"CSVPRNT,omitempty"`
	SLIPrint  *string       `json:"SLIPRNT,omitempty"`
	JSONPrint *string       `json:"JSONPRNT,omitempty"`
	JSONOpt   *JSONPrintOpt `json:"JSONOPT,omitempty"`

	unknown []string
}

var fileOptionKeys = []string{
	"NOFILE", "BINARY", "CKPRNT", "NOPRNT", "MSGPRNT", "DATDIR",
	"FLROOT", "CSVPRNT", "SLIPRNT", "JSONPRNT", "JSONOPT",
}

var validNoPrint = []int{-2, -1, 0, 1, 2, 3}

func (o *FileOptions) UnmarshalJSON(data []byte) error {
	type plain FileOptions
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = FileOptions(decoded)
	o.unknown = nil
	for key := range raw {
		if !slices.Contains(fileOptionKeys, key) {
			o.unknown = append(o.unknown, key)
		}
	}
	sort.Strings(o.unknown)
	return nil
}

// Validate reports unknown keys and out-of-range values.
func (o *FileOptions) Validate() error {
	if o == nil {
		return nil
	}
	if len(o.unknown) > 0 {
		return fmt.Errorf("FILEOPTIONS: unknown keys %s", strings.Join(o.unknown, ", "))
	}
	if o.NoPrint != nil && !slices.Contains(validNoPrint, *o.NoPrint) {
		return fmt.Errorf("FILEOPTIONS.NOPRNT: unsupported value %d", *o.NoPrint)
	}
	return nil
}

// Sections of MODTRANINPUT kept as generic JSON.
var genericSections = []string{
	"RTOPTIONS", "ATMOSPHERE", "AEROSOLS", "GEOMETRY", "SURFACE", "SPECTRAL", "TOOLBOX",
}

// CaseInput is one case's MODTRANINPUT. FILEOPTIONS and the naming keys are
// typed; the remaining sections live in Sections keyed by their JSON name.
type CaseInput struct {
	Name         *string
	Description  *string
	Case         *int
	CaseTemplate *int
	FileOptions  *FileOptions
	Sections     map[string]any
}

type caseInputKeys struct {
	Name         *string      `json:"NAME,omitempty"`
	Description  *string      `json:"DESCRIPTION,omitempty"`
	Case         *int         `json:"CASE,omitempty"`
	CaseTemplate *int         `json:"CASE TEMPLATE,omitempty"`
	FileOptions  *FileOptions `json:"FILEOPTIONS,omitempty"`
}

var typedCaseKeys = []string{"NAME", "DESCRIPTION", "CASE", "CASE TEMPLATE", "FILEOPTIONS"}

func (c *CaseInput) UnmarshalJSON(data []byte) error {
	var keys caseInputKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CaseInput{
		Name:         keys.Name,
		Description:  keys.Description,
		Case:         keys.Case,
		CaseTemplate: keys.CaseTemplate,
		FileOptions:  keys.FileOptions,
	}
	for key, value := range raw {
		if slices.Contains(typedCaseKeys, key) {
			continue
		}
		var section any
		if err := json.Unmarshal(value, &section); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if c.Sections == nil {
			c.Sections = make(map[string]any)
		}
		c.Sections[key] = section
	}
	return nil
}

func (c CaseInput) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Sections)+len(typedCaseKeys))
	maps.Copy(out, c.Sections)
	if c.Name != nil {
		out["NAME"] = *c.Name
	}
	if c.Description != nil {
		out["DESCRIPTION"] = *c.Description
	}
	if c.Case != nil {
		out["CASE"] = *c.Case
	}
	if c.CaseTemplate != nil {
		out["CASE TEMPLATE"] = *c.CaseTemplate
	}
	if c.FileOptions != nil {
		out["FILEOPTIONS"] = c.FileOptions
	}
	return json.Marshal(out)
}

// Options returns the case's file options, or an empty set when absent.
func (c *CaseInput) Options() FileOptions {
	if c == nil || c.FileOptions == nil {
		return FileOptions{}
	}
	return *c.FileOptions
}

// ExecutionMode returns RTOPTIONS.IEMSCT when it is set to a known mode.
func (c *CaseInput) ExecutionMode() (RTExecutionMode, bool) {
	v, ok := c.sectionString("RTOPTIONS", "IEMSCT")
	if !ok {
		return "", false
	}
	mode := RTExecutionMode(v)
	return mode, mode.Valid()
}

// Algorithm returns RTOPTIONS.MODTRN when it is set to a known algorithm.
func (c *CaseInput) Algorithm() (RTAlgorithm, bool) {
	v, ok := c.sectionString("RTOPTIONS", "MODTRN")
	if !ok {
		return "", false
	}
	algo := RTAlgorithm(v)
	return algo, algo.Valid()
}

func (c *CaseInput) sectionString(section, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	m, ok := c.Sections[section].(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

// Validate checks section names and the typed file options.
func (c *CaseInput) Validate() error {
	names := slices.Sorted(maps.Keys(c.Sections))
	for _, name := range names {
		if !slices.Contains(genericSections, name) {
			return fmt.Errorf("MODTRANINPUT: unknown section %q", name)
		}
	}
	if mode, ok := c.sectionString("RTOPTIONS", "IEMSCT"); ok && !RTExecutionMode(mode).Valid() {
		return fmt.Errorf("RTOPTIONS.IEMSCT: unknown mode %q", mode)
	}
	if algo, ok := c.sectionString("RTOPTIONS", "MODTRN"); ok && !RTAlgorithm(algo).Valid() {
		return fmt.Errorf("RTOPTIONS.MODTRN: unknown algorithm %q", algo)
	}
	return c.FileOptions.Validate()
}
