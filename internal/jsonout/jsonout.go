// Package jsonout extracts spectra and status from engine JSON output
// documents without decoding the whole document.
package jsonout

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/blang/semver/v4"
	"github.com/tidwall/gjson"

	"mod6/internal/input"
)

// ErrMissing reports a path absent from the output document.
var ErrMissing = errors.New("missing from JSON output")

// Document is a raw engine output document.
type Document struct {
	Path string
	data []byte
}

// Open reads the output document at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read JSON output: %w", err)
	}
	return Parse(path, data)
}

// Parse wraps an in-memory output document; path is used in error messages.
func Parse(path string, data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}
	return &Document{Path: path, data: data}, nil
}

// Len returns the number of cases in the document.
func (d *Document) Len() int {
	return int(gjson.GetBytes(d.data, "MODTRAN.#").Int())
}

// Spectra returns the numeric arrays stored under
// MODTRAN[caseIndex].MODTRANOUTPUT.SPECTRA.<keyword>, keyed by output name.
// Non-array members are skipped.
func (d *Document) Spectra(caseIndex int, keyword string) (map[string][]float64, error) {
	path := fmt.Sprintf("MODTRAN.%d.MODTRANOUTPUT.SPECTRA.%s", caseIndex, keyword)
	section := gjson.GetBytes(d.data, path)
	if !section.Exists() || !section.IsObject() {
		return nil, fmt.Errorf("%s: %w: %s", d.Path, ErrMissing, path)
	}
	out := make(map[string][]float64)
	var convErr error
	section.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true
		}
		items := value.Array()
		values := make([]float64, len(items))
		for i, item := range items {
			if item.Type != gjson.Number {
				convErr = fmt.Errorf("%s: %s.%s[%d]: expected number, got %s", d.Path, path, key.String(), i, item.Type)
				return false
			}
			values[i] = item.Float()
		}
		out[key.String()] = values
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}

// Status is a case's MODTRANSTATUS with its engine version parsed.
type Status struct {
	input.CaseStatus
	Engine *semver.Version
}

// EngineMajor is the engine major version whose output layout this module reads.
const EngineMajor = 6

// Compatible reports whether the engine version is known and matches EngineMajor.
func (s *Status) Compatible() bool {
	return s.Engine != nil && s.Engine.Major == EngineMajor
}

var reVersionCore = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Status returns MODTRAN[caseIndex].MODTRANSTATUS.
func (d *Document) Status(caseIndex int) (*Status, error) {
	path := fmt.Sprintf("MODTRAN.%d.MODTRANSTATUS", caseIndex)
	section := gjson.GetBytes(d.data, path)
	if !section.Exists() {
		return nil, fmt.Errorf("%s: %w: %s", d.Path, ErrMissing, path)
	}
	st := &Status{CaseStatus: input.CaseStatus{
		Version:    section.Get("VERSION").String(),
		Name:       section.Get("NAME").String(),
		CaseStatus: section.Get("CASE_STATUS").String(),
		Warnings:   section.Get("WARNINGS").String(),
	}}
	if core := reVersionCore.FindString(st.Version); core != "" {
		// engine version strings are not semver (ex.: "MODTRAN(R) 6.0.2.5")
		v, err := semver.ParseTolerant(core)
		if err != nil {
			return nil, fmt.Errorf("%s: parse engine version %q: %w", d.Path, st.Version, err)
		}
		st.Engine = &v
	}
	return st, nil
}
