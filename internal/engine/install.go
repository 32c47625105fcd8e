package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
)

// KeywordsFile is the keyword catalog shipped in the DATA directory.
const KeywordsFile = "keywords.json"

var exampleDirs = []string{"TEST", "TestCases"}

// InstallRoot is the directory holding DATA.
func (e *Env) InstallRoot() string {
	abs, err := filepath.Abs(e.Data)
	if err != nil {
		abs = e.Data
	}
	return filepath.Dir(filepath.Clean(abs))
}

// ExampleFiles lists the JSON example inputs shipped with the installation,
// sorted by name.
func (e *Env) ExampleFiles() ([]string, error) {
	root := e.InstallRoot()
	for _, dir := range exampleDirs {
		base := filepath.Join(root, dir, "JSON")
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(base), "*.json")
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", base, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("found no example files in %s", base)
		}
		sort.Strings(matches)
		for i, m := range matches {
			matches[i] = filepath.Join(base, m)
		}
		return matches, nil
	}
	return nil, fmt.Errorf("unable to locate examples directory in %s", root)
}

// InputDefaults reads the default value of every input keyword from the
// keyword catalog. Enumerated keywords yield their list of allowed values.
func (e *Env) InputDefaults() (map[string]any, error) {
	path := filepath.Join(e.Data, KeywordsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword catalog: %w", err)
	}
	return ParseInputDefaults(data)
}

// ParseInputDefaults extracts VALID_MODTRAN.MODTRANINPUT defaults from a
// keyword catalog.
func ParseInputDefaults(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("keyword catalog is not valid JSON")
	}
	section := gjson.GetBytes(data, "VALID_MODTRAN.MODTRANINPUT")
	if !section.IsObject() {
		return nil, fmt.Errorf("keyword catalog: missing VALID_MODTRAN.MODTRANINPUT")
	}
	out, _ := keywordDefault(section).(map[string]any)
	return out, nil
}

func keywordDefault(v gjson.Result) any {
	if !v.IsObject() {
		return v.Value()
	}
	if enum := v.Get("ENUM"); enum.Exists() {
		return enum.Value()
	}
	if def := v.Get("DEFAULT"); def.Exists() {
		return def.Value()
	}
	out := make(map[string]any)
	v.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = keywordDefault(value)
		return true
	})
	return out
}
