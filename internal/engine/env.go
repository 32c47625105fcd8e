// Package engine locates an engine installation and describes the
// environment it runs under.
package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"mod6/internal/deps"
)

// Environment variable names read by the engine.
const (
	VarExe  = "MODTRAN_EXE"
	VarData = "MODTRAN_DATA"
	// VarPrefix selects the variables kept in Env.Extra.
	VarPrefix = "MODTRAN"
)

// ErrNotSet reports a required variable missing from the environment.
var ErrNotSet = errors.New("not set in environment")

// Env is the engine executable, its DATA directory and any other MODTRAN*
// variables it should see.
type Env struct {
	Exe   string
	Data  string
	Extra map[string]string
}

// FromEnviron builds an Env from "KEY=VALUE" pairs such as os.Environ().
func FromEnviron(environ []string) (*Env, error) {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return FromMap(vars)
}

// FromMap builds an Env from a variable map. Variables without the MODTRAN
// prefix are ignored.
func FromMap(vars map[string]string) (*Env, error) {
	extra := make(map[string]string)
	for k, v := range vars {
		if strings.HasPrefix(k, VarPrefix) {
			extra[k] = v
		}
	}
	exe, ok := extra[VarExe]
	if !ok {
		return nil, fmt.Errorf("%s %w", VarExe, ErrNotSet)
	}
	data, ok := extra[VarData]
	if !ok {
		return nil, fmt.Errorf("%s %w", VarData, ErrNotSet)
	}
	delete(extra, VarExe)
	delete(extra, VarData)
	return &Env{Exe: exe, Data: data, Extra: extra}, nil
}

// assignment matches simple variable exports in Bourne-style shell files.
var assignment = regexp.MustCompile(`^[\t ]*(?:export[\t ]+)?[A-Za-z_][A-Za-z0-9_]*=`)

// FromShell reads variable assignments from a shell file such as the one
// shipped with the engine installer. Lines other than plain assignments
// (conditionals, function calls, comments) are skipped.
func FromShell(r io.Reader) (*Env, error) {
	var kept strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if assignment.MatchString(line) {
			kept.WriteString(strings.TrimSpace(line))
			kept.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan shell file: %w", err)
	}
	vars, err := godotenv.Unmarshal(kept.String())
	if err != nil {
		return nil, fmt.Errorf("parse shell exports: %w", err)
	}
	return FromMap(vars)
}

// FromShellFile reads the shell file at path.
func FromShellFile(path string) (*Env, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open engine env file: %w", err)
	}
	defer f.Close()
	env, err := FromShell(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// Map returns every variable of the environment.
func (e *Env) Map() map[string]string {
	out := make(map[string]string, len(e.Extra)+2)
	maps.Copy(out, e.Extra)
	out[VarExe] = e.Exe
	out[VarData] = e.Data
	return out
}

// ToEnviron renders the environment as sorted "KEY=VALUE" pairs.
func (e *Env) ToEnviron() []string {
	vars := e.Map()
	keys := slices.Sorted(maps.Keys(vars))
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + vars[k]
	}
	return out
}

// Check reports whether the executable and DATA directory are usable.
func (e *Env) Check() []deps.Status {
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        "Engine",
		Command:     e.Exe,
		Description: "Radiative transfer executable",
	}})
	return append(statuses, deps.CheckDirectories([]deps.Requirement{{
		Name:        "Engine data",
		Command:     e.Data,
		Description: "DATA directory with band models and keywords.json",
	}})...)
}
