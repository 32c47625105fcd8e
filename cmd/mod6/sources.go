package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mod6/internal/catalog"
	"mod6/internal/outputs"
)

// sourceFlags select the run a command works on.
type sourceFlags struct {
	input    string
	workDir  string
	scan     string
	run      string
	validate bool
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.input, "input", "i", "", "Input document whose cases were run")
	cmd.Flags().StringVarP(&s.workDir, "work-dir", "w", "", "Directory the engine ran in (defaults to the input's directory)")
	cmd.Flags().StringVar(&s.scan, "scan", "", "Reconstruct the run from the JSON outputs in this directory")
	cmd.Flags().StringVar(&s.run, "run", "", "Catalog run ID or unique ID prefix")
	cmd.Flags().BoolVar(&s.validate, "validate", false, "Validate the input document while loading it")
	cmd.MarkFlagsMutuallyExclusive("input", "scan", "run")
	cmd.MarkFlagsOneRequired("input", "scan", "run")
}

// load resolves the selected run. The returned run is nil unless --run was used.
func (s *sourceFlags) load(ctx context.Context, cc *commandContext) (*outputs.Files, *catalog.Run, error) {
	if s.workDir != "" && s.input == "" {
		return nil, nil, errors.New("--work-dir requires --input")
	}
	switch {
	case s.input != "":
		files, err := outputs.Load(s.input, s.workDir, s.validate)
		return files, nil, err
	case s.scan != "":
		files, err := outputs.LoadDir(s.scan)
		return files, nil, err
	default:
		store, err := cc.openCatalog()
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()
		run, err := store.Get(ctx, s.run)
		if err != nil {
			return nil, nil, err
		}
		files, err := run.Files()
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		return files, run, nil
	}
}

// selectCases parses a case selector: empty for every case, a single index
// ("3", "-1"), or a start:stop[:step] slice with optional bounds.
func selectCases(files *outputs.Files, selector string) ([]int, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return files.Indices(nil, nil, nil)
	}
	if !strings.Contains(selector, ":") {
		i, err := strconv.Atoi(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid case index %q", selector)
		}
		if _, err := files.Case(i); err != nil {
			return nil, err
		}
		if i < 0 {
			i += files.Len()
		}
		return []int{i}, nil
	}

	parts := strings.Split(selector, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid case slice %q", selector)
	}
	bounds := make([]*int, 3)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid case slice %q", selector)
		}
		bounds[i] = &v
	}
	return files.Indices(bounds[0], bounds[1], bounds[2])
}
