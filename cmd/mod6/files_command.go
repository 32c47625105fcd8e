package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mod6/internal/outputs"
)

type fileEntryView struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
}

type caseFilesView struct {
	Case  int             `json:"case"`
	Root  string          `json:"root"`
	Files []fileEntryView `json:"files"`
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	var (
		source   sourceFlags
		selector string
		artifact string
		existing bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the output files of each case of a run",
		Long: `List where each case of a run writes its outputs.

Cases are selected with --case: a single index (negative counts from the end)
or a start:stop:step slice. Paths are resolved from each case's FILEOPTIONS
and are listed whether or not the engine wrote them unless --existing is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, _, err := source.load(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			indices, err := selectCases(files, selector)
			if err != nil {
				return err
			}

			views := make([]caseFilesView, 0, len(indices))
			for _, i := range indices {
				cf, err := files.At(i)
				if err != nil {
					return err
				}
				view := caseFilesView{Case: i, Root: cf.RootName()}
				entries, err := caseEntries(cf, outputs.Artifact(artifact), existing)
				if err != nil {
					return err
				}
				for _, e := range entries {
					view.Files = append(view.Files, fileEntryView{Artifact: string(e.Artifact), Path: e.Path, Exists: e.Exists})
				}
				views = append(views, view)
			}

			if jsonOut {
				return writeJSON(cmd, views)
			}
			return renderCaseFiles(cmd, views, existing)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&selector, "case", "", "Case index or start:stop:step slice")
	cmd.Flags().StringVarP(&artifact, "artifact", "a", "", "Only list this artifact (e.g. json, tape7_binary)")
	cmd.Flags().BoolVarP(&existing, "existing", "e", false, "Only list files present on disk")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func caseEntries(cf outputs.CaseFiles, artifact outputs.Artifact, existing bool) ([]outputs.Entry, error) {
	if artifact == "" {
		return cf.Entries(existing), nil
	}
	e, err := cf.Entry(artifact)
	if err != nil {
		return nil, err
	}
	if existing && !e.Exists {
		return nil, nil
	}
	return []outputs.Entry{e}, nil
}

func renderCaseFiles(cmd *cobra.Command, views []caseFilesView, existing bool) error {
	headers := []string{"Case", "Root", "Artifact", "Path"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}
	if !existing {
		headers = append(headers, "Exists")
		aligns = append(aligns, alignLeft)
	}
	var rows [][]string
	for _, view := range views {
		for _, f := range view.Files {
			row := []string{strconv.Itoa(view.Case), view.Root, f.Artifact, f.Path}
			if !existing {
				row = append(row, yesNo(f.Exists))
			}
			rows = append(rows, row)
		}
	}
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No output files found")
		return nil
	}
	writeTable(out, headers, rows, aligns)
	return nil
}
