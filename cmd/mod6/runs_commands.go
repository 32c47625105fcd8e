package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mod6/internal/catalog"
	"mod6/internal/logging"
)

type runView struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	WorkDir   string    `json:"work_dir"`
	Cases     int       `json:"cases"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newRunView(r *catalog.Run) runView {
	return runView{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Source:    r.Source,
		WorkDir:   r.WorkDir,
		Cases:     r.Cases,
		Label:     r.Label,
		CreatedAt: r.CreatedAt,
	}
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage the catalog of known runs",
	}
	runsCmd.AddCommand(newRunsAddCommand(ctx))
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsRemoveCommand(ctx))
	return runsCmd
}

func newRunsAddCommand(ctx *commandContext) *cobra.Command {
	var inputPath, workDir, scanDir, label string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a run by its input document or output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDir != "" && inputPath == "" {
				return errors.New("--work-dir requires --input")
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			var run *catalog.Run
			if inputPath != "" {
				run, err = store.RegisterInput(cmd.Context(), inputPath, workDir, label)
			} else {
				run, err = store.RegisterScan(cmd.Context(), scanDir, label)
			}
			if err != nil {
				return err
			}
			logging.NewComponentLogger(logger, "catalog").Info("run registered",
				logging.RunID(run.ID),
				logging.Path(run.Source),
				logging.Int("cases", run.Cases),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Registered run %s (%d cases)\n", run.ID, run.Cases)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input document whose cases were run")
	cmd.Flags().StringVarP(&workDir, "work-dir", "w", "", "Directory the engine ran in (defaults to the input's directory)")
	cmd.Flags().StringVar(&scanDir, "scan", "", "Directory of JSON outputs to register")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Free-form label")
	cmd.MarkFlagsMutuallyExclusive("input", "scan")
	cmd.MarkFlagsOneRequired("input", "scan")
	return cmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]runView, len(runs))
			for i, r := range runs {
				views[i] = newRunView(r)
			}
			if jsonOut {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No runs registered")
				return nil
			}
			rows := make([][]string, len(views))
			for i, v := range views {
				rows[i] = []string{v.ID, v.Kind, strconv.Itoa(v.Cases), v.Label, v.Source, v.CreatedAt.Local().Format(time.DateTime)}
			}
			writeTable(out, []string{"ID", "Kind", "Cases", "Label", "Source", "Registered"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a registered run and its cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			files, err := run.Files()
			if err != nil {
				return fmt.Errorf("run %s: %w", run.ID, err)
			}

			type caseView struct {
				Case     int    `json:"case"`
				Root     string `json:"root"`
				Existing int    `json:"existing_files"`
			}
			cases := make([]caseView, 0, files.Len())
			for i, cf := range files.All() {
				cases = append(cases, caseView{Case: i, Root: cf.RootName(), Existing: len(cf.Entries(true))})
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					runView
					CaseFiles []caseView `json:"case_files"`
				}{newRunView(run), cases})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:         %s\n", run.ID)
			fmt.Fprintf(out, "Kind:       %s\n", run.Kind)
			fmt.Fprintf(out, "Source:     %s\n", run.Source)
			fmt.Fprintf(out, "Work dir:   %s\n", run.WorkDir)
			if run.Label != "" {
				fmt.Fprintf(out, "Label:      %s\n", run.Label)
			}
			fmt.Fprintf(out, "Registered: %s\n", run.CreatedAt.Local().Format(time.DateTime))
			if files.Len() != run.Cases {
				fmt.Fprintf(out, "Cases:      %d (%d when registered)\n", files.Len(), run.Cases)
			} else {
				fmt.Fprintf(out, "Cases:      %d\n", files.Len())
			}
			rows := make([][]string, len(cases))
			for i, c := range cases {
				rows[i] = []string{strconv.Itoa(c.Case), c.Root, strconv.Itoa(c.Existing)}
			}
			writeTable(out, []string{"Case", "Root", "Files on disk"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func newRunsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Forget a registered run (its files are left untouched)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s\n", run.ID)
			return nil
		},
	}
}
