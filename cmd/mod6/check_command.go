package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mod6/internal/crosscheck"
	"mod6/internal/logging"
)

type checkResultView struct {
	Check   string `json:"check"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

type checkReportView struct {
	Case    int               `json:"case"`
	Root    string            `json:"root"`
	Failed  bool              `json:"failed"`
	Results []checkResultView `json:"results"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		source  sourceFlags
		workers int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the output encodings of each case agree",
		Long: `Compare the encodings each case of a run was written in:

  acd text/binary   ACD text file against the binary file
  tape7/sli         binary tape7 against the spectral library
  sli/json          spectral library against the JSON spectra

A comparison is skipped when one of its files is missing. The command fails
when any comparison disagrees beyond its tolerance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			files, run, err := source.load(runCtx, ctx)
			if err != nil {
				return err
			}
			if run != nil {
				runCtx = logging.WithRunID(runCtx, run.ID)
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Check.Workers
			}

			reports, err := crosscheck.Run(runCtx, files, crosscheck.Options{
				Workers: workers,
				Logger:  logging.WithContext(runCtx, logger),
			})
			if err != nil {
				return err
			}

			failed := 0
			views := make([]checkReportView, len(reports))
			for i, r := range reports {
				view := checkReportView{Case: r.Case, Root: r.Root, Failed: r.Failed()}
				for _, res := range r.Results {
					view.Results = append(view.Results, checkResultView{
						Check:   string(res.Check),
						Outcome: string(res.Outcome),
						Detail:  res.Detail,
					})
				}
				if view.Failed {
					failed++
				}
				views[i] = view
			}

			if jsonOut {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else {
				renderCheckReports(cmd, views)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed cross-checks", failed, len(reports))
			}
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "Cases checked concurrently (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func renderCheckReports(cmd *cobra.Command, views []checkReportView) {
	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, "No cases to check")
		return
	}
	var rows [][]string
	for _, view := range views {
		for _, res := range view.Results {
			rows = append(rows, []string{strconv.Itoa(view.Case), view.Root, res.Check, res.Outcome, res.Detail})
		}
	}
	writeTable(out, []string{"Case", "Root", "Check", "Outcome", "Detail"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft})
}
