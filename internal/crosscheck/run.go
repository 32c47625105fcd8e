package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mod6/internal/acd"
	"mod6/internal/envi"
	"mod6/internal/input"
	"mod6/internal/jsonout"
	"mod6/internal/logging"
	"mod6/internal/outputs"
	"mod6/internal/tape7"
)

// Check names one comparison.
type Check string

const (
	CheckACD      Check = "acd text/binary"
	CheckTape7SLI Check = "tape7/sli"
	CheckSLIJSON  Check = "sli/json"
)

// Outcome is the result of one comparison.
type Outcome string

const (
	Passed  Outcome = "passed"
	Failed  Outcome = "failed"
	Skipped Outcome = "skipped"
)

// Result is one comparison applied to one case.
type Result struct {
	Check   Check
	Outcome Outcome
	// Detail explains a skip or failure.
	Detail string
	Err    error
}

// Report holds every comparison of one case.
type Report struct {
	Case    int
	Root    string
	Results []Result
}

// Failed reports whether any comparison of the case failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Outcome == Failed {
			return true
		}
	}
	return false
}

// Options tune Run.
type Options struct {
	// Workers bounds concurrent cases; zero uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Run compares the outputs of every case in files. Comparison failures are
// reported per case; the returned error is non-nil only when ctx ends.
func Run(ctx context.Context, files *outputs.Files, opts Options) ([]Report, error) {
	logger := logging.NewComponentLogger(opts.Logger, "crosscheck")
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, files.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range files.Len() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := checkCase(files, i)
			if err != nil {
				return err
			}
			reports[i] = report
			caseLogger := logger.With(logging.CaseIndex(i), logging.String("root", report.Root))
			for _, res := range report.Results {
				attrs := []logging.Attr{
					logging.String("check", string(res.Check)),
					logging.String("outcome", string(res.Outcome)),
				}
				if res.Detail != "" {
					attrs = append(attrs, logging.String("detail", res.Detail))
				}
				if res.Outcome == Failed {
					caseLogger.Warn("output encodings disagree", logging.Args(attrs...)...)
					continue
				}
				caseLogger.Debug("cross-check finished", logging.Args(attrs...)...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkCase(files *outputs.Files, index int) (Report, error) {
	cf, err := files.At(index)
	if err != nil {
		return Report{}, err
	}
	c, err := files.Case(index)
	if err != nil {
		return Report{}, err
	}
	report := Report{Case: index, Root: cf.RootName()}
	report.Results = append(report.Results,
		runACD(cf),
		runTape7SLI(cf),
		runSLIJSON(cf, c, index),
	)
	return report, nil
}

func missing(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return p
		}
	}
	return ""
}

func skipped(check Check, detail string) Result {
	return Result{Check: check, Outcome: Skipped, Detail: detail}
}

func finish(check Check, err error) Result {
	if err == nil {
		return Result{Check: check, Outcome: Passed}
	}
	return Result{Check: check, Outcome: Failed, Detail: err.Error(), Err: err}
}

func runACD(cf outputs.CaseFiles) Result {
	if p := missing(cf.ACDText(), cf.ACDBinary()); p != "" {
		return skipped(CheckACD, "no "+p)
	}
	text, err := acd.ReadText(cf.ACDText())
	if err != nil {
		return finish(CheckACD, err)
	}
	bin, err := acd.ReadBinary(cf.ACDBinary())
	if err != nil {
		return finish(CheckACD, err)
	}
	return finish(CheckACD, CompareACD(text, bin))
}

func runTape7SLI(cf outputs.CaseFiles) Result {
	if p := missing(cf.Tape7Binary(), cf.SLIHeader()); p != "" {
		return skipped(CheckTape7SLI, "no "+p)
	}
	spectra, err := tape7.Read(cf.Tape7Binary())
	if err != nil {
		return finish(CheckTape7SLI, err)
	}
	ds, err := envi.ReadDataset(cf.SLIHeader())
	if err != nil {
		return finish(CheckTape7SLI, err)
	}
	return finish(CheckTape7SLI, CompareTape7SLI(spectra, ds))
}

func runSLIJSON(cf outputs.CaseFiles, c *input.Case, index int) Result {
	if p := missing(cf.SLIHeader(), cf.JSON()); p != "" {
		return skipped(CheckSLIJSON, "no "+p)
	}
	doc, err := jsonout.Open(cf.JSON())
	if err != nil {
		return finish(CheckSLIJSON, err)
	}
	// a JSON file written per case holds that case alone
	jsonIndex := index
	if doc.Len() == 1 {
		jsonIndex = 0
	}
	keyword, err := spectralKeyword(c, doc, jsonIndex)
	if err != nil {
		return skipped(CheckSLIJSON, err.Error())
	}
	spectra, err := doc.Spectra(jsonIndex, keyword)
	if err != nil {
		return finish(CheckSLIJSON, err)
	}
	ds, err := envi.ReadDataset(cf.SLIHeader())
	if err != nil {
		return finish(CheckSLIJSON, err)
	}
	return finish(CheckSLIJSON, CompareSLIJSON(ds, spectra))
}

var errIrradiance = errors.New("irradiance outputs are not compared")

// spectralKeyword picks the JSON spectra section from the case's execution
// mode, or from whichever section the document holds when the mode is unset.
func spectralKeyword(c *input.Case, doc *jsonout.Document, index int) (string, error) {
	if c != nil && c.Input != nil {
		if mode, ok := c.Input.ExecutionMode(); ok {
			if mode.IsIrradiance() {
				return "", errIrradiance
			}
			return mode.SpectralKeyword(), nil
		}
	}
	for _, keyword := range []string{input.KeywordTransmittance, input.KeywordRadiance} {
		if _, err := doc.Spectra(index, keyword); err == nil {
			return keyword, nil
		}
	}
	return "", fmt.Errorf("no transmittance or radiance spectra in %s", doc.Path)
}
