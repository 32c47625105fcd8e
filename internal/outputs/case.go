package outputs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mod6/internal/input"
)

// ErrUnknownArtifact reports an artifact name outside the table.
var ErrUnknownArtifact = errors.New("unknown artifact")

// DefaultRoot is the root name used when neither FLROOT nor NAME is set.
const DefaultRoot = "mod6"

// Sentinel roots for artifacts the case did not request. They resolve to
// hidden names the engine never writes.
const (
	jsonNotSet = ".JSONPRNT_NOT_SET"
	sliNotSet  = ".SLIPRNT_NOT_SET"
	csvNotSet  = ".CSVPRNT_NOT_SET"
)

// CaseFiles holds the resolved output locations of a single case.
//
// Not every path exists after a run; which ones do depends on the case's
// options. Several legacy artifacts (CSV, ACD) may hold results of more than
// one case when cases share options, and the engine appends numeric suffixes
// to SLI files of cases sharing an SLIPRNT, which is not modelled here.
//
// A blank JSONPRNT or CSVPRNT resolves to its unset sentinel. A blank SLIPRNT
// does not: it is used as written, so SLIHeader becomes WorkDir/.hdr.
type CaseFiles struct {
	WorkDir string
	Options input.FileOptions
	Name    *string
}

// NewCaseFiles builds the resolver for one case. opts may be nil.
func NewCaseFiles(workDir string, opts *input.FileOptions, name *string) CaseFiles {
	cf := CaseFiles{WorkDir: workDir, Name: name}
	if opts != nil {
		cf.Options = *opts
	}
	return cf
}

// RootName returns the root used for legacy file names: FLROOT when set
// (even if blank), else NAME, else DefaultRoot. Whitespace is trimmed.
func (c CaseFiles) RootName() string {
	if c.Options.FLRoot != nil {
		return strings.TrimSpace(*c.Options.FLRoot)
	}
	if c.Name != nil {
		return strings.TrimSpace(*c.Name)
	}
	return DefaultRoot
}

func (c CaseFiles) legacy(tail, blankName string) string {
	if root := c.RootName(); root != "" {
		return join(c.WorkDir, root+tail)
	}
	return join(c.WorkDir, blankName)
}

func (c CaseFiles) sli(tail string) string {
	root := sliNotSet
	if c.Options.SLIPrint != nil {
		root = *c.Options.SLIPrint
	}
	return join(c.WorkDir, root+tail)
}

func (c CaseFiles) csv(tail string) string {
	root := csvNotSet
	if c.Options.CSVPrint != nil && strings.TrimSpace(*c.Options.CSVPrint) != "" {
		root = *c.Options.CSVPrint
	}
	path := join(c.WorkDir, root)
	path = withStem(path, stem(filepath.Base(path))+tail)
	if suffix(filepath.Base(path)) == "" {
		path = withSuffix(path, ".txt")
	}
	return path
}

// JSON is the engine's JSON output. The final suffix of JSONPRNT is always
// replaced with ".json".
func (c CaseFiles) JSON() string {
	root := jsonNotSet
	if c.Options.JSONPrint != nil && strings.TrimSpace(*c.Options.JSONPrint) != "" {
		root = *c.Options.JSONPrint
	}
	return withSuffix(join(c.WorkDir, root), ".json")
}

func (c CaseFiles) SLIHeader() string      { return c.sli(".hdr") }
func (c CaseFiles) SLIData() string        { return c.sli(".sli") }
func (c CaseFiles) SLIFluxHeader() string  { return c.sli("_flux.hdr") }
func (c CaseFiles) SLIFluxData() string    { return c.sli("_flux.sli") }
func (c CaseFiles) SLIScanHeader() string  { return c.sli("_scan.hdr") }
func (c CaseFiles) SLIScanData() string    { return c.sli("_scan.sli") }
func (c CaseFiles) SLICorrKHeader() string { return c.sli("_highres.hdr") }
func (c CaseFiles) SLICorrKData() string   { return c.sli("_highres.sli") }

func (c CaseFiles) CSV() string      { return c.csv("") }
func (c CaseFiles) CSVFlux() string  { return c.csv("_flux") }
func (c CaseFiles) CSVScan() string  { return c.csv("_scan") }
func (c CaseFiles) CSVCorrK() string { return c.csv("_highres") }

func (c CaseFiles) ACDText() string     { return c.legacy(".acd", "atmcor.asc") }
func (c CaseFiles) ACDBinary() string   { return c.legacy("_b.acd", "atmcor.bin") }
func (c CaseFiles) Tape7Text() string   { return c.legacy(".tp7", "tape7") }
func (c CaseFiles) Tape7Binary() string { return c.legacy("_b.tp7", "tap7bin") }
func (c CaseFiles) Tape6() string       { return c.legacy(".tp6", "tape6") }
func (c CaseFiles) Scan() string        { return c.legacy(".7sc", "tape7.scn") }
func (c CaseFiles) RefractPath() string { return c.legacy("._pth", "rfract._pth") }
func (c CaseFiles) PlotText() string    { return c.legacy(".plt", "pltout.asc") }
func (c CaseFiles) PlotBinary() string  { return c.legacy("_b.plt", "pltout.bin") }
func (c CaseFiles) PlotScan() string    { return c.legacy(".psc", "pltout.scn") }
func (c CaseFiles) Warnings() string    { return c.legacy(".wrn", "warnings.txt") }

func (c CaseFiles) CorrKTransText() string   { return c.legacy(".t_k", "t_kdis.dat") }
func (c CaseFiles) CorrKTransBinary() string { return c.legacy("_b.t_k", "t_kdis.bin") }
func (c CaseFiles) CorrKRadText() string     { return c.legacy(".r_k", "r_kdis.dat") }
func (c CaseFiles) CorrKRadBinary() string   { return c.legacy("_b.r_k", "r_kdis.bin") }

// Entry is one resolved artifact.
type Entry struct {
	Artifact Artifact
	Path     string
	// Exists records whether Path was present on disk when resolved.
	Exists bool
}

// Entries resolves every artifact in table order. With onlyExisting, paths
// absent from disk are dropped.
func (c CaseFiles) Entries(onlyExisting bool) []Entry {
	out := make([]Entry, 0, len(artifacts))
	for _, a := range artifacts {
		e := newEntry(a.name, a.resolve(c))
		if onlyExisting && !e.Exists {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Entry resolves a single artifact and stats its path.
func (c CaseFiles) Entry(a Artifact) (Entry, error) {
	path, err := c.Resolve(a)
	if err != nil {
		return Entry{}, err
	}
	return newEntry(a, path), nil
}

func newEntry(a Artifact, path string) Entry {
	return Entry{Artifact: a, Path: path, Exists: exists(path)}
}

// AllFiles resolves every artifact path in table order.
func (c CaseFiles) AllFiles(onlyExisting bool) []string {
	entries := c.Entries(onlyExisting)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// Resolve returns the path of a single artifact.
func (c CaseFiles) Resolve(a Artifact) (string, error) {
	for _, entry := range artifacts {
		if entry.name == a {
			return entry.resolve(c), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArtifact, a)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
