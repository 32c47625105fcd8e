package outputs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"mod6/internal/input"
)

var (
	// ErrScan reports a directory that cannot be loaded as a run.
	ErrScan = errors.New("scan output directory")
	// ErrIndex reports a case index outside the run.
	ErrIndex = errors.New("case index out of range")
)

// Files is the set of output files of a run, organised by case. Paths are
// resolved on every access and never cached.
type Files struct {
	doc     *input.Document
	workDir string
}

// New wraps an in-memory document whose cases were run in workDir.
func New(doc *input.Document, workDir string) *Files {
	if doc == nil {
		doc = &input.Document{}
	}
	return &Files{doc: doc, workDir: workDir}
}

// Load reads the input document at inputPath. Outputs are expected in
// workDir, or next to the input file when workDir is empty.
func Load(inputPath, workDir string, validate bool) (*Files, error) {
	doc, err := input.ReadFile(inputPath, validate)
	if err != nil {
		return nil, err
	}
	if workDir == "" {
		workDir = filepath.Dir(inputPath)
	}
	return New(doc, workDir), nil
}

// LoadDir reconstructs a run from the JSON outputs in dir. With several JSON
// files each must describe exactly one case; a lone file may hold many. Every
// case must echo its MODTRANINPUT.
func LoadDir(dir string) (*Files, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScan, dir, err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no JSON files in %s", ErrScan, dir)
	}

	merged := &input.Document{}
	for _, name := range matches {
		path := filepath.Join(dir, name)
		doc, err := input.ReadFile(path, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScan, err)
		}
		if doc.Cases == nil {
			return nil, fmt.Errorf("%w: %s: missing MODTRAN case list", ErrScan, path)
		}
		if len(matches) > 1 && len(doc.Cases) != 1 {
			return nil, fmt.Errorf("%w: %s: expected exactly one case per file, found %d", ErrScan, path, len(doc.Cases))
		}
		for i, c := range doc.Cases {
			if c.Input == nil {
				return nil, fmt.Errorf("%w: %s: case %d has no MODTRANINPUT", ErrScan, path, i)
			}
		}
		merged.Cases = append(merged.Cases, doc.Cases...)
	}
	return New(merged, dir), nil
}

// WorkDir returns the directory outputs are resolved against.
func (f *Files) WorkDir() string { return f.workDir }

// Document returns the underlying document.
func (f *Files) Document() *input.Document { return f.doc }

// Len returns the number of cases.
func (f *Files) Len() int { return len(f.doc.Cases) }

// Case returns the raw case at index i. Negative indices count from the end.
func (f *Files) Case(i int) (*input.Case, error) {
	n := f.Len()
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, fmt.Errorf("%w: %d (cases: %d)", ErrIndex, i, n)
	}
	return &f.doc.Cases[idx], nil
}

// At resolves the output files of case i. Negative indices count from the end.
func (f *Files) At(i int) (CaseFiles, error) {
	c, err := f.Case(i)
	if err != nil {
		return CaseFiles{}, err
	}
	if c.Input == nil {
		return NewCaseFiles(f.workDir, nil, nil), nil
	}
	return NewCaseFiles(f.workDir, c.Input.FileOptions, c.Input.Name), nil
}

// Slice resolves cases over a start:stop:step range. Nil bounds take their
// defaults; negative values count from the end and out-of-range bounds are
// clamped. step must not be zero.
func (f *Files) Slice(start, stop, step *int) ([]CaseFiles, error) {
	indices, err := f.Indices(start, stop, step)
	if err != nil {
		return nil, err
	}
	out := make([]CaseFiles, 0, len(indices))
	for _, i := range indices {
		cf, err := f.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, cf)
	}
	return out, nil
}

// Indices returns the case indices Slice selects, in selection order.
func (f *Files) Indices(start, stop, step *int) ([]int, error) {
	return sliceIndices(f.Len(), start, stop, step)
}

// All resolves every case in order.
func (f *Files) All() []CaseFiles {
	out := make([]CaseFiles, 0, f.Len())
	for i := range f.Len() {
		cf, _ := f.At(i)
		out = append(out, cf)
	}
	return out
}

func sliceIndices(n int, start, stop, step *int) ([]int, error) {
	s := 1
	if step != nil {
		s = *step
	}
	if s == 0 {
		return nil, errors.New("slice step cannot be zero")
	}
	lower, upper := 0, n
	if s < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(v *int, fallback int) int {
		if v == nil {
			return fallback
		}
		x := *v
		if x < 0 {
			x += n
			if x < lower {
				x = lower
			}
		} else if x > upper {
			x = upper
		}
		return x
	}

	var from, to int
	if s > 0 {
		from, to = clamp(start, lower), clamp(stop, upper)
	} else {
		from, to = clamp(start, upper), clamp(stop, lower)
	}

	var out []int
	if s > 0 {
		for i := from; i < to; i += s {
			out = append(out, i)
		}
	} else {
		for i := from; i > to; i += s {
			out = append(out, i)
		}
	}
	return out, nil
}
