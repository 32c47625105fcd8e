package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// OverrideSeparator splits override keys into nested section paths, so
// "RTOPTIONS__IEMSCT" assigns MODTRANINPUT.RTOPTIONS.IEMSCT.
const OverrideSeparator = "__"

// Unified output file names used when every case writes to one file.
const (
	UnifiedJSONName = "all_cases.json"
	UnifiedCSVName  = "all_cases.csv"
)

// RootNameFunc formats the root file name of case index, zero padded to digits.
type RootNameFunc func(index, digits int) string

// DefaultRootName produces names like case0, case07, case123.
func DefaultRootName(index, digits int) string {
	return fmt.Sprintf("case%0*d", digits, index)
}

// Builder assembles a document from templated cases and stamps consistent
// file options on every case when built.
type Builder struct {
	cases    []CaseInput
	rootName RootNameFunc
	validate bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRootName overrides the root name format.
func WithRootName(fn RootNameFunc) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.rootName = fn
		}
	}
}

// WithoutValidation skips case validation on add and build.
func WithoutValidation() BuilderOption {
	return func(b *Builder) {
		b.validate = false
	}
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{rootName: DefaultRootName, validate: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of cases added so far.
func (b *Builder) Len() int { return len(b.cases) }

// AddCase appends a copy of base with CASE set to its index and overrides
// applied, and returns that index.
func (b *Builder) AddCase(base CaseInput, overrides map[string]any) (int, error) {
	tree, err := toTree(base)
	if err != nil {
		return 0, err
	}
	index := len(b.cases)
	tree["CASE"] = index

	keys := slices.Sorted(maps.Keys(overrides))
	for _, key := range keys {
		if err := assignNested(tree, strings.Split(key, OverrideSeparator), overrides[key]); err != nil {
			return 0, fmt.Errorf("override %s: %w", key, err)
		}
	}

	c, err := fromTree(tree)
	if err != nil {
		return 0, err
	}
	if b.validate {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("case %d: %w", index, err)
		}
	}
	b.cases = append(b.cases, c)
	return index, nil
}

// TemplateExtend adds a case that references template through CASE TEMPLATE,
// so the engine fills unspecified settings from the template case.
func (b *Builder) TemplateExtend(template int, ext CaseInput, overrides map[string]any) (int, error) {
	if template < 0 || template >= len(b.cases) {
		return 0, fmt.Errorf("template case %d out of range [0, %d)", template, len(b.cases))
	}
	ext.CaseTemplate = &template
	return b.AddCase(ext, overrides)
}

// BuildOptions selects which outputs every case writes.
type BuildOptions struct {
	OutputLegacy bool
	OutputSLI    bool
	OutputCSV    bool
	OutputCorrK  bool
	Binary       bool
	JSONOpt      JSONPrintOpt
	UnifyJSON    bool
	UnifyCSV     bool
}

// DefaultBuildOptions writes status and input JSON only.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{JSONOpt: WrtStatInput}
}

// Build returns a document with file options stamped on copies of every case.
// Cases added to the builder are left unchanged.
func (b *Builder) Build(opts BuildOptions) (*Document, error) {
	if len(b.cases) == 0 {
		return nil, errors.New("build document: no cases added")
	}
	digits := numDigits(len(b.cases) - 1)
	doc := &Document{Cases: make([]Case, 0, len(b.cases))}
	for i, original := range b.cases {
		tree, err := toTree(original)
		if err != nil {
			return nil, err
		}
		c, err := fromTree(tree)
		if err != nil {
			return nil, err
		}
		index := i
		if c.Case != nil {
			index = *c.Case
		}
		root := b.rootName(index, digits)
		if c.Name == nil {
			c.Name = &root
		}
		if c.FileOptions == nil {
			c.FileOptions = &FileOptions{}
		}
		stampFileOptions(c.FileOptions, root, opts)
		if b.validate {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("case %d: %w", i, err)
			}
		}
		doc.Cases = append(doc.Cases, Case{Input: &c})
	}
	return doc, nil
}

func stampFileOptions(fo *FileOptions, root string, opts BuildOptions) {
	fo.FLRoot = ptr(root)
	if opts.UnifyJSON {
		fo.JSONPrint = ptr(UnifiedJSONName)
	} else {
		fo.JSONPrint = ptr(root + ".json")
	}
	fo.JSONOpt = ptr(opts.JSONOpt)
	if opts.OutputLegacy {
		fo.NoFile = ptr(FCAllowAll)
	} else {
		fo.NoFile = ptr(FCNoFiles)
	}
	if opts.OutputSLI {
		fo.SLIPrint = ptr(root)
	}
	if opts.OutputCSV {
		if opts.UnifyCSV {
			fo.CSVPrint = ptr(UnifiedCSVName)
		} else {
			fo.CSVPrint = ptr(root + ".csv")
		}
	}
	fo.Binary = ptr(opts.Binary)
	fo.CKPrint = ptr(opts.OutputCorrK)
}

func toTree(c CaseInput) (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode case: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode case: %w", err)
	}
	return tree, nil
}

func fromTree(tree map[string]any) (CaseInput, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return CaseInput{}, fmt.Errorf("encode case: %w", err)
	}
	var c CaseInput
	if err := json.Unmarshal(data, &c); err != nil {
		return CaseInput{}, fmt.Errorf("decode case: %w", err)
	}
	return c, nil
}

// assignNested sets tree[k0][k1]...[kn] = value, creating intermediate maps.
func assignNested(tree map[string]any, keys []string, value any) error {
	if len(keys) == 0 {
		return errors.New("empty key path")
	}
	curr := tree
	for i, key := range keys[:len(keys)-1] {
		next, ok := curr[key]
		if !ok {
			child := make(map[string]any)
			curr[key] = child
			curr = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("expected mapping at %s, found %T", strings.Join(keys[:i+1], "."), next)
		}
		curr = child
	}
	curr[keys[len(keys)-1]] = value
	return nil
}

func numDigits(x int) int {
	return len(strconv.Itoa(x))
}

func ptr[T any](v T) *T { return &v }
