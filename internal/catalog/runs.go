package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mod6/internal/outputs"
)

var (
	// ErrNotFound reports an ID matching no registered run.
	ErrNotFound = errors.New("run not found")
	// ErrAmbiguous reports an ID prefix matching several runs.
	ErrAmbiguous = errors.New("run ID prefix is ambiguous")
)

// Kind is how a run's cases are recovered.
type Kind string

const (
	// KindInput runs are described by an input document.
	KindInput Kind = "input"
	// KindScan runs are reconstructed from the JSON outputs of a directory.
	KindScan Kind = "scan"
)

// Run is one registered engine run.
type Run struct {
	ID   string
	Kind Kind
	// Source is the input document for KindInput and the scanned directory
	// for KindScan.
	Source    string
	WorkDir   string
	Cases     int
	Label     string
	CreatedAt time.Time
}

// Files resolves the run's cases from disk.
func (r *Run) Files() (*outputs.Files, error) {
	switch r.Kind {
	case KindInput:
		return outputs.Load(r.Source, r.WorkDir, false)
	case KindScan:
		return outputs.LoadDir(r.Source)
	default:
		return nil, fmt.Errorf("run %s: unknown kind %q", r.ID, r.Kind)
	}
}

// RegisterInput records a run described by the input document at inputPath.
// workDir defaults to the document's directory. The document is loaded once
// to count its cases.
func (s *Store) RegisterInput(ctx context.Context, inputPath, workDir, label string) (*Run, error) {
	inputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	if workDir == "" {
		workDir = filepath.Dir(inputPath)
	}
	if workDir, err = filepath.Abs(workDir); err != nil {
		return nil, fmt.Errorf("resolve work dir: %w", err)
	}
	return s.register(ctx, &Run{Kind: KindInput, Source: inputPath, WorkDir: workDir, Label: label})
}

// RegisterScan records a run reconstructed from the JSON outputs in dir.
func (s *Store) RegisterScan(ctx context.Context, dir, label string) (*Run, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve scan dir: %w", err)
	}
	return s.register(ctx, &Run{Kind: KindScan, Source: dir, WorkDir: dir, Label: label})
}

func (s *Store) register(ctx context.Context, run *Run) (*Run, error) {
	files, err := run.Files()
	if err != nil {
		return nil, err
	}
	run.ID = uuid.NewString()
	run.Cases = files.Len()
	run.CreatedAt = time.Now().UTC()

	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, kind, source, work_dir, case_count, label, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Kind),
		run.Source,
		run.WorkDir,
		run.Cases,
		nullableString(run.Label),
		run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, kind, source, work_dir, case_count, label, created_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		kind       string
		label      sql.NullString
		createdRaw string
	)
	if err := scanner.Scan(&run.ID, &kind, &run.Source, &run.WorkDir, &run.Cases, &label, &createdRaw); err != nil {
		return nil, err
	}
	run.Kind = Kind(kind)
	run.Label = label.String
	created, err := time.Parse(timeLayout, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of run %s: %w", run.ID, err)
	}
	run.CreatedAt = created
	return &run, nil
}

// Get returns the run whose ID is id or starts with it.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty ID", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\\' ORDER BY id LIMIT 2",
		id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// List returns every run, oldest first.
func (s *Store) List(ctx context.Context) ([]*Run, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Remove deletes the run whose ID is id or starts with it.
func (s *Store) Remove(ctx context.Context, id string) (*Run, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.execWithRetry(ctx, "DELETE FROM runs WHERE id = ?", run.ID); err != nil {
		return nil, fmt.Errorf("delete run: %w", err)
	}
	return run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
