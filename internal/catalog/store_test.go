package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"mod6/internal/catalog"
	"mod6/internal/input"
	"mod6/internal/tape7"
	"mod6/internal/testsupport"
)

func TestRegisterInputRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	dir := t.TempDir()
	doc := &input.Document{Cases: []input.Case{
		testsupport.CaseWithRoot("case0", input.RTTransmittance),
		testsupport.CaseWithRoot("case1", input.RTSolarAndThermal),
	}}
	inputPath := testsupport.WriteInput(t, dir, "run.json", doc)

	run, err := store.RegisterInput(ctx, inputPath, "", "baseline")
	if err != nil {
		t.Fatalf("RegisterInput failed: %v", err)
	}
	if run.ID == "" || run.Cases != 2 || run.Kind != catalog.KindInput {
		t.Fatalf("unexpected run: %#v", run)
	}
	if run.WorkDir != dir {
		t.Fatalf("work dir should default to the input directory, got %q", run.WorkDir)
	}

	fetched, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Source != inputPath || fetched.Label != "baseline" || !fetched.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("unexpected fetched run: %#v", fetched)
	}

	files, err := fetched.Files()
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	cf, err := files.At(1)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if cf.Tape7Binary() != filepath.Join(dir, "case1_b.tp7") {
		t.Fatalf("unexpected tape7 path %q", cf.Tape7Binary())
	}
}

func TestRegisterScan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	dir := t.TempDir()
	for _, root := range []string{"a", "b", "c"} {
		c := testsupport.CaseWithRoot(root, input.RTTransmittance)
		testsupport.WriteCaseOutputs(t, dir, root, tape7.KindTransmittance, 2, &c)
	}

	run, err := store.RegisterScan(ctx, dir, "")
	if err != nil {
		t.Fatalf("RegisterScan failed: %v", err)
	}
	if run.Kind != catalog.KindScan || run.Cases != 3 || run.WorkDir != dir {
		t.Fatalf("unexpected run: %#v", run)
	}

	if _, err := store.RegisterScan(ctx, t.TempDir(), ""); err == nil {
		t.Fatal("expected error registering an empty directory")
	}
}

func TestGetByPrefixAndRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	dir := t.TempDir()
	inputPath := testsupport.WriteInput(t, dir, "run.json", &input.Document{Cases: []input.Case{
		testsupport.CaseWithRoot("only", input.RTTransmittance),
	}})
	first, err := store.RegisterInput(ctx, inputPath, "", "")
	if err != nil {
		t.Fatalf("RegisterInput failed: %v", err)
	}
	second, err := store.RegisterInput(ctx, inputPath, filepath.Join(dir, "out"), "")
	if err != nil {
		t.Fatalf("RegisterInput failed: %v", err)
	}

	got, err := store.Get(ctx, first.ID[:8])
	if err != nil {
		t.Fatalf("Get by prefix failed: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("prefix resolved to %s, want %s", got.ID, first.ID)
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty ID, got %v", err)
	}
	if _, err := store.Get(ctx, "%"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("LIKE wildcards must be literal, got %v", err)
	}

	runs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Fatalf("unexpected listing: %v", runs)
	}

	removed, err := store.Remove(ctx, second.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.WorkDir != filepath.Join(dir, "out") {
		t.Fatalf("unexpected removed run: %#v", removed)
	}
	if _, err := store.Get(ctx, second.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	dir := t.TempDir()
	inputPath := testsupport.WriteInput(t, dir, "run.json", &input.Document{Cases: []input.Case{
		testsupport.CaseWithRoot("x", input.RTTransmittance),
	}})
	run, err := store.RegisterInput(context.Background(), inputPath, "", "")
	if err != nil {
		t.Fatalf("RegisterInput failed: %v", err)
	}
	store.Close()

	reopened, err := catalog.OpenPath(cfg.Paths.CatalogPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Get(context.Background(), run.ID); err != nil {
		t.Fatalf("run lost across reopen: %v", err)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	store.Close()

	db, err := sql.Open("sqlite", cfg.Paths.CatalogPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := catalog.OpenPath(cfg.Paths.CatalogPath); !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
