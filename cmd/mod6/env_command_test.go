package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvReportsConfiguredEngine(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"env"}, env.configPath)
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	requireContains(t, out, "MODTRAN_EXE="+env.cfg.Engine.Exe)
	requireContains(t, out, "MODTRAN_DATA="+env.cfg.Engine.DataDir)
	requireContains(t, out, "Engine data")
	requireNotContains(t, out, "\tno\t")
}

func TestEnvFromShellFile(t *testing.T) {
	env := setupCLITestEnv(t)
	missingData := filepath.Join(env.baseDir, "no-data")
	shell := fmt.Sprintf("#!/bin/sh\nexport MODTRAN_EXE=%q\nexport MODTRAN_DATA=%q\nexport MODTRAN_LICENSE=site\nif [ -z \"$X\" ]; then\n  echo skipped\nfi\n",
		env.cfg.Engine.Exe, missingData)
	envFile := filepath.Join(env.baseDir, "mod6.sh")
	if err := os.WriteFile(envFile, []byte(shell), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	out, _, err := runCLI(t, []string{"env", "--env-file", envFile}, env.configPath)
	if err == nil {
		t.Fatal("expected a missing DATA directory to fail")
	}
	requireContains(t, err.Error(), "Engine data")
	requireContains(t, out, "MODTRAN_LICENSE=site")
	requireContains(t, out, "MODTRAN_DATA="+missingData)
}

func TestEnvWithoutEngineSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte(fmt.Sprintf("[paths]\ncatalog_path = %q\n", env.cfg.Paths.CatalogPath)), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := runCLI(t, []string{"env"}, env.configPath)
	if err == nil {
		t.Fatal("expected missing engine settings to fail")
	}
	requireContains(t, err.Error(), "--env-file")
}
