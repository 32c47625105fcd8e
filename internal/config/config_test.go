package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"mod6/internal/config"
	"mod6/internal/engine"
)

func TestMain(m *testing.M) {
	// tests point HOME at temp dirs
	homedir.DisableCache = true
	os.Exit(m.Run())
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(engine.VarExe, "")
	t.Setenv(engine.VarData, "")
	os.Unsetenv(engine.VarExe)
	os.Unsetenv(engine.VarData)
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsExpandPaths(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "mod6", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.CatalogPath != filepath.Join(home, ".local", "share", "mod6", "catalog.db") {
		t.Fatalf("unexpected catalog path %q", cfg.Paths.CatalogPath)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Engine.Exe != "" || cfg.Engine.DataDir != "" {
		t.Fatalf("expected no engine settings, got %+v", cfg.Engine)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(cfg.Paths.CatalogPath)); err != nil || !info.IsDir() {
		t.Fatalf("expected catalog directory: %v", err)
	}
	if _, err := cfg.EngineEnv(); !errors.Is(err, engine.ErrNotSet) {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "mod6.toml")

	type payload struct {
		Engine struct {
			Exe     string `toml:"exe"`
			DataDir string `toml:"data_dir"`
		} `toml:"engine"`
		Check struct {
			Workers int `toml:"workers"`
		} `toml:"check"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Engine.Exe = "mod6c_cons"
	custom.Engine.DataDir = filepath.Join(dir, "DATA")
	custom.Check.Workers = 3
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Engine.Exe != "mod6c_cons" {
		t.Fatalf("bare executable name should stay unexpanded, got %q", cfg.Engine.Exe)
	}
	if cfg.Check.Workers != 3 {
		t.Fatalf("unexpected workers %d", cfg.Check.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	env, err := cfg.EngineEnv()
	if err != nil {
		t.Fatalf("EngineEnv: %v", err)
	}
	if env.Data != custom.Engine.DataDir {
		t.Fatalf("unexpected data dir %q", env.Data)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("mod6.toml", []byte("[check]\nworkers = 2\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "mod6.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Check.Workers != 2 {
		t.Fatalf("unexpected workers %d", cfg.Check.Workers)
	}
}

func TestEngineEnvFallbacks(t *testing.T) {
	home := isolate(t)

	t.Run("environment", func(t *testing.T) {
		t.Setenv(engine.VarExe, "/opt/engine/bin/mod6c")
		t.Setenv(engine.VarData, "~/DATA")
		cfg, _, _, err := config.Load("")
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Engine.Exe != "/opt/engine/bin/mod6c" {
			t.Fatalf("unexpected exe %q", cfg.Engine.Exe)
		}
		if cfg.Engine.DataDir != filepath.Join(home, "DATA") {
			t.Fatalf("unexpected data dir %q", cfg.Engine.DataDir)
		}
	})

	t.Run("env file wins over environment", func(t *testing.T) {
		t.Setenv(engine.VarExe, "/from/environment")
		envFile := filepath.Join(home, "engine.sh")
		script := "#!/bin/sh\nexport MODTRAN_EXE=/opt/mod6/bin/mod6c_cons\nexport MODTRAN_DATA=/opt/mod6/DATA\nexport MODTRAN_LICENSE=/opt/mod6/license\n"
		if err := os.WriteFile(envFile, []byte(script), 0o644); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		configPath := filepath.Join(home, "config.toml")
		if err := os.WriteFile(configPath, []byte("[engine]\nenv_file = \"~/engine.sh\"\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		cfg, _, _, err := config.Load(configPath)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Engine.Exe != "/opt/mod6/bin/mod6c_cons" || cfg.Engine.DataDir != "/opt/mod6/DATA" {
			t.Fatalf("unexpected engine settings: %+v", cfg.Engine)
		}
		env, err := cfg.EngineEnv()
		if err != nil {
			t.Fatalf("EngineEnv: %v", err)
		}
		if env.Extra["MODTRAN_LICENSE"] != "/opt/mod6/license" {
			t.Fatalf("expected extra variables from env file, got %v", env.Extra)
		}
	})
}

func TestValidateRejectsUnknownLogging(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "typo.toml")
	if err := os.WriteFile(path, []byte("[check]\nworker = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestCreateSampleLoads(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	written, err := config.CreateSample(path, false)
	if err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if written != path {
		t.Fatalf("expected %q, got %q", path, written)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected sample logging format %q", cfg.Logging.Format)
	}

	if _, err := config.CreateSample(path, false); !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if _, err := config.CreateSample(path, true); err != nil {
		t.Fatalf("CreateSample overwrite: %v", err)
	}
}

func TestCreateSampleDefaultLocation(t *testing.T) {
	home := isolate(t)
	written, err := config.CreateSample("", false)
	if err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if want := filepath.Join(home, ".config", "mod6", "config.toml"); written != want {
		t.Fatalf("expected %q, got %q", want, written)
	}
}
