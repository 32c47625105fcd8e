package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"mod6/internal/engine"
)

//go:embed sample_config.toml
var sampleConfig string

// Engine locates the engine installation.
type Engine struct {
	Exe     string `toml:"exe"`
	DataDir string `toml:"data_dir"`
	// EnvFile is a shell file exporting MODTRAN_EXE and MODTRAN_DATA.
	EnvFile string `toml:"env_file"`
}

// Paths contains locations owned by mod6 itself.
type Paths struct {
	CatalogPath string `toml:"catalog_path"`
}

// Check tunes cross-format checks.
type Check struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives JSON logs in addition to the console when set.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for mod6.
type Config struct {
	Engine  Engine  `toml:"engine"`
	Paths   Paths   `toml:"paths"`
	Check   Check   `toml:"check"`
	Logging Logging `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directory holding the run catalog.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Paths.CatalogPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// EngineEnv returns the engine environment described by the config, with any
// extra MODTRAN* variables from the env file.
func (c *Config) EngineEnv() (*engine.Env, error) {
	env := &engine.Env{Exe: c.Engine.Exe, Data: c.Engine.DataDir, Extra: map[string]string{}}
	if c.Engine.EnvFile != "" {
		fromFile, err := engine.FromShellFile(c.Engine.EnvFile)
		if err != nil {
			return nil, err
		}
		env.Extra = fromFile.Extra
	}
	if env.Exe == "" {
		return nil, fmt.Errorf("engine.exe: %s %w", engine.VarExe, engine.ErrNotSet)
	}
	if env.Data == "" {
		return nil, fmt.Errorf("engine.data_dir: %s %w", engine.VarData, engine.ErrNotSet)
	}
	return env, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	expanded, err := homedir.Expand(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	cleaned := filepath.Clean(expanded)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// ErrConfigExists reports a sample that would replace an existing file.
var ErrConfigExists = errors.New("config file already exists")

// CreateSample writes the commented sample configuration to path, or to the
// default location when path is empty, and returns the file written. An
// existing file is only replaced with overwrite.
func CreateSample(path string, overwrite bool) (string, error) {
	target := path
	if target == "" {
		target = defaultConfigPath
	}
	target, err := expandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(target, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrConfigExists, target)
	}
	if err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		f.Close()
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return target, f.Close()
}
