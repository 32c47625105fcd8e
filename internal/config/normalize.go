package config

import (
	"fmt"
	"os"
	"strings"

	"mod6/internal/engine"
)

func (c *Config) normalize() error {
	if err := c.normalizeEngine(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if c.Check.Workers < 0 {
		c.Check.Workers = 0
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeEngine() error {
	var err error
	c.Engine.Exe = strings.TrimSpace(c.Engine.Exe)
	c.Engine.DataDir = strings.TrimSpace(c.Engine.DataDir)
	if c.Engine.EnvFile, err = expandPath(strings.TrimSpace(c.Engine.EnvFile)); err != nil {
		return fmt.Errorf("engine.env_file: %w", err)
	}

	if c.Engine.EnvFile != "" && (c.Engine.Exe == "" || c.Engine.DataDir == "") {
		env, err := engine.FromShellFile(c.Engine.EnvFile)
		if err != nil {
			return fmt.Errorf("engine.env_file: %w", err)
		}
		if c.Engine.Exe == "" {
			c.Engine.Exe = env.Exe
		}
		if c.Engine.DataDir == "" {
			c.Engine.DataDir = env.Data
		}
	}
	if c.Engine.Exe == "" {
		if value, ok := os.LookupEnv(engine.VarExe); ok {
			c.Engine.Exe = strings.TrimSpace(value)
		}
	}
	if c.Engine.DataDir == "" {
		if value, ok := os.LookupEnv(engine.VarData); ok {
			c.Engine.DataDir = strings.TrimSpace(value)
		}
	}

	// a bare executable name is looked up on PATH, so only paths are expanded
	if strings.ContainsAny(c.Engine.Exe, `/\`) || strings.HasPrefix(c.Engine.Exe, "~") {
		if c.Engine.Exe, err = expandPath(c.Engine.Exe); err != nil {
			return fmt.Errorf("engine.exe: %w", err)
		}
	}
	if c.Engine.DataDir, err = expandPath(c.Engine.DataDir); err != nil {
		return fmt.Errorf("engine.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
