package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the per-project configuration file the CLI looks for.
const ProjectFileName = "ifc.yaml"

// ProjectConfig is the top-level ifc.yaml configuration.
type ProjectConfig struct {
	// Package is the Go package name of the generated output.
	Package string `yaml:"package"`

	// Sources lists the definition files to compile, relative to ifc.yaml.
	Sources []string `yaml:"sources"`

	// OutDir is where generated files are written, relative to ifc.yaml.
	// Defaults to ".".
	OutDir string `yaml:"out_dir,omitempty"`

	// Cache configures the compile cache.
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Dir is the directory containing ifc.yaml. Set by Load, not from yaml.
	Dir string `yaml:"-"`
}

// CacheConfig enables skipping recompilation of unchanged sources.
type CacheConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Path of the cache database, relative to ifc.yaml.
	// Defaults to ".ifc-cache.db".
	Path string `yaml:"path,omitempty"`
}

// Load reads and validates an ifc.yaml.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Package == "" {
		return nil, fmt.Errorf("%s: `package` is required", path)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("%s: `sources` must list at least one file", path)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ".ifc-cache.db"
	}

	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// SourcePaths returns the configured sources resolved against the config
// directory.
func (c *ProjectConfig) SourcePaths() []string {
	paths := make([]string, len(c.Sources))
	for i, src := range c.Sources {
		paths[i] = filepath.Join(c.Dir, src)
	}
	return paths
}

// CachePath returns the cache database path resolved against the config
// directory.
func (c *ProjectConfig) CachePath() string {
	return filepath.Join(c.Dir, c.Cache.Path)
}
