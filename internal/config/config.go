// Package config loads farsight configuration. Values resolve from
// (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (FARSIGHT_*)
// 3. Project config (.farsight.yaml in cwd)
// 4. Home config (~/.farsight/config.yaml)
// 5. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all farsight configuration.
type Config struct {
	// Store is the path of the decisions JSONL file.
	Store string `yaml:"store" json:"store"`

	// AuditDB is the path of the SQLite audit log. Empty means a file
	// named audit.db in the store's directory.
	AuditDB string `yaml:"audit_db" json:"audit_db"`

	// Editor is the command used by `farsight edit`. Empty falls back to
	// $VISUAL, then $EDITOR, then common terminal editors.
	Editor string `yaml:"editor" json:"editor"`

	// SensitivityFactors is the default weight-perturbation grid for
	// `farsight analyze`.
	SensitivityFactors []float64 `yaml:"sensitivity_factors" json:"sensitivity_factors"`

	// ConfidenceTolerance is how far a stated confidence may sit from a
	// bucket's level and still count toward it.
	ConfidenceTolerance float64 `yaml:"confidence_tolerance" json:"confidence_tolerance"`
}

// Default config values (used in resolution and validation).
const (
	defaultStore     = "decisions.jsonl"
	defaultTolerance = 0.05
)

func defaultFactors() []float64 {
	return []float64{0.1, 0.5, 2, 10}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store:               defaultStore,
		SensitivityFactors:  defaultFactors(),
		ConfidenceTolerance: defaultTolerance,
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, err := loadFromPath(homeConfigPath())
	if err != nil {
		return nil, err
	}
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, err := loadFromPath(projectConfigPath())
	if err != nil {
		return nil, err
	}
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// ResolveAuditDB returns the audit DB path implied by cfg: the configured
// path when set, otherwise audit.db beside the store file.
func (c *Config) ResolveAuditDB() string {
	if c.AuditDB != "" {
		return c.AuditDB
	}
	return filepath.Join(filepath.Dir(c.Store), "audit.db")
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".farsight", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("FARSIGHT_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".farsight.yaml")
}

// loadFromPath loads config from a YAML file. A missing file is not an
// error; a present but unreadable one is.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("FARSIGHT_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("FARSIGHT_AUDIT_DB"); v != "" {
		cfg.AuditDB = v
	}
	if v := os.Getenv("FARSIGHT_EDITOR"); v != "" {
		cfg.Editor = v
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Store, src.Store)
	mergeStr(&dst.AuditDB, src.AuditDB)
	mergeStr(&dst.Editor, src.Editor)
	if len(src.SensitivityFactors) > 0 {
		dst.SensitivityFactors = src.SensitivityFactors
	}
	if src.ConfidenceTolerance > 0 {
		dst.ConfidenceTolerance = src.ConfidenceTolerance
	}
	return dst
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.farsight/config.yaml"
	SourceProject Source = ".farsight.yaml"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// Resolved pairs a config value with its source.
type Resolved struct {
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}

// ResolvedConfig shows config values with their sources.
type ResolvedConfig struct {
	Store               Resolved `json:"store"`
	AuditDB             Resolved `json:"audit_db"`
	Editor              Resolved `json:"editor"`
	SensitivityFactors  Resolved `json:"sensitivity_factors"`
	ConfidenceTolerance Resolved `json:"confidence_tolerance"`
}

// resolveString resolves one string key through the precedence chain.
func resolveString(home, project, env, flag, def string) Resolved {
	result := Resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = Resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = Resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = Resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = Resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// Resolve returns configuration with source tracking.
// Uses precedence chain: flags > env > project > home > defaults.
func Resolve(flagStore string) *ResolvedConfig {
	homeConfig, _ := loadFromPath(homeConfigPath())
	projectConfig, _ := loadFromPath(projectConfigPath())

	var home, project Config
	if homeConfig != nil {
		home = *homeConfig
	}
	if projectConfig != nil {
		project = *projectConfig
	}

	rc := &ResolvedConfig{
		Store: resolveString(home.Store, project.Store,
			os.Getenv("FARSIGHT_STORE"), flagStore, defaultStore),
		AuditDB: resolveString(home.AuditDB, project.AuditDB,
			os.Getenv("FARSIGHT_AUDIT_DB"), "", ""),
		Editor: resolveString(home.Editor, project.Editor,
			os.Getenv("FARSIGHT_EDITOR"), "", ""),
		SensitivityFactors:  Resolved{Value: defaultFactors(), Source: SourceDefault},
		ConfidenceTolerance: Resolved{Value: defaultTolerance, Source: SourceDefault},
	}

	if len(home.SensitivityFactors) > 0 {
		rc.SensitivityFactors = Resolved{Value: home.SensitivityFactors, Source: SourceHome}
	}
	if len(project.SensitivityFactors) > 0 {
		rc.SensitivityFactors = Resolved{Value: project.SensitivityFactors, Source: SourceProject}
	}
	if home.ConfidenceTolerance > 0 {
		rc.ConfidenceTolerance = Resolved{Value: home.ConfidenceTolerance, Source: SourceHome}
	}
	if project.ConfidenceTolerance > 0 {
		rc.ConfidenceTolerance = Resolved{Value: project.ConfidenceTolerance, Source: SourceProject}
	}

	return rc
}
