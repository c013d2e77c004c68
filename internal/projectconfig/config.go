// Package projectconfig provides the ProjectConfig struct and loader for
// .menuqa.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultFormat = "table"

	DefaultApplyRepairs = false

	DefaultFuzzyThreshold = 0.75

	DefaultTopIssues   = 6
	DefaultWorstItems  = 10
	DefaultCommonFlags = 8
)

// DefaultsConfig holds default command parameters.
type DefaultsConfig struct {
	Format       string `yaml:"format,omitempty"`
	ApplyRepairs *bool  `yaml:"apply_repairs,omitempty"`
	Debug        *bool  `yaml:"debug,omitempty"`
}

// CorrectionsConfig tunes the OCR name corrector.
type CorrectionsConfig struct {
	// Extra error→fix entries layered on top of the built-in dictionary.
	Extra map[string]string `yaml:"extra,omitempty"`
	// Additional vocabulary words for fuzzy matching.
	Vocabulary []string `yaml:"vocabulary,omitempty"`
	// Minimum similarity ratio for a fuzzy correction.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold,omitempty"`
}

// ReportConfig bounds the report's issue digest lists.
type ReportConfig struct {
	TopIssues   int `yaml:"top_issues,omitempty"`
	WorstItems  int `yaml:"worst_items,omitempty"`
	CommonFlags int `yaml:"common_flags,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .menuqa.yaml.
type ProjectConfig struct {
	Defaults    DefaultsConfig    `yaml:"defaults,omitempty"`
	Corrections CorrectionsConfig `yaml:"corrections,omitempty"`
	Report      ReportConfig      `yaml:"report,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Format:       DefaultFormat,
			ApplyRepairs: boolPtr(DefaultApplyRepairs),
			Debug:        boolPtr(false),
		},
		Corrections: CorrectionsConfig{
			FuzzyThreshold: DefaultFuzzyThreshold,
		},
		Report: ReportConfig{
			TopIssues:   DefaultTopIssues,
			WorstItems:  DefaultWorstItems,
			CommonFlags: DefaultCommonFlags,
		},
	}
}

// Load finds .menuqa.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .menuqa.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .menuqa.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .menuqa.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".menuqa.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}
	if src.Defaults.ApplyRepairs != nil {
		dst.Defaults.ApplyRepairs = src.Defaults.ApplyRepairs
	}
	if src.Defaults.Debug != nil {
		dst.Defaults.Debug = src.Defaults.Debug
	}

	if len(src.Corrections.Extra) > 0 {
		dst.Corrections.Extra = src.Corrections.Extra
	}
	if len(src.Corrections.Vocabulary) > 0 {
		dst.Corrections.Vocabulary = src.Corrections.Vocabulary
	}
	if src.Corrections.FuzzyThreshold != 0 {
		dst.Corrections.FuzzyThreshold = src.Corrections.FuzzyThreshold
	}

	if src.Report.TopIssues > 0 {
		dst.Report.TopIssues = src.Report.TopIssues
	}
	if src.Report.WorstItems > 0 {
		dst.Report.WorstItems = src.Report.WorstItems
	}
	if src.Report.CommonFlags > 0 {
		dst.Report.CommonFlags = src.Report.CommonFlags
	}
}

func boolPtr(b bool) *bool {
	return &b
}
