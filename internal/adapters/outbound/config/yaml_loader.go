package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = ".testguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .testguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .testguard.yaml from projectPath and merges it over the
// built-in tables. Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.RuleConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.RuleConfig{}, err
	}

	var override domain.RuleConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.RuleConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate the raw file first so errors point at what the user wrote.
	if err := override.Validate(); err != nil {
		return domain.RuleConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), override)
	if err := validateGlobs(cfg.TestPatterns); err != nil {
		return domain.RuleConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit values from the file on top of the defaults.
// Maps merge per key, pattern lists append, everything else replaces.
func mergeConfig(base, override domain.RuleConfig) domain.RuleConfig {
	result := base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if len(override.TestPatterns) > 0 {
		result.TestPatterns = override.TestPatterns
	}
	for name, class := range override.Matchers {
		result.Matchers[name] = class
	}
	for lit, suspicious := range override.SuspiciousLiterals {
		result.SuspiciousLiterals[lit] = suspicious
	}
	result.AvoidancePatterns = append(result.AvoidancePatterns, override.AvoidancePatterns...)
	result.MockPatterns = append(result.MockPatterns, override.MockPatterns...)
	if override.MockThreshold > 0 {
		result.MockThreshold = override.MockThreshold
	}
	if override.History != nil {
		result.History = override.History
	}

	return result
}

func validateGlobs(patterns []string) error {
	for i, p := range patterns {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("%w: test_patterns[%d] %q: %v", domain.ErrInvalidConfig, i, p, err)
		}
	}
	return nil
}
