package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrInvalidConfig is wrapped by every RuleConfig validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Mode tells hook callers what to do with a non-clean report.
type Mode string

const (
	ModeBlock Mode = "block"
	ModeWarn  Mode = "warn"
)

// ValidModes enumerates all recognized modes.
var ValidModes = []Mode{ModeBlock, ModeWarn}

// TextPattern is a named regular expression over raw file text.
type TextPattern struct {
	Name  string `yaml:"name"  json:"name"`
	Regex string `yaml:"regex" json:"regex"`
}

// RuleConfig holds the detection tables and caller policy, loaded from
// .testguard.yaml and merged over DefaultConfig.
type RuleConfig struct {
	Mode               Mode                    `yaml:"mode"                json:"mode,omitempty"`
	TestPatterns       []string                `yaml:"test_patterns"       json:"test_patterns,omitempty"`
	Matchers           map[string]MatcherClass `yaml:"matchers"            json:"matchers,omitempty"`
	SuspiciousLiterals map[string]bool         `yaml:"suspicious_literals" json:"suspicious_literals,omitempty"`
	AvoidancePatterns  []TextPattern           `yaml:"avoidance_patterns"  json:"avoidance_patterns,omitempty"`
	History            *bool                   `yaml:"history,omitempty"   json:"history,omitempty"`

	// MockPatterns and MockThreshold describe the excessive-mocking
	// heuristic. They are validated and listed but never evaluated.
	MockPatterns  []TextPattern `yaml:"mock_patterns"  json:"mock_patterns,omitempty"`
	MockThreshold int           `yaml:"mock_threshold" json:"mock_threshold,omitempty"`
}

// DefaultConfig returns the built-in tables.
func DefaultConfig() RuleConfig {
	return RuleConfig{
		Mode: ModeBlock,
		TestPatterns: []string{
			"**.test.{js,jsx,ts,tsx,mjs,cjs,mts,cts}",
			"**.spec.{js,jsx,ts,tsx,mjs,cjs,mts,cts}",
			"**/__tests__/**.{js,jsx,ts,tsx,mjs,cjs,mts,cts}",
		},
		Matchers: map[string]MatcherClass{
			// jest / vitest
			"toBe":                     MatcherEqualityExact,
			"toEqual":                  MatcherEqualityStructural,
			"toStrictEqual":            MatcherStrictEquality,
			"toHaveBeenCalledWith":     MatcherCalledWithArgs,
			"toHaveBeenLastCalledWith": MatcherCalledWithArgs,
			"toHaveBeenNthCalledWith":  MatcherCalledWithArgs,
			"toBeCalledWith":           MatcherCalledWithArgs,
			"toThrow":                  MatcherThrowsSpecificError,
			"toThrowError":             MatcherThrowsSpecificError,
			"toBeTruthy":               MatcherTruthy,
			"toBeFalsy":                MatcherFalsy,
			"toBeDefined":              MatcherDefined,
			"toBeUndefined":            MatcherUndefined,
			"toHaveBeenCalled":         MatcherCalledAtAll,
			"toBeCalled":               MatcherCalledAtAll,
			// node:assert and chai
			"equal":           MatcherEqualityExact,
			"strictEqual":     MatcherStrictEquality,
			"deepEqual":       MatcherEqualityStructural,
			"deepStrictEqual": MatcherStrictEquality,
			"eql":             MatcherEqualityStructural,
			"throws":          MatcherThrowsSpecificError,
			"ok":              MatcherTruthy,
			"calledWith":      MatcherCalledWithArgs,
		},
		SuspiciousLiterals: map[string]bool{
			"undefined": true,
			"null":      true,
			"NaN":       true,
			`''`:        true,
			`""`:        true,
			"[]":        true,
			"{}":        true,
		},
		AvoidancePatterns: []TextPattern{
			{Name: ".skip()", Regex: `\.skip\s*\(`},
			{Name: ".only()", Regex: `\.only\s*\(`},
			{Name: "xit()", Regex: `\bxit\s*\(`},
			{Name: "xdescribe()", Regex: `\bxdescribe\s*\(`},
			{Name: "pending()", Regex: `\bpending\s*\(`},
			{Name: "@Ignore", Regex: `@Ignore\b`},
			{Name: "@Disabled", Regex: `@Disabled\b`},
		},
		MockPatterns: []TextPattern{
			{Name: "jest.mock()", Regex: `\bjest\.mock\s*\(`},
			{Name: "jest.fn()", Regex: `\bjest\.fn\s*\(`},
			{Name: "jest.spyOn()", Regex: `\bjest\.spyOn\s*\(`},
			{Name: "vi.mock()", Regex: `\bvi\.mock\s*\(`},
			{Name: "sinon.stub()", Regex: `\bsinon\.stub\s*\(`},
			{Name: ".mockImplementation()", Regex: `\.mockImplementation\s*\(`},
			{Name: ".mockReturnValue()", Regex: `\.mockReturnValue\s*\(`},
		},
		MockThreshold: 3,
	}
}

// ClassOf returns the matcher class registered for name.
func (c RuleConfig) ClassOf(name string) MatcherClass {
	if name == "" {
		return MatcherUnknown
	}
	return c.Matchers[name]
}

// IsSuspiciousLiteral reports whether literal looks like broken output.
func (c RuleConfig) IsSuspiciousLiteral(literal string) bool {
	return c.SuspiciousLiterals[literal]
}

// HistoryEnabled reports whether detections should be recorded.
func (c RuleConfig) HistoryEnabled() bool {
	return c.History != nil && *c.History
}

// MatcherNames returns the registered matcher names sorted.
func (c RuleConfig) MatcherNames() []string {
	names := make([]string, 0, len(c.Matchers))
	for n := range c.Matchers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c RuleConfig) Validate() error {
	// 1. mode must be known or empty
	if c.Mode != "" {
		valid := false
		for _, m := range ValidModes {
			if c.Mode == m {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: unknown mode %q (valid: block, warn)", ErrInvalidConfig, c.Mode)
		}
	}

	// 2. matcher classes must be known
	for name, class := range c.Matchers {
		if name == "" {
			return fmt.Errorf("%w: empty matcher name", ErrInvalidConfig)
		}
		if !isValidMatcherClass(class) {
			return fmt.Errorf("%w: unknown class %q for matcher %q", ErrInvalidConfig, class, name)
		}
	}

	// 3. pattern tables must compile
	if err := validatePatterns("avoidance_patterns", c.AvoidancePatterns); err != nil {
		return err
	}
	if err := validatePatterns("mock_patterns", c.MockPatterns); err != nil {
		return err
	}

	if c.MockThreshold < 0 {
		return fmt.Errorf("%w: mock_threshold must be >= 0 (got %d)", ErrInvalidConfig, c.MockThreshold)
	}

	for i, p := range c.TestPatterns {
		if p == "" {
			return fmt.Errorf("%w: test_patterns[%d] must not be empty", ErrInvalidConfig, i)
		}
	}

	return nil
}

func validatePatterns(field string, patterns []TextPattern) error {
	for i, p := range patterns {
		if p.Name == "" {
			return fmt.Errorf("%w: %s[%d].name must not be empty", ErrInvalidConfig, field, i)
		}
		if p.Regex == "" {
			return fmt.Errorf("%w: %s[%d].regex must not be empty", ErrInvalidConfig, field, i)
		}
		if _, err := regexp.Compile(p.Regex); err != nil {
			return fmt.Errorf("%w: %s[%d] (%s): %v", ErrInvalidConfig, field, i, p.Name, err)
		}
	}
	return nil
}
