package detect

import (
	"fmt"
	"regexp"

	"github.com/abdidvp/testguard/internal/domain"
)

// Rules is a RuleConfig with its pattern tables compiled.
type Rules struct {
	cfg       domain.RuleConfig
	avoidance []compiledPattern
}

type compiledPattern struct {
	name string
	re   *regexp.Regexp
}

// NewRules validates cfg and compiles its pattern tables.
func NewRules(cfg domain.RuleConfig) (*Rules, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Rules{cfg: cfg}
	for _, p := range cfg.AvoidancePatterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("compiling avoidance pattern %s: %w", p.Name, err)
		}
		r.avoidance = append(r.avoidance, compiledPattern{name: p.Name, re: re})
	}
	return r, nil
}

// DefaultRules returns the compiled built-in tables.
func DefaultRules() *Rules {
	r, err := NewRules(domain.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default rules: %v", err))
	}
	return r
}

// Config returns the configuration the rules were built from.
func (r *Rules) Config() domain.RuleConfig { return r.cfg }

func (r *Rules) classOf(site domain.AssertionSite) domain.MatcherClass {
	return r.cfg.ClassOf(site.MatcherName())
}
