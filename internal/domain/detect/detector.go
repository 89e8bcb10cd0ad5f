// Package detect finds edits to test files that weaken the test rather than
// fix the code under test.
//
// The pipeline parses both versions of a file, extracts assertion call sites
// and runs four independent classifiers over them. When either version fails
// to parse it degrades to plain substring checks so that broken input still
// produces a verdict.
package detect

import (
	"github.com/abdidvp/testguard/internal/domain"
)

const defaultLabel = "input"

// Detector runs the detection pipeline. It holds no per-run state and is safe
// for concurrent use when its parser is.
type Detector struct {
	parser domain.SourceParser
	rules  *Rules
}

// New creates a Detector over parser with the tables from cfg.
func New(parser domain.SourceParser, cfg domain.RuleConfig) (*Detector, error) {
	rules, err := NewRules(cfg)
	if err != nil {
		return nil, err
	}
	return &Detector{parser: parser, rules: rules}, nil
}

// NewWithRules creates a Detector over parser with precompiled rules.
func NewWithRules(parser domain.SourceParser, rules *Rules) *Detector {
	return &Detector{parser: parser, rules: rules}
}

// Rules returns the compiled tables the detector uses.
func (d *Detector) Rules() *Rules { return d.rules }

// Detect returns the violations found between oldContent and newContent.
// An empty result means the edit is accepted.
func (d *Detector) Detect(oldContent, newContent, label string) []domain.Violation {
	return d.Analyze(oldContent, newContent, label).Violations
}

// Analyze is Detect with the analysis path recorded in the report.
func (d *Detector) Analyze(oldContent, newContent, label string) *domain.Report {
	a := d.prepare(oldContent, newContent, label)
	violations := a.run(d.rules)
	if violations == nil {
		violations = []domain.Violation{}
	}
	return &domain.Report{
		File:       label,
		Analysis:   a.mode(),
		Violations: violations,
	}
}

// analysis is either fullAnalysis or fallbackAnalysis.
type analysis interface {
	run(r *Rules) []domain.Violation
	mode() domain.AnalysisMode
}

type fullAnalysis struct {
	oldTree, newTree *domain.SyntaxNode
	oldText, newText string
}

type fallbackAnalysis struct {
	oldText, newText string
}

func (d *Detector) prepare(oldContent, newContent, label string) analysis {
	if label == "" {
		label = defaultLabel
	}
	oldTree, err := d.parser.Parse(oldContent, label+"#old")
	if err != nil || oldTree == nil {
		return fallbackAnalysis{oldText: oldContent, newText: newContent}
	}
	newTree, err := d.parser.Parse(newContent, label+"#new")
	if err != nil || newTree == nil {
		return fallbackAnalysis{oldText: oldContent, newText: newContent}
	}
	return fullAnalysis{
		oldTree: oldTree, newTree: newTree,
		oldText: oldContent, newText: newContent,
	}
}

// run applies every classifier in report order. None is skipped because an
// earlier one already found something.
func (a fullAnalysis) run(r *Rules) []domain.Violation {
	oldSites := ExtractAssertions(a.oldTree)
	newSites := ExtractAssertions(a.newTree)

	results := []struct {
		category domain.Category
		details  []domain.Detail
	}{
		{domain.CategoryWeakenedAssertions, r.WeakenedAssertions(oldSites, newSites)},
		{domain.CategoryRemovedTestLogic, RemovedTestLogic(oldSites, newSites)},
		{domain.CategoryTestAvoidance, r.TestAvoidance(a.oldText, a.newText)},
		{domain.CategoryExpectationAdjustment, r.ExpectationAdjustments(oldSites, newSites)},
	}

	var violations []domain.Violation
	for _, res := range results {
		if len(res.details) == 0 {
			continue
		}
		violations = append(violations, domain.NewViolation(res.category, res.details))
	}
	return violations
}

func (a fullAnalysis) mode() domain.AnalysisMode { return domain.AnalysisFull }

func (a fallbackAnalysis) run(r *Rules) []domain.Violation {
	return r.Fallback(a.oldText, a.newText)
}

func (a fallbackAnalysis) mode() domain.AnalysisMode { return domain.AnalysisFallback }
