package domain

import "strings"

// Category identifies one kind of test manipulation.
type Category string

const (
	CategoryWeakenedAssertions    Category = "WEAKENED_ASSERTIONS"
	CategoryRemovedTestLogic      Category = "REMOVED_TEST_LOGIC"
	CategoryTestAvoidance         Category = "TEST_AVOIDANCE"
	CategoryExpectationAdjustment Category = "EXPECTATION_ADJUSTMENT"

	// CategoryExcessiveMocking has a pattern table in RuleConfig but no
	// classifier in the detection pipeline.
	CategoryExcessiveMocking Category = "EXCESSIVE_MOCKING"
)

// WiredCategories lists the categories the detector reports, in report order.
var WiredCategories = []Category{
	CategoryWeakenedAssertions,
	CategoryRemovedTestLogic,
	CategoryTestAvoidance,
	CategoryExpectationAdjustment,
}

// Severity ranks how serious a violation is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
)

var categorySeverity = map[Category]Severity{
	CategoryWeakenedAssertions:    SeverityCritical,
	CategoryRemovedTestLogic:      SeverityCritical,
	CategoryTestAvoidance:         SeverityCritical,
	CategoryExpectationAdjustment: SeverityCritical,
	CategoryExcessiveMocking:      SeverityHigh,
}

var categoryMessage = map[Category]string{
	CategoryWeakenedAssertions:    "Test assertions were weakened instead of fixing the code under test",
	CategoryRemovedTestLogic:      "Test validation logic was removed",
	CategoryTestAvoidance:         "Tests were skipped or disabled instead of fixed",
	CategoryExpectationAdjustment: "Expected values were changed to match broken output",
	CategoryExcessiveMocking:      "Mocking was added in place of real validation",
}

// Severity returns the fixed severity of the category.
func (c Category) Severity() Severity {
	if s, ok := categorySeverity[c]; ok {
		return s
	}
	return SeverityCritical
}

// Message returns the fixed human-readable summary of the category.
func (c Category) Message() string { return categoryMessage[c] }

// AssertionSite is one assertion call found in one version of a test file.
type AssertionSite struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// MatcherName returns the method name of the outermost call in the
// assertion chain, e.g. "toBe" for expect(x).toBe(1).
func (s AssertionSite) MatcherName() string { return MatcherName(s.Text) }

// ExpectedLiteral returns the argument text of the matcher call.
func (s AssertionSite) ExpectedLiteral() (string, bool) { return ExpectedLiteral(s.Text) }

// Normalized returns the text with whitespace runs collapsed and trimmed.
func (s AssertionSite) Normalized() string { return NormalizeWhitespace(s.Text) }

// Receiver returns the text before the first '.', the core expression the
// matcher chain hangs off.
func (s AssertionSite) Receiver() string {
	head, _, _ := strings.Cut(s.Text, ".")
	return head
}

// NormalizeWhitespace collapses every whitespace run to one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Detail is one evidence record attached to a violation. Which fields are
// populated depends on the category.
type Detail struct {
	Line    int    `json:"line,omitempty"`
	Old     string `json:"old,omitempty"`
	New     string `json:"new,omitempty"`
	Removed string `json:"removed,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Added   int    `json:"added,omitempty"`
}

// Violation is one detected manipulation category together with its evidence.
type Violation struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Details  []Detail `json:"details"`
}

// NewViolation builds a violation with the category's fixed severity and message.
func NewViolation(c Category, details []Detail) Violation {
	return Violation{
		Category: c,
		Severity: c.Severity(),
		Message:  c.Message(),
		Details:  details,
	}
}

// AnalysisMode records which path of the pipeline produced a report.
type AnalysisMode string

const (
	AnalysisFull     AnalysisMode = "full"
	AnalysisFallback AnalysisMode = "fallback"
)

// Report is the outcome of one detection run.
type Report struct {
	File       string       `json:"file,omitempty"`
	Analysis   AnalysisMode `json:"analysis"`
	Violations []Violation  `json:"violations"`
}

// Clean reports whether no manipulation was detected.
func (r *Report) Clean() bool { return len(r.Violations) == 0 }

// Categories returns the categories present in the report, in report order.
func (r *Report) Categories() []Category {
	out := make([]Category, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Category)
	}
	return out
}

// Has reports whether the report contains a violation of category c.
func (r *Report) Has(c Category) bool {
	for _, v := range r.Violations {
		if v.Category == c {
			return true
		}
	}
	return false
}

// Find returns the violation of category c, if present.
func (r *Report) Find(c Category) (Violation, bool) {
	for _, v := range r.Violations {
		if v.Category == c {
			return v, true
		}
	}
	return Violation{}, false
}
