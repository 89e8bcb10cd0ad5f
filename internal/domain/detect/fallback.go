package detect

import (
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
)

const (
	skipMarker     = ".skip("
	equalityMarker = ".toBe("
	truthyMarker   = ".toBeTruthy("
)

// Fallback runs plain substring checks for when either version fails to
// parse: a skip marker new in the edit, and an exact-equality file gaining
// truthy checks.
func (r *Rules) Fallback(oldText, newText string) []domain.Violation {
	var violations []domain.Violation

	if strings.Contains(newText, skipMarker) && !strings.Contains(oldText, skipMarker) {
		violations = append(violations, domain.NewViolation(domain.CategoryTestAvoidance, []domain.Detail{{
			Pattern: skipMarker + ")",
			Added:   strings.Count(newText, skipMarker),
			Impact:  impactTestsAvoided,
		}}))
	}

	if strings.Contains(oldText, equalityMarker) &&
		strings.Count(newText, truthyMarker) > strings.Count(oldText, truthyMarker) {
		violations = append(violations, domain.NewViolation(domain.CategoryWeakenedAssertions, []domain.Detail{{
			Old:    equalityMarker + ")",
			New:    truthyMarker + ")",
			Reason: reasonTruthyReplacement,
		}}))
	}

	return violations
}
