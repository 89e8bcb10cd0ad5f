package detect

import "github.com/abdidvp/testguard/internal/domain"

const impactTestsAvoided = "Tests being avoided instead of fixed"

// TestAvoidance counts each avoidance pattern in the raw old and new text and
// reports the patterns whose count grew. Removing a marker never reports.
func (r *Rules) TestAvoidance(oldText, newText string) []domain.Detail {
	var details []domain.Detail
	for _, p := range r.avoidance {
		before := len(p.re.FindAllStringIndex(oldText, -1))
		after := len(p.re.FindAllStringIndex(newText, -1))
		if after <= before {
			continue
		}
		details = append(details, domain.Detail{
			Pattern: p.name,
			Added:   after - before,
			Impact:  impactTestsAvoided,
		})
	}
	return details
}
