package detect

import "github.com/abdidvp/testguard/internal/domain"

const impactCoverageDecreased = "Validation logic removed - coverage decreased"

// RemovedTestLogic reports old sites with no whitespace-normalized twin
// anywhere in the new list. Position is ignored, so reordering is not removal.
func RemovedTestLogic(oldSites, newSites []domain.AssertionSite) []domain.Detail {
	present := make(map[string]bool, len(newSites))
	for _, s := range newSites {
		present[s.Normalized()] = true
	}

	var details []domain.Detail
	for _, old := range oldSites {
		if present[old.Normalized()] {
			continue
		}
		details = append(details, domain.Detail{
			Line:    old.Line,
			Removed: old.Text,
			Impact:  impactCoverageDecreased,
		})
	}
	return details
}
