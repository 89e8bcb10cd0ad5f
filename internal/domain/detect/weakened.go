package detect

import "github.com/abdidvp/testguard/internal/domain"

const (
	reasonTruthyReplacement = "Specific value check replaced with truthy check"
	reasonArgumentsDropped  = "Function call arguments no longer validated"
	reasonErrorCheckDropped = "Error validation removed"
	reasonSpecificityLost   = "Assertion specificity reduced"
)

// WeakenedAssertions pairs each old site with its corresponding new site and
// reports pairs where the new assertion discriminates less than the old one.
func (r *Rules) WeakenedAssertions(oldSites, newSites []domain.AssertionSite) []domain.Detail {
	var details []domain.Detail
	for _, old := range oldSites {
		cur, ok := Correspond(old, newSites)
		if !ok {
			continue
		}
		oldClass, newClass := r.classOf(old), r.classOf(cur)
		if !isWeakened(old, cur, oldClass, newClass) {
			continue
		}
		details = append(details, domain.Detail{
			Line:   cur.Line,
			Old:    old.Text,
			New:    cur.Text,
			Reason: weakeningReason(oldClass, newClass),
		})
	}
	return details
}

func isWeakened(old, cur domain.AssertionSite, oldClass, newClass domain.MatcherClass) bool {
	if oldClass.IsStrong() && newClass.IsWeak() {
		return true
	}
	return domain.HasArgumentList(old.Text) && !domain.HasArgumentList(cur.Text)
}

func weakeningReason(oldClass, newClass domain.MatcherClass) string {
	switch {
	case oldClass == domain.MatcherEqualityExact && newClass == domain.MatcherTruthy:
		return reasonTruthyReplacement
	case oldClass == domain.MatcherCalledWithArgs && newClass != domain.MatcherCalledWithArgs:
		return reasonArgumentsDropped
	case oldClass == domain.MatcherThrowsSpecificError && newClass != domain.MatcherThrowsSpecificError:
		return reasonErrorCheckDropped
	default:
		return reasonSpecificityLost
	}
}
