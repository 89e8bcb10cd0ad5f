package detect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abdidvp/testguard/internal/domain"
)

// ExpectationAdjustments reports equality assertions whose expected value
// changed to something that looks like broken output (undefined, null, empty
// containers). Ordinary value updates such as 5 to 7 are not reported.
func (r *Rules) ExpectationAdjustments(oldSites, newSites []domain.AssertionSite) []domain.Detail {
	var details []domain.Detail
	for _, old := range oldSites {
		cur, ok := Correspond(old, newSites)
		if !ok {
			continue
		}
		if !r.classOf(old).IsEquality() || !r.classOf(cur).IsEquality() {
			continue
		}
		oldLit, okOld := old.ExpectedLiteral()
		newLit, okNew := cur.ExpectedLiteral()
		if !okOld || !okNew || oldLit == newLit {
			continue
		}
		if !r.cfg.IsSuspiciousLiteral(stripSpace(newLit)) {
			continue
		}
		details = append(details, domain.Detail{
			Line:   cur.Line,
			Old:    old.Text,
			New:    cur.Text,
			Reason: fmt.Sprintf("Expected value changed from %s to %s", oldLit, newLit),
		})
	}
	return details
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
