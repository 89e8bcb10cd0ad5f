package detect

import "github.com/abdidvp/testguard/internal/domain"

// lineWindow is how far, in lines, a positional match may drift.
const lineWindow = 2

// Correspond finds the site in candidates that represents the same logical
// check as old. Phase one looks within lineWindow lines of old: a candidate
// with identical normalized text wins, then a candidate with the same
// receiver (text before the first '.'), then any candidate. Within each tier
// the nearest line wins, ties going to document order. Phase two runs only
// when phase one finds nothing and takes the first candidate anywhere whose
// receiver equals old's.
func Correspond(old domain.AssertionSite, candidates []domain.AssertionSite) (domain.AssertionSite, bool) {
	if site, ok := positionalMatch(old, candidates); ok {
		return site, true
	}
	return structuralMatch(old, candidates)
}

func positionalMatch(old domain.AssertionSite, candidates []domain.AssertionSite) (domain.AssertionSite, bool) {
	var sameReceiver, other domain.AssertionSite
	sameDist, otherDist := lineWindow+1, lineWindow+1
	want, receiver := old.Normalized(), old.Receiver()
	for _, c := range candidates {
		dist := abs(c.Line - old.Line)
		if dist > lineWindow {
			continue
		}
		if c.Normalized() == want {
			return c, true
		}
		if c.Receiver() == receiver {
			if dist < sameDist {
				sameReceiver, sameDist = c, dist
			}
			continue
		}
		if dist < otherDist {
			other, otherDist = c, dist
		}
	}
	switch {
	case sameDist <= lineWindow:
		return sameReceiver, true
	case otherDist <= lineWindow:
		return other, true
	}
	return domain.AssertionSite{}, false
}

func structuralMatch(old domain.AssertionSite, candidates []domain.AssertionSite) (domain.AssertionSite, bool) {
	receiver := old.Receiver()
	for _, c := range candidates {
		if c.Receiver() == receiver {
			return c, true
		}
	}
	return domain.AssertionSite{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
