package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/fatih/camelcase"
)

// RenderRules lists the active detection tables, grouping matchers by class.
func RenderRules(cfg domain.RuleConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Matchers") + "\n")
	b.WriteString("  " + separatorLine + "\n")

	byClass := make(map[domain.MatcherClass][]string)
	for _, name := range cfg.MatcherNames() {
		c := cfg.ClassOf(name)
		byClass[c] = append(byClass[c], name)
	}
	for _, class := range domain.ValidMatcherClasses {
		names := byClass[class]
		if len(names) == 0 {
			continue
		}
		strength := warnStyle.Render("weak  ")
		if class.IsStrong() {
			strength = passStyle.Render("strong")
		}
		fmt.Fprintf(&b, "  %s %s\n", strength, sectionHeaderStyle.Render(string(class)))
		for _, n := range names {
			fmt.Fprintf(&b, "      %s  %s\n", padRight(n, 26), faintStyle.Render(HumanizeMatcher(n)))
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Suspicious literals") + "\n")
	b.WriteString("  " + separatorLine + "\n")
	var lits []string
	for lit, on := range cfg.SuspiciousLiterals {
		if on {
			lits = append(lits, lit)
		}
	}
	sort.Strings(lits)
	b.WriteString("      " + strings.Join(lits, "  ") + "\n")

	renderPatterns(&b, "Avoidance patterns", cfg.AvoidancePatterns)
	renderPatterns(&b, fmt.Sprintf("Mocking patterns (threshold %d, not evaluated)", cfg.MockThreshold), cfg.MockPatterns)

	b.WriteString("\n")
	return b.String()
}

func renderPatterns(b *strings.Builder, title string, patterns []domain.TextPattern) {
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, p := range patterns {
		fmt.Fprintf(b, "      %s  %s\n", padRight(p.Name, 26), faintStyle.Render(p.Regex))
	}
}

// HumanizeMatcher turns a matcher name into lower-case words, e.g.
// "toHaveBeenCalledWith" becomes "to have been called with".
func HumanizeMatcher(name string) string {
	words := camelcase.Split(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}
