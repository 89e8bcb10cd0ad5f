package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderCheckReport renders the per-file results of a working-tree check.
func RenderCheckReport(reports []*domain.Report) string {
	var b strings.Builder

	flagged := 0
	for _, r := range reports {
		if !r.Clean() {
			flagged++
		}
	}

	summary := passStyle.Render(fmt.Sprintf("%d test files checked, all clean", len(reports)))
	if flagged > 0 {
		summary = lipgloss.NewStyle().Bold(true).Foreground(danger).
			Render(fmt.Sprintf("%d of %d test files manipulated", flagged, len(reports)))
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("testguard check") + "\n\n" + summary))
	b.WriteString("\n")

	if len(reports) == 0 {
		b.WriteString("\n  " + dimStyle.Render("No modified test files.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render("Files"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(reports))),
	))
	for _, r := range reports {
		icon := passStyle.Render("●")
		if !r.Clean() {
			icon = failStyle.Render("●")
		}
		line := fmt.Sprintf("    %s %s", icon, fileStyle.Render(r.File))
		if cats := r.Categories(); len(cats) > 0 {
			names := make([]string, len(cats))
			for i, c := range cats {
				names[i] = string(c)
			}
			line += "  " + faintStyle.Render(strings.Join(names, ", "))
		}
		b.WriteString(line + "\n")
	}

	for _, r := range reports {
		if r.Clean() {
			continue
		}
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render(r.File) + "\n")
		for _, v := range r.Violations {
			renderViolation(&b, v)
		}
	}

	if flagged > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Run testguard detect on a single file for the full report."))
		b.WriteString("\n")
	}
	return b.String()
}
