package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle        = lipgloss.NewStyle().Foreground(dim)
	faintStyle      = lipgloss.NewStyle().Foreground(faint)
	passStyle       = lipgloss.NewStyle().Foreground(success)
	failStyle       = lipgloss.NewStyle().Foreground(danger)
	warnStyle       = lipgloss.NewStyle().Foreground(warning)
	criticalTag     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	highTag         = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoStyle       = lipgloss.NewStyle().Foreground(info)
	fileStyle       = lipgloss.NewStyle().Foreground(dim)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(fg)
	categoryStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fallbackBadge   = lipgloss.NewStyle().Foreground(warning).Italic(true)
	separatorLine   = faintStyle.Render(strings.Repeat("─", 64))
	oldValueStyle   = lipgloss.NewStyle().Foreground(danger)
	newValueStyle   = lipgloss.NewStyle().Foreground(warning)
	removedLineMark = failStyle.Render("-")
)

// RenderReport renders one detection report as a styled TUI string.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("testguard")
	file := report.File
	if file == "" {
		file = "input"
	}
	subtitle := dimStyle.Render(shortenPath(file))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict(report)))
	b.WriteString("\n\n")

	if report.Analysis == domain.AnalysisFallback {
		b.WriteString("  " + fallbackBadge.Render("file did not parse, text checks only") + "\n\n")
	}

	if report.Clean() {
		b.WriteString("  " + passStyle.Render("No test manipulation detected.") + "\n\n")
		return b.String()
	}

	for i, v := range report.Violations {
		renderViolation(&b, v)
		if i < len(report.Violations)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")
	b.WriteString("  " + dimStyle.Render("Fix the code under test instead of the test.") + "\n\n")
	return b.String()
}

func verdict(report *domain.Report) string {
	if report.Clean() {
		return lipgloss.NewStyle().Bold(true).Foreground(success).Render("clean")
	}
	n := len(report.Violations)
	word := "violations"
	if n == 1 {
		word = "violation"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(danger).Render(fmt.Sprintf("%d %s", n, word))
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	fmt.Fprintf(b, "  %s %s\n", severityTag(v.Severity), categoryStyle.Render(string(v.Category)))
	fmt.Fprintf(b, "           %s\n", dimStyle.Render(v.Message))

	for _, d := range v.Details {
		renderDetail(b, d)
	}
}

func renderDetail(b *strings.Builder, d domain.Detail) {
	line := ""
	if d.Line > 0 {
		line = faintStyle.Render(fmt.Sprintf("L%-4d", d.Line))
	}

	switch {
	case d.Removed != "":
		fmt.Fprintf(b, "    %s %s %s\n", line, removedLineMark, oldValueStyle.Render(firstLine(d.Removed)))
	case d.Pattern != "":
		fmt.Fprintf(b, "    %s %s %s\n", warnStyle.Render("●"), d.Pattern, dimStyle.Render(fmt.Sprintf("+%d", d.Added)))
	case d.Old != "" || d.New != "":
		fmt.Fprintf(b, "    %s %s\n", line, oldValueStyle.Render(firstLine(d.Old)))
		fmt.Fprintf(b, "    %s %s\n", strings.Repeat(" ", lipgloss.Width(line)), newValueStyle.Render("→ "+firstLine(d.New)))
	}

	note := d.Reason
	if note == "" {
		note = d.Impact
	}
	if note != "" {
		fmt.Fprintf(b, "          %s\n", infoStyle.Render(note))
	}
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return criticalTag.Render("critical")
	default:
		return highTag.Render("high    ")
	}
}

func firstLine(s string) string {
	head, _, cut := strings.Cut(s, "\n")
	if cut {
		return head + " …"
	}
	return head
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats recorded detections for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No detection history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Detection History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		count := passStyle.Render("clean")
		if n := len(e.Violations); n > 0 {
			count = failStyle.Render(fmt.Sprintf("%d violations", n))
		}
		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(e.DetectedAt.Format("2006-01-02 15:04")),
			faintStyle.Render(padRight(e.Source, 5)),
			fileStyle.Render(shortenPath(e.File)),
			count,
		)
		if e.Analysis == domain.AnalysisFallback {
			line += "  " + fallbackBadge.Render("fallback")
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
