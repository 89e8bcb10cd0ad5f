package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/abdidvp/testguard/internal/domain"
)

// Tools whose calls the hook inspects.
const (
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
	ToolWrite     = "Write"
)

// Decision is the verdict returned to the assistant.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
	DecisionAsk   Decision = "ask"
)

// TextEdit is one string replacement of an Edit or MultiEdit call.
type TextEdit struct {
	OldString  string
	NewString  string
	ReplaceAll bool
}

// ToolCall is a proposed file modification by the assistant.
type ToolCall struct {
	Tool     string
	FilePath string
	Cwd      string
	Edits    []TextEdit
	Content  string
}

// HookResult is the outcome of evaluating one tool call.
type HookResult struct {
	Decision Decision
	Reason   string
	Mode     domain.Mode
	Report   *domain.Report
}

// errNotApplicable marks calls the hook lets through without analysis.
var errNotApplicable = errors.New("not applicable")

// HookService decides whether an assistant's edit to a test file may proceed.
type HookService struct {
	detector   *DetectService
	revisions  domain.RevisionReader
	newMatcher domain.TestFileMatcherFactory
	logger     *charmlog.Logger
}

func NewHookService(
	detector *DetectService,
	revisions domain.RevisionReader,
	newMatcher domain.TestFileMatcherFactory,
	logger *charmlog.Logger,
) *HookService {
	return &HookService{
		detector:   detector,
		revisions:  revisions,
		newMatcher: newMatcher,
		logger:     logger,
	}
}

// Evaluate runs the detector over the file content before and after call.
// Any failure along the way allows the call.
func (s *HookService) Evaluate(call ToolCall) HookResult {
	allow := HookResult{Decision: DecisionAllow}

	if call.Tool != ToolEdit && call.Tool != ToolMultiEdit && call.Tool != ToolWrite {
		return allow
	}
	if call.FilePath == "" {
		return allow
	}

	path := call.FilePath
	if !filepath.IsAbs(path) && call.Cwd != "" {
		path = filepath.Join(call.Cwd, path)
	}
	projectPath := s.projectRoot(call.Cwd, path)

	cfg, err := s.detector.Rules(projectPath)
	if err != nil {
		s.logger.Warn("config unreadable, allowing edit", "err", err)
		return allow
	}
	matcher, err := s.newMatcher(cfg.TestPatterns)
	if err != nil {
		s.logger.Warn("test patterns invalid, allowing edit", "err", err)
		return allow
	}

	rel := relativePath(projectPath, path)
	if !matcher.IsTestFile(rel) {
		return allow
	}

	edit, err := reconstruct(call, path)
	if err != nil {
		if !errors.Is(err, errNotApplicable) {
			s.logger.Warn("could not reconstruct edit, allowing", "file", rel, "err", err)
		}
		return allow
	}
	edit.Path = rel

	report, err := s.detector.DetectWith(projectPath, cfg, edit, SourceHook)
	if err != nil {
		s.logger.Warn("detection failed, allowing edit", "file", rel, "err", err)
		return allow
	}
	if report.Clean() {
		return HookResult{Decision: DecisionAllow, Mode: cfg.Mode, Report: report}
	}

	decision := DecisionDeny
	if cfg.Mode == domain.ModeWarn {
		decision = DecisionAsk
	}
	s.logger.Info("test manipulation detected", "file", rel, "decision", decision, "categories", report.Categories())
	return HookResult{
		Decision: decision,
		Reason:   FormatReason(report),
		Mode:     cfg.Mode,
		Report:   report,
	}
}

func (s *HookService) projectRoot(cwd, path string) string {
	start := cwd
	if start == "" {
		start = filepath.Dir(path)
	}
	if root, err := s.revisions.RepoRoot(start); err == nil {
		return root
	}
	return start
}

// reconstruct reads path from disk and applies call to it. New files and
// edits whose old_string is absent are not applicable.
func reconstruct(call ToolCall, path string) (domain.FileEdit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.FileEdit{}, errNotApplicable
		}
		return domain.FileEdit{}, err
	}
	old := string(data)

	if call.Tool == ToolWrite {
		return domain.FileEdit{OldContent: old, NewContent: call.Content}, nil
	}

	cur := old
	for _, e := range call.Edits {
		if e.OldString == "" || !strings.Contains(cur, e.OldString) {
			return domain.FileEdit{}, errNotApplicable
		}
		if e.ReplaceAll {
			cur = strings.ReplaceAll(cur, e.OldString, e.NewString)
		} else {
			cur = strings.Replace(cur, e.OldString, e.NewString, 1)
		}
	}
	return domain.FileEdit{OldContent: old, NewContent: cur}, nil
}

func relativePath(root, path string) string {
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	resolved := path
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		resolved = filepath.Join(dir, filepath.Base(path))
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// FormatReason renders a report as the plain-text explanation shown to the
// assistant.
func FormatReason(report *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "testguard: test manipulation detected in %s\n", report.File)
	for _, v := range report.Violations {
		fmt.Fprintf(&b, "\n[%s] %s: %s\n", v.Severity, v.Category, v.Message)
		for _, d := range v.Details {
			b.WriteString("  - " + describeDetail(d) + "\n")
		}
	}
	b.WriteString("\nFix the code under test instead of changing the test to pass.")
	return b.String()
}

func describeDetail(d domain.Detail) string {
	var parts []string
	if d.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d:", d.Line))
	}
	switch {
	case d.Removed != "":
		parts = append(parts, "removed "+domain.NormalizeWhitespace(d.Removed))
	case d.Pattern != "":
		parts = append(parts, fmt.Sprintf("%s added %d time(s)", d.Pattern, d.Added))
	case d.Old != "" || d.New != "":
		parts = append(parts, domain.NormalizeWhitespace(d.Old)+" -> "+domain.NormalizeWhitespace(d.New))
	}
	if d.Reason != "" {
		parts = append(parts, "("+d.Reason+")")
	} else if d.Impact != "" {
		parts = append(parts, "("+d.Impact+")")
	}
	return strings.Join(parts, " ")
}
