package domain

import (
	"errors"
	"time"
)

// ErrParse is returned by a SourceParser for syntactically invalid input.
var ErrParse = errors.New("parse failed")

// SyntaxNode is one node of a parsed source tree. Text is the exact source
// substring the node spans and Line its 1-based starting line.
type SyntaxNode struct {
	Kind     string
	Text     string
	Line     int
	Children []*SyntaxNode
}

// SourceParser turns source text into a syntax tree. The name tags the
// parse unit and must not change the result.
type SourceParser interface {
	Parse(source, name string) (*SyntaxNode, error)
}

// ConfigLoader loads the rule configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (RuleConfig, error)
}

// TestFileClassifier decides whether a path names a test file.
type TestFileClassifier interface {
	IsTestFile(path string) bool
}

// RevisionReader reads committed content from version control.
type RevisionReader interface {
	// RepoRoot returns the worktree root of the repository containing path.
	RepoRoot(path string) (string, error)
	// HeadContent returns the file at HEAD. The second result is false when
	// the file is not tracked at HEAD.
	HeadContent(repoPath, file string) (string, bool, error)
	// ModifiedFiles lists worktree files that differ from HEAD, relative to
	// the repository root.
	ModifiedFiles(repoPath string) ([]string, error)
}

// DetectionHistory stores detection outcomes for one project.
type DetectionHistory interface {
	Record(entry HistoryEntry) error
	Recent(limit int) ([]HistoryEntry, error)
	Close() error
}

// HistoryOpener opens the detection history of the project at projectPath.
type HistoryOpener func(projectPath string) (DetectionHistory, error)

// HistoryEntry is one recorded detection run.
type HistoryEntry struct {
	ID         string       `json:"id"`
	File       string       `json:"file"`
	Source     string       `json:"source"`
	Analysis   AnalysisMode `json:"analysis"`
	Violations []Violation  `json:"violations"`
	DetectedAt time.Time    `json:"detected_at"`
}

// FileEdit is a proposed change to one file.
type FileEdit struct {
	Path       string `json:"path"`
	OldContent string `json:"old_content"`
	NewContent string `json:"new_content"`
}

// BaselineStore persists one Baseline per project.
type BaselineStore interface {
	// Load returns nil, nil when no baseline has been saved.
	Load(projectPath string) (*Baseline, error)
	Save(b *Baseline) error
	Invalidate(projectPath string) error
}

// TestFileMatcher classifies paths as test files and lists them under a root.
type TestFileMatcher interface {
	TestFileClassifier
	// ListTestFiles returns slash-separated paths relative to root.
	ListTestFiles(root string) ([]string, error)
}

// TestFileMatcherFactory builds a TestFileMatcher from glob patterns.
type TestFileMatcherFactory func(patterns []string) (TestFileMatcher, error)
