package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/gobwas/glob"
)

// ErrInvalidPattern indicates a test glob could not be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// skipDirs never contain test files worth checking.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"coverage":     true,
}

// GlobClassifier implements domain.TestFileClassifier with glob patterns.
// Patterns are matched against the slash-separated path with a leading
// '/', so "**/__tests__/**" also matches a top-level __tests__ directory.
type GlobClassifier struct {
	matchers []glob.Glob
}

// New compiles patterns into a GlobClassifier.
func New(patterns []string) (*GlobClassifier, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		m, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		matchers = append(matchers, m)
	}
	return &GlobClassifier{matchers: matchers}, nil
}

// NewMatcher adapts New to domain.TestFileMatcherFactory.
func NewMatcher(patterns []string) (domain.TestFileMatcher, error) {
	c, err := New(patterns)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// IsTestFile reports whether path matches any pattern. Paths under skipped
// directories such as node_modules never match.
func (c *GlobClassifier) IsTestFile(path string) bool {
	if path == "" {
		return false
	}
	slashed := "/" + strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, part := range strings.Split(slashed, "/") {
		if skipDirs[part] {
			return false
		}
	}
	for _, m := range c.matchers {
		if m.Match(slashed) {
			return true
		}
	}
	return false
}

// ListTestFiles walks root and returns the test files under it, relative to
// root, slash-separated and sorted. Skipped directories are not entered.
func (c *GlobClassifier) ListTestFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if c.IsTestFile(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
