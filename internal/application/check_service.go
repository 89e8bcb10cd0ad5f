package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/abdidvp/testguard/internal/domain"
)

// ErrNoBaseline is returned by CheckBaseline when no snapshot was saved.
var ErrNoBaseline = errors.New("no baseline saved, run testguard baseline save first")

// CheckService checks every changed test file of a project, against git
// HEAD or against a saved baseline snapshot.
type CheckService struct {
	detector   *DetectService
	revisions  domain.RevisionReader
	baselines  domain.BaselineStore
	newMatcher domain.TestFileMatcherFactory
	logger     *charmlog.Logger
}

func NewCheckService(
	detector *DetectService,
	revisions domain.RevisionReader,
	baselines domain.BaselineStore,
	newMatcher domain.TestFileMatcherFactory,
	logger *charmlog.Logger,
) *CheckService {
	return &CheckService{
		detector:   detector,
		revisions:  revisions,
		baselines:  baselines,
		newMatcher: newMatcher,
		logger:     logger,
	}
}

// CheckWorktree compares each modified test file in the repository
// containing path with its HEAD version. Reports are ordered by path.
func (s *CheckService) CheckWorktree(path string) ([]*domain.Report, error) {
	root, err := s.revisions.RepoRoot(path)
	if err != nil {
		return nil, err
	}
	cfg, matcher, err := s.load(root)
	if err != nil {
		return nil, err
	}

	files, err := s.revisions.ModifiedFiles(root)
	if err != nil {
		return nil, fmt.Errorf("listing modified files: %w", err)
	}

	reports := []*domain.Report{}
	for _, f := range files {
		if !matcher.IsTestFile(f) {
			continue
		}
		old, ok, err := s.revisions.HeadContent(root, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Debug("not tracked at HEAD, skipping", "file", f)
			continue
		}
		cur, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		report, err := s.detector.DetectWith(root, cfg, domain.FileEdit{Path: f, OldContent: old, NewContent: string(cur)}, SourceCheck)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	s.logger.Info("check complete", "files", len(reports))
	return reports, nil
}

// SaveBaseline snapshots every test file under projectPath.
func (s *CheckService) SaveBaseline(projectPath string) (*domain.Baseline, error) {
	_, matcher, err := s.load(projectPath)
	if err != nil {
		return nil, err
	}
	files, err := matcher.ListTestFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing test files: %w", err)
	}

	b := &domain.Baseline{
		ProjectPath: projectPath,
		CreatedAt:   time.Now().UTC(),
		Files:       make(map[string]string, len(files)),
	}
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(f)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		b.Files[f] = string(data)
	}
	if err := s.baselines.Save(b); err != nil {
		return nil, fmt.Errorf("saving baseline: %w", err)
	}
	s.logger.Info("baseline saved", "files", len(b.Files))
	return b, nil
}

// ClearBaseline removes the saved snapshot, if any.
func (s *CheckService) ClearBaseline(projectPath string) error {
	return s.baselines.Invalidate(projectPath)
}

// CheckBaseline compares test files changed since SaveBaseline with their
// snapshot content. New and deleted files are ignored.
func (s *CheckService) CheckBaseline(projectPath string) ([]*domain.Report, error) {
	b, err := s.baselines.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}
	if b == nil {
		return nil, ErrNoBaseline
	}
	cfg, matcher, err := s.load(projectPath)
	if err != nil {
		return nil, err
	}
	files, err := matcher.ListTestFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing test files: %w", err)
	}

	reports := []*domain.Report{}
	for _, f := range files {
		if _, ok := b.Files[f]; !ok {
			continue
		}
		cur, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(f)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		old, changed := b.Changed(f, string(cur))
		if !changed {
			continue
		}
		report, err := s.detector.DetectWith(projectPath, cfg, domain.FileEdit{Path: f, OldContent: old, NewContent: string(cur)}, SourceCheck)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *CheckService) load(projectPath string) (domain.RuleConfig, domain.TestFileMatcher, error) {
	cfg, err := s.detector.Rules(projectPath)
	if err != nil {
		return domain.RuleConfig{}, nil, err
	}
	matcher, err := s.newMatcher(cfg.TestPatterns)
	if err != nil {
		return domain.RuleConfig{}, nil, fmt.Errorf("compiling test patterns: %w", err)
	}
	return cfg, matcher, nil
}
