package application

import (
	"fmt"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/abdidvp/testguard/internal/domain"
	"github.com/abdidvp/testguard/internal/domain/detect"
)

// Detection sources recorded in history.
const (
	SourceCLI   = "cli"
	SourceCheck = "check"
	SourceHook  = "hook"
	SourceMCP   = "mcp"
)

// DetectService runs the detector with a project's configuration and
// records outcomes when the project has history enabled.
type DetectService struct {
	parser      domain.SourceParser
	config      domain.ConfigLoader
	openHistory domain.HistoryOpener
	logger      *charmlog.Logger
	now         func() time.Time
}

func NewDetectService(
	parser domain.SourceParser,
	config domain.ConfigLoader,
	openHistory domain.HistoryOpener,
	logger *charmlog.Logger,
) *DetectService {
	return &DetectService{
		parser:      parser,
		config:      config,
		openHistory: openHistory,
		logger:      logger,
		now:         time.Now,
	}
}

// Rules returns the merged configuration for projectPath.
func (s *DetectService) Rules(projectPath string) (domain.RuleConfig, error) {
	cfg, err := s.config.Load(projectPath)
	if err != nil {
		return domain.RuleConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Detect analyzes one edit under projectPath's configuration.
func (s *DetectService) Detect(projectPath string, edit domain.FileEdit, source string) (*domain.Report, error) {
	cfg, err := s.Rules(projectPath)
	if err != nil {
		return nil, err
	}
	return s.DetectWith(projectPath, cfg, edit, source)
}

// DetectWith is Detect with an already loaded configuration.
func (s *DetectService) DetectWith(projectPath string, cfg domain.RuleConfig, edit domain.FileEdit, source string) (*domain.Report, error) {
	d, err := detect.New(s.parser, cfg)
	if err != nil {
		return nil, fmt.Errorf("building detector: %w", err)
	}

	report := d.Analyze(edit.OldContent, edit.NewContent, edit.Path)
	if report.Analysis == domain.AnalysisFallback {
		s.logger.Debug("parse failed, used text fallback", "file", edit.Path)
	}
	s.logger.Debug("detection complete", "file", edit.Path, "violations", len(report.Violations))

	if cfg.HistoryEnabled() {
		s.record(projectPath, report, source)
	}
	return report, nil
}

// record stores report in history. Failures are logged, never returned.
func (s *DetectService) record(projectPath string, report *domain.Report, source string) {
	h, err := s.openHistory(projectPath)
	if err != nil {
		s.logger.Warn("history unavailable", "err", err)
		return
	}
	defer h.Close()

	err = h.Record(domain.HistoryEntry{
		File:       report.File,
		Source:     source,
		Analysis:   report.Analysis,
		Violations: report.Violations,
		DetectedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("recording history failed", "err", err)
	}
}

// History returns up to limit recorded detections for projectPath, newest first.
func (s *DetectService) History(projectPath string, limit int) ([]domain.HistoryEntry, error) {
	h, err := s.openHistory(projectPath)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer h.Close()
	return h.Recent(limit)
}
