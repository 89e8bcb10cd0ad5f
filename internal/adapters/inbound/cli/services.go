package cli

import (
	"github.com/abdidvp/testguard/internal/adapters/outbound/cache"
	"github.com/abdidvp/testguard/internal/adapters/outbound/config"
	"github.com/abdidvp/testguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/testguard/internal/adapters/outbound/history"
	"github.com/abdidvp/testguard/internal/adapters/outbound/parser"
	"github.com/abdidvp/testguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/testguard/internal/application"
	"github.com/abdidvp/testguard/internal/domain"
)

// newParser returns a caching tree-sitter parser for commands that parse
// many sources in one process.
func newParser(cached bool) domain.SourceParser {
	p := parser.New()
	if !cached {
		return p
	}
	c, err := parser.NewCached(p, parser.DefaultCacheSize)
	if err != nil {
		logger.Warn("parse cache disabled", "err", err)
		return p
	}
	return c
}

func newDetectService(cached bool) *application.DetectService {
	return application.NewDetectService(newParser(cached), config.New(), history.OpenHistory, logger)
}

func newCheckService() *application.CheckService {
	return application.NewCheckService(newDetectService(true), gitinfo.New(), cache.New(), scanner.NewMatcher, logger)
}

func newHookService() *application.HookService {
	return application.NewHookService(newDetectService(false), gitinfo.New(), scanner.NewMatcher, logger)
}
