package application_test

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/testguard/internal/adapters/outbound/cache"
	"github.com/abdidvp/testguard/internal/adapters/outbound/config"
	"github.com/abdidvp/testguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/testguard/internal/adapters/outbound/history"
	"github.com/abdidvp/testguard/internal/adapters/outbound/parser"
	"github.com/abdidvp/testguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/testguard/internal/application"
)

func quietLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func newDetectService() *application.DetectService {
	return application.NewDetectService(parser.New(), config.New(), history.OpenHistory, quietLogger())
}

func newCheckService() *application.CheckService {
	return application.NewCheckService(newDetectService(), gitinfo.New(), cache.New(), scanner.NewMatcher, quietLogger())
}

func newHookService() *application.HookService {
	return application.NewHookService(newDetectService(), gitinfo.New(), scanner.NewMatcher, quietLogger())
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	return dir
}

func commitAll(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "snapshot")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}

const (
	strongTest = "describe('cart', () => {\n  it('totals', () => {\n    expect(cart.total()).toBe(30);\n  });\n});\n"
	weakTest   = "describe('cart', () => {\n  it('totals', () => {\n    expect(cart.total()).toBeTruthy();\n  });\n});\n"
)
