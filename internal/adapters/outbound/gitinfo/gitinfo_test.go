package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abdidvp/testguard/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitInfo_IsGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	assert.False(t, gi.IsGitRepo(dir))

	runGit(t, dir, "init")
	assert.True(t, gi.IsGitRepo(dir))

	sub := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.True(t, gi.IsGitRepo(sub), "subdirectories resolve to the enclosing repo")
}

func TestGitInfo_HeadContent(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "src/cart.test.ts", "expect(total).toBe(3);\n")
	commitAll(t, dir, "add cart test")
	writeFile(t, dir, "src/cart.test.ts", "expect(total).toBeTruthy();\n")

	gi := gitinfo.New()
	content, ok, err := gi.HeadContent(dir, "src/cart.test.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "expect(total).toBe(3);\n", content)

	content, ok, err = gi.HeadContent(dir, filepath.Join(dir, "src", "cart.test.ts"))
	require.NoError(t, err)
	assert.True(t, ok, "absolute paths resolve against the worktree root")
	assert.Equal(t, "expect(total).toBe(3);\n", content)
}

func TestGitInfo_HeadContent_NotTracked(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "README.md", "hi\n")
	commitAll(t, dir, "init")
	writeFile(t, dir, "new.test.ts", "expect(a).toBe(1);\n")

	_, ok, err := gitinfo.New().HeadContent(dir, "new.test.ts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGitInfo_HeadContent_NoCommits(t *testing.T) {
	dir := initRepo(t)
	_, ok, err := gitinfo.New().HeadContent(dir, "a.test.ts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGitInfo_HeadContent_NotGitRepo(t *testing.T) {
	_, _, err := gitinfo.New().HeadContent(t.TempDir(), "a.test.ts")
	assert.Error(t, err)
}

func TestGitInfo_ModifiedFiles(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "a.test.ts", "expect(a).toBe(1);\n")
	writeFile(t, dir, "b.test.ts", "expect(b).toBe(1);\n")
	writeFile(t, dir, "c.test.ts", "expect(c).toBe(1);\n")
	writeFile(t, dir, "lib/d.ts", "export const d = 1;\n")
	commitAll(t, dir, "init")

	writeFile(t, dir, "b.test.ts", "expect(b).toBeTruthy();\n")
	writeFile(t, dir, "lib/d.ts", "export const d = 2;\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "c.test.ts")))
	writeFile(t, dir, "e.test.ts", "expect(e).toBe(1);\n")

	files, err := gitinfo.New().ModifiedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.test.ts", "lib/d.ts"}, files)
}

func TestGitInfo_ModifiedFiles_IncludesStaged(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "a.test.ts", "expect(a).toBe(1);\n")
	commitAll(t, dir, "init")
	writeFile(t, dir, "a.test.ts", "expect(a).toBeDefined();\n")
	runGit(t, dir, "add", "a.test.ts")

	files, err := gitinfo.New().ModifiedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.test.ts"}, files)
}

func TestGitInfo_RepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0755))

	root, err := gitinfo.New().RepoRoot(sub)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	return dir
}

func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", msg)
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
