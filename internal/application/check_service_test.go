package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/testguard/internal/application"
	"github.com/abdidvp/testguard/internal/domain"
)

func TestCheckService_CheckWorktree(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "src/cart.test.ts", strongTest)
	writeFile(t, dir, "src/order.test.ts", strongTest)
	writeFile(t, dir, "src/cart.ts", "export const total = () => 30;\n")
	commitAll(t, dir)

	writeFile(t, dir, "src/cart.test.ts", weakTest)
	writeFile(t, dir, "src/order.test.ts", strongTest+"\n// reviewed\n")
	writeFile(t, dir, "src/cart.ts", "export const total = () => 31;\n")
	writeFile(t, dir, "src/new.test.ts", weakTest)

	reports, err := newCheckService().CheckWorktree(dir)
	require.NoError(t, err)
	require.Len(t, reports, 2, "only modified, tracked test files are checked")

	assert.Equal(t, "src/cart.test.ts", reports[0].File)
	assert.True(t, reports[0].Has(domain.CategoryWeakenedAssertions))
	assert.Equal(t, "src/order.test.ts", reports[1].File)
	assert.True(t, reports[1].Clean())
}

func TestCheckService_CheckWorktree_FromSubdirectory(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "pkg/a.spec.js", strongTest)
	commitAll(t, dir)
	writeFile(t, dir, "pkg/a.spec.js", weakTest)

	reports, err := newCheckService().CheckWorktree(filepath.Join(dir, "pkg"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "pkg/a.spec.js", reports[0].File)
}

func TestCheckService_CheckWorktree_Clean(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "a.test.ts", strongTest)
	commitAll(t, dir)

	reports, err := newCheckService().CheckWorktree(dir)
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestCheckService_CheckWorktree_NotGitRepo(t *testing.T) {
	_, err := newCheckService().CheckWorktree(t.TempDir())
	assert.Error(t, err)
}

func TestCheckService_CheckWorktree_RespectsTestPatterns(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, ".testguard.yaml", "test_patterns:\n  - \"/checks/**.js\"\n")
	writeFile(t, dir, "checks/cart.js", strongTest)
	writeFile(t, dir, "src/cart.test.ts", strongTest)
	commitAll(t, dir)
	writeFile(t, dir, "checks/cart.js", weakTest)
	writeFile(t, dir, "src/cart.test.ts", weakTest)

	reports, err := newCheckService().CheckWorktree(dir)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "checks/cart.js", reports[0].File)
}

func TestCheckService_Baseline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/cart.test.ts", strongTest)
	writeFile(t, dir, "src/order.test.ts", strongTest)
	writeFile(t, dir, "node_modules/x/x.test.js", strongTest)
	svc := newCheckService()

	b, err := svc.SaveBaseline(dir)
	require.NoError(t, err)
	assert.Len(t, b.Files, 2)
	assert.Contains(t, b.Files, "src/cart.test.ts")

	writeFile(t, dir, "src/cart.test.ts", weakTest)
	writeFile(t, dir, "src/added.test.ts", weakTest)
	require.NoError(t, os.Remove(filepath.Join(dir, "src", "order.test.ts")))

	reports, err := svc.CheckBaseline(dir)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "src/cart.test.ts", reports[0].File)
	assert.True(t, reports[0].Has(domain.CategoryWeakenedAssertions))
}

func TestCheckService_BaselineMissing(t *testing.T) {
	_, err := newCheckService().CheckBaseline(t.TempDir())
	assert.ErrorIs(t, err, application.ErrNoBaseline)
}

func TestCheckService_ClearBaseline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.test.ts", strongTest)
	svc := newCheckService()

	_, err := svc.SaveBaseline(dir)
	require.NoError(t, err)
	require.NoError(t, svc.ClearBaseline(dir))

	_, err = svc.CheckBaseline(dir)
	assert.ErrorIs(t, err, application.ErrNoBaseline)
}
