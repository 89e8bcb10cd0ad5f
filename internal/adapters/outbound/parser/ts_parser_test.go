package parser_test

import (
	"sync"
	"testing"

	"github.com/abdidvp/testguard/internal/adapters/outbound/parser"
	"github.com/abdidvp/testguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jestSource = `import { add } from './math';

describe('add', () => {
  it('sums two numbers', () => {
    const result: number = add(2, 3);
    expect(result).toBe(5);
  });
});
`

func collectKinds(n *domain.SyntaxNode, kind string, out *[]*domain.SyntaxNode) {
	if n.Kind == kind {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		collectKinds(c, kind, out)
	}
}

func TestTreeSitterParser_ParsesTypeScript(t *testing.T) {
	root, err := parser.New().Parse(jestSource, "math.test.ts")
	require.NoError(t, err)
	require.NotNil(t, root)

	assert.Equal(t, "program", root.Kind)
	assert.Equal(t, 1, root.Line)
	assert.Equal(t, jestSource, root.Text)
}

func TestTreeSitterParser_CallExpressionsCarryTextAndLine(t *testing.T) {
	root, err := parser.New().Parse(jestSource, "math.test.ts")
	require.NoError(t, err)

	var calls []*domain.SyntaxNode
	collectKinds(root, "call_expression", &calls)

	var found bool
	for _, c := range calls {
		if c.Text == "expect(result).toBe(5)" {
			found = true
			assert.Equal(t, 6, c.Line)
		}
	}
	assert.True(t, found, "should find the chained expect call")
}

func TestTreeSitterParser_ParsesJSX(t *testing.T) {
	src := `it('renders', () => {
  const { getByText } = render(<Greeting name="Ada" />);
  expect(getByText('Hello Ada')).toBeInTheDocument();
});
`
	root, err := parser.New().Parse(src, "greeting.test.jsx")
	require.NoError(t, err)

	var calls []*domain.SyntaxNode
	collectKinds(root, "call_expression", &calls)
	assert.NotEmpty(t, calls)
}

func TestTreeSitterParser_PlainJavaScript(t *testing.T) {
	src := "const assert = require('assert');\nassert.strictEqual(sum(1, 2), 3);\n"
	root, err := parser.New().Parse(src, "sum.test.js")
	require.NoError(t, err)

	var calls []*domain.SyntaxNode
	collectKinds(root, "call_expression", &calls)
	assert.GreaterOrEqual(t, len(calls), 2)
}

func TestTreeSitterParser_InvalidSourceReturnsErrParse(t *testing.T) {
	src := "describe('broken', () => {\n  it('x', () => {\n    expect(1).toBe(1);\n"
	_, err := parser.New().Parse(src, "broken.test.ts")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "broken.test.ts")
}

func TestTreeSitterParser_EmptySource(t *testing.T) {
	root, err := parser.New().Parse("", "empty.test.ts")
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestTreeSitterParser_NameDoesNotChangeTree(t *testing.T) {
	p := parser.New()
	a, err := p.Parse(jestSource, "a.test.js")
	require.NoError(t, err)
	b, err := p.Parse(jestSource, "b.test.tsx")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTreeSitterParser_ConcurrentUse(t *testing.T) {
	p := parser.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root, err := p.Parse(jestSource, "math.test.ts")
			assert.NoError(t, err)
			assert.NotNil(t, root)
		}()
	}
	wg.Wait()
}
