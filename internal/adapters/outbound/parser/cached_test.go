package parser_test

import (
	"errors"
	"testing"

	"github.com/abdidvp/testguard/internal/adapters/outbound/parser"
	"github.com/abdidvp/testguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingParser struct {
	calls int
	err   error
}

func (p *countingParser) Parse(source, name string) (*domain.SyntaxNode, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &domain.SyntaxNode{Kind: "program", Text: source, Line: 1}, nil
}

func TestCachedParser_HitsSkipInnerParser(t *testing.T) {
	inner := &countingParser{}
	c, err := parser.NewCached(inner, 4)
	require.NoError(t, err)

	first, err := c.Parse("expect(a).toBe(1);", "a#old")
	require.NoError(t, err)
	second, err := c.Parse("expect(a).toBe(1);", "a#new")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCachedParser_CachesFailures(t *testing.T) {
	inner := &countingParser{err: errors.New("boom")}
	c, err := parser.NewCached(inner, 4)
	require.NoError(t, err)

	_, err = c.Parse("{", "x")
	require.Error(t, err)
	_, err = c.Parse("{", "x")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedParser_EvictsOldest(t *testing.T) {
	inner := &countingParser{}
	c, err := parser.NewCached(inner, 2)
	require.NoError(t, err)

	for _, src := range []string{"a", "b", "c"} {
		_, err := c.Parse(src, src)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	_, err = c.Parse("a", "a")
	require.NoError(t, err)
	assert.Equal(t, 4, inner.calls, "evicted entry should be parsed again")
}

func TestNewCached_InvalidSize(t *testing.T) {
	_, err := parser.NewCached(&countingParser{}, 0)
	assert.Error(t, err)
}

func TestCachedParser_WrapsTreeSitter(t *testing.T) {
	c, err := parser.NewCached(parser.New(), parser.DefaultCacheSize)
	require.NoError(t, err)

	_, err = c.Parse("it('x', () => {", "bad")
	assert.ErrorIs(t, err, domain.ErrParse)
}
