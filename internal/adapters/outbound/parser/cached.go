package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abdidvp/testguard/internal/domain"
)

// DefaultCacheSize is the number of parse results CachedParser keeps.
const DefaultCacheSize = 256

type cacheEntry struct {
	tree *domain.SyntaxNode
	err  error
}

// CachedParser wraps a SourceParser with an LRU keyed by content hash.
// Cached trees are shared between callers and must not be modified.
type CachedParser struct {
	inner domain.SourceParser
	cache *lru.Cache[string, cacheEntry]
}

// NewCached wraps inner with a cache holding up to size results.
func NewCached(inner domain.SourceParser, size int) (*CachedParser, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &CachedParser{inner: inner, cache: cache}, nil
}

// Parse returns the cached result for source, parsing on a miss. The name
// is not part of the key since it never changes the tree.
func (c *CachedParser) Parse(source, name string) (*domain.SyntaxNode, error) {
	key := contentKey(source)
	if e, ok := c.cache.Get(key); ok {
		return e.tree, e.err
	}
	tree, err := c.inner.Parse(source, name)
	c.cache.Add(key, cacheEntry{tree: tree, err: err})
	return tree, err
}

// Len returns the number of cached results.
func (c *CachedParser) Len() int { return c.cache.Len() }

func contentKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
