package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/abdidvp/testguard/internal/domain"
)

type grammar struct {
	name string
	lang *sitter.Language
}

// grammars are tried in this order regardless of the file name. TypeScript
// accepts most plain JavaScript; TSX and JavaScript pick up JSX files.
var grammars = []grammar{
	{name: "typescript", lang: sitter.NewLanguage(tstypescript.LanguageTypescript())},
	{name: "tsx", lang: sitter.NewLanguage(tstypescript.LanguageTSX())},
	{name: "javascript", lang: sitter.NewLanguage(tsjavascript.Language())},
}

// TreeSitterParser implements domain.SourceParser for JavaScript and
// TypeScript using tree-sitter. Each call uses its own parser, so one value
// may be shared between goroutines.
type TreeSitterParser struct{}

func New() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Parse returns the tree from the first grammar that parses source without
// errors, or an error wrapping domain.ErrParse if none does.
func (p *TreeSitterParser) Parse(source, name string) (*domain.SyntaxNode, error) {
	src := []byte(source)
	for _, g := range grammars {
		root, err := parseWith(g, src, source)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if root != nil {
			return root, nil
		}
	}
	return nil, fmt.Errorf("parsing %s: %w", name, domain.ErrParse)
}

// parseWith returns nil without error when the grammar produced error nodes.
func parseWith(g grammar, src []byte, text string) (*domain.SyntaxNode, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(g.lang); err != nil {
		return nil, fmt.Errorf("loading %s grammar: %w", g.name, err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, nil
	}
	return convert(root, text), nil
}

// convert copies the named nodes of a tree-sitter tree into domain nodes so
// the C tree can be released. Node text is sliced from text, not copied.
func convert(n *sitter.Node, text string) *domain.SyntaxNode {
	start, end := clamp(n.StartByte(), n.EndByte(), len(text))
	out := &domain.SyntaxNode{
		Kind: n.Kind(),
		Text: text[start:end],
		Line: int(n.StartPosition().Row) + 1,
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		out.Children = append(out.Children, convert(child, text))
	}
	return out
}

func clamp(start, end uint, size int) (int, int) {
	s, e := int(start), int(end)
	if e > size {
		e = size
	}
	if s > e {
		s = e
	}
	return s, e
}
