package detect

import (
	"strings"

	"github.com/abdidvp/testguard/internal/domain"
)

const callExpressionKind = "call_expression"

// ExtractAssertions walks the tree in pre-order and returns every call
// expression whose text contains "expect(" or "assert". The match is loose on
// purpose: helpers with "assert" in their name count too, and a chained
// assertion yields both the outer call and the inner expect(...) call.
func ExtractAssertions(root *domain.SyntaxNode) []domain.AssertionSite {
	var sites []domain.AssertionSite
	if root == nil {
		return sites
	}

	stack := []*domain.SyntaxNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Kind == callExpressionKind && isAssertionText(n.Text) {
			sites = append(sites, domain.AssertionSite{Text: n.Text, Line: n.Line})
		}

		// Push in reverse so the first child is visited next.
		for i := len(n.Children) - 1; i >= 0; i-- {
			if c := n.Children[i]; c != nil {
				stack = append(stack, c)
			}
		}
	}
	return sites
}

func isAssertionText(text string) bool {
	return strings.Contains(text, "expect(") || strings.Contains(text, "assert")
}
