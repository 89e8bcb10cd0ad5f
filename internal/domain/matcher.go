package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// MatcherClass groups assertion matchers by how much they discriminate.
type MatcherClass string

const (
	MatcherEqualityExact       MatcherClass = "equality-exact"
	MatcherEqualityStructural  MatcherClass = "equality-structural"
	MatcherStrictEquality      MatcherClass = "strict-equality"
	MatcherCalledWithArgs      MatcherClass = "called-with-args"
	MatcherThrowsSpecificError MatcherClass = "throws-specific-error"
	MatcherTruthy              MatcherClass = "truthy"
	MatcherFalsy               MatcherClass = "falsy"
	MatcherDefined             MatcherClass = "defined"
	MatcherUndefined           MatcherClass = "undefined"
	MatcherCalledAtAll         MatcherClass = "called-at-all"

	// MatcherUnknown is the class of names missing from the matcher table.
	MatcherUnknown MatcherClass = ""
)

// ValidMatcherClasses enumerates every class a config may assign.
var ValidMatcherClasses = []MatcherClass{
	MatcherEqualityExact, MatcherEqualityStructural, MatcherStrictEquality,
	MatcherCalledWithArgs, MatcherThrowsSpecificError,
	MatcherTruthy, MatcherFalsy, MatcherDefined, MatcherUndefined, MatcherCalledAtAll,
}

// IsStrong reports whether the class pins down a specific value or call.
func (c MatcherClass) IsStrong() bool {
	switch c {
	case MatcherEqualityExact, MatcherEqualityStructural, MatcherStrictEquality,
		MatcherCalledWithArgs, MatcherThrowsSpecificError:
		return true
	}
	return false
}

// IsWeak reports whether the class only checks presence or truthiness.
func (c MatcherClass) IsWeak() bool {
	switch c {
	case MatcherTruthy, MatcherFalsy, MatcherDefined, MatcherUndefined, MatcherCalledAtAll:
		return true
	}
	return false
}

// IsEquality reports whether the class compares against an expected value.
func (c MatcherClass) IsEquality() bool {
	switch c {
	case MatcherEqualityExact, MatcherEqualityStructural, MatcherStrictEquality:
		return true
	}
	return false
}

func isValidMatcherClass(c MatcherClass) bool {
	for _, v := range ValidMatcherClasses {
		if v == c {
			return true
		}
	}
	return false
}

// argumentListRe matches a parenthesised list with at least one
// non-whitespace character inside.
var argumentListRe = regexp.MustCompile(`\([^)]*[^)\s][^)]*\)`)

// HasArgumentList reports whether text contains a non-empty parenthesised form.
func HasArgumentList(text string) bool {
	return argumentListRe.MatchString(text)
}

// MatcherName returns the name of the last method called at paren depth
// zero, which for a fluent assertion chain is the matcher.
func MatcherName(text string) string {
	call, ok := lastChainedCall(text)
	if !ok {
		return ""
	}
	return call.name
}

// ExpectedLiteral returns the trimmed argument text of the matcher call. The
// second result is false when there is no matcher call or it has no arguments.
func ExpectedLiteral(text string) (string, bool) {
	call, ok := lastChainedCall(text)
	if !ok || call.args == "" {
		return "", false
	}
	return call.args, true
}

type chainedCall struct {
	name string
	args string
}

// lastChainedCall scans text for ".name(" at depth zero, skipping string,
// template and regex literals and comments, and returns the last one with its
// argument text.
func lastChainedCall(text string) (chainedCall, bool) {
	var (
		last  chainedCall
		found bool
		depth int
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\'', '"', '`':
			i = skipString(text, i)
		case '/':
			i = skipSlash(text, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth != 0 {
				continue
			}
			name, open := identifierThenParen(text, i+1)
			if open < 0 {
				continue
			}
			end := matchingParen(text, open)
			if end < 0 {
				return last, found
			}
			last = chainedCall{name: name, args: strings.TrimSpace(text[open+1 : end])}
			found = true
			i = end
		}
	}
	return last, found
}

// identifierThenParen reads an identifier starting at i and returns it with
// the index of the '(' that follows it, or -1 if none does.
func identifierThenParen(text string, i int) (string, int) {
	start := i
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	if i == start {
		return "", -1
	}
	name := text[start:i]
	for i < len(text) && unicode.IsSpace(rune(text[i])) {
		i++
	}
	if i >= len(text) || text[i] != '(' {
		return "", -1
	}
	return name, i
}

// matchingParen returns the index of the ')' closing the '(' at open.
func matchingParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '\'', '"', '`':
			i = skipString(text, i)
		case '/':
			i = skipSlash(text, i)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipString returns the index of the quote closing the literal opened at i.
func skipString(text string, i int) int {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '$':
			if quote == '`' && j+1 < len(text) && text[j+1] == '{' {
				j = skipInterpolation(text, j+1)
			}
		case quote:
			return j
		}
	}
	return len(text) - 1
}

// skipInterpolation returns the index of the '}' closing the template
// substitution whose '{' is at open.
func skipInterpolation(text string, open int) int {
	depth := 0
	for j := open; j < len(text); j++ {
		switch text[j] {
		case '\'', '"', '`':
			j = skipString(text, j)
		case '/':
			j = skipSlash(text, j)
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(text) - 1
}

// skipSlash returns the last index of the comment or regex literal starting
// at the '/' at i. A '/' that starts neither is a division and i is returned.
func skipSlash(text string, i int) int {
	if i+1 < len(text) {
		switch text[i+1] {
		case '/':
			if end := strings.IndexByte(text[i:], '\n'); end >= 0 {
				return i + end
			}
			return len(text) - 1
		case '*':
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				return i + 2 + end + 1
			}
			return len(text) - 1
		}
	}
	if !regexAllowed(text, i) {
		return i
	}
	inClass := false
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n':
			return i
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return j
			}
		}
	}
	return i
}

// regexAllowed reports whether a '/' at i begins a regex literal rather than
// a division, judged by the previous significant byte.
func regexAllowed(text string, i int) bool {
	j := i - 1
	for j >= 0 && unicode.IsSpace(rune(text[j])) {
		j--
	}
	if j < 0 {
		return true
	}
	return strings.IndexByte("(,=:[!&|?{};+-*%<>~^", text[j]) >= 0
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
