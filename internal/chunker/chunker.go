// Package chunker splits API dump lines on separators that appear outside
// of generic brackets and parameter lists.
//
// "Map<K, V> get(int a, int b)" split on whitespace yields
// ["Map<K, V>", "get(int a, int b)"].
package chunker

import (
	"regexp"
	"strings"
)

// Separator matches a fixed-width window of text ending at the scan position.
type Separator struct {
	pattern *regexp.Regexp
	width   int
}

// Pattern builds a separator from a regular expression matched against a
// window of width bytes.
func Pattern(expr string, width int) Separator {
	return Separator{
		pattern: regexp.MustCompile("^(?:" + expr + ")"),
		width:   width,
	}
}

// Literal builds a separator matching the exact text s.
func Literal(s string) Separator {
	return Pattern(regexp.QuoteMeta(s), len(s))
}

// Separators used by the model builder.
var (
	Whitespace            = Pattern(`\s`, 1)
	WhitespaceOrSemicolon = Pattern(`[\s;]`, 1)
	Comma                 = Literal(",")
	Ampersand             = Literal("&")
	Extends               = Literal("extends")
	Dot                   = Literal(".")
)

// Split returns the trimmed chunks of line separated by sep at nesting depth zero.
// Unbalanced brackets give unspecified, but never panicking, boundaries.
func Split(line string, sep Separator) []string {
	var chunks []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		var chunk string
		chunk, rest = next(rest, sep)
		chunks = append(chunks, strings.TrimSpace(chunk))
	}
	return chunks
}

func next(s string, sep Separator) (string, string) {
	angle, paren := 0, 0
	for i := 1; i <= len(s); i++ {
		switch s[i-1] {
		case '<':
			angle++
		case '>':
			angle--
		case '(':
			paren++
		case ')':
			paren--
		default:
			if i >= sep.width && angle == 0 && paren == 0 && sep.pattern.MatchString(s[i-sep.width:i]) {
				return s[:i-sep.width], strings.TrimSpace(s[i:])
			}
		}
	}
	return s, ""
}
