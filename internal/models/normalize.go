package models

import (
	"regexp"
	"sort"
	"strings"

	"github.com/toyz/apilint/internal/chunker"
)

var (
	innermostBrackets = regexp.MustCompile(`<[^<>]*>`)

	declarationKeywords = map[string]bool{
		"ctor":          true,
		"method":        true,
		"field":         true,
		"enum_constant": true,
	}

	cosmeticModifiers = map[string]bool{
		"deprecated":   true,
		"synchronized": true,
		"final":        true,
		"volatile":     true,
		"transient":    true,
	}

	modifierOrder = map[string]int{
		"public":    1,
		"protected": 2,
		"private":   3,
		"abstract":  4,
		"default":   5,
		"static":    6,
		"native":    7,
	}
)

// Normalize strips cosmetic differences from a raw declaration so that the
// same member can be recognized across two API versions. It drops
// cosmetic modifiers, bracketed generic text and throws clauses, and emits
// annotations and modifiers in a canonical order.
func Normalize(raw string) string {
	raw = strings.TrimSpace(strings.TrimRight(raw, " {;"))
	if i := strings.Index(raw, " throws "); i >= 0 {
		raw = raw[:i]
	}
	for {
		stripped := innermostBrackets.ReplaceAllString(raw, "")
		if stripped == raw {
			break
		}
		raw = stripped
	}

	var head, annotations, modifiers, rest []string
	for i, tok := range chunker.Split(raw, chunker.Whitespace) {
		switch {
		case i == 0 && declarationKeywords[tok]:
			head = append(head, tok)
		case cosmeticModifiers[tok]:
		case strings.HasPrefix(tok, "@"):
			annotations = append(annotations, tok)
		case modifierOrder[tok] > 0:
			modifiers = append(modifiers, tok)
		default:
			rest = append(rest, tok)
		}
	}

	sort.Strings(annotations)
	sort.SliceStable(modifiers, func(i, j int) bool {
		return modifierOrder[modifiers[i]] < modifierOrder[modifiers[j]]
	})

	out := make([]string, 0, len(head)+len(annotations)+len(modifiers)+len(rest))
	out = append(out, head...)
	out = append(out, annotations...)
	out = append(out, modifiers...)
	out = append(out, rest...)
	return strings.Join(out, " ")
}
