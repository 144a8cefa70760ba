package annotations

import (
	"strings"
	"sync"

	"github.com/toyz/apilint/internal/chunker"
)

var defaultParser = sync.OnceValue(NewParticipleParser)

// Parse parses an annotation usage. Text the grammar rejects, such as
// arguments holding expressions, falls back to splitting the argument list
// on top-level commas, so Parse never fails.
func Parse(text string) *Syntax {
	if syntax, err := defaultParser().Parse(text); err == nil {
		return syntax
	}
	return parseChunks(text)
}

func parseChunks(text string) *Syntax {
	text = strings.TrimSpace(text)
	open := strings.Index(text, "(")
	end := strings.Index(text, ")")

	if open == -1 || end == -1 || end < open {
		return &Syntax{Name: strings.TrimPrefix(text, "@")}
	}

	syntax := &Syntax{Name: strings.TrimPrefix(text[:open], "@")}
	for _, chunk := range chunker.Split(text[open+1:end], chunker.Comma) {
		key, value, found := strings.Cut(chunk, "=")
		if !found {
			key, value = "value", chunk
		}
		syntax.Arguments = append(syntax.Arguments, Argument{
			Key:   strings.TrimSpace(key),
			Value: unquote(strings.TrimSpace(value)),
		})
	}
	return syntax
}
