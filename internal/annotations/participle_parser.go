package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParticipleParser parses annotation usages such as
// @DeprecationSchedule(id="foo",version=74) with a participle grammar.
type ParticipleParser struct {
	parser *participle.Parser[annotationGrammar]
}

type annotationGrammar struct {
	Name []string           `parser:"'@' @Ident ( '.' @Ident )*"`
	Args []*argumentGrammar `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
}

type argumentGrammar struct {
	Key   string        `parser:"( @Ident '=' )?"`
	Value *valueGrammar `parser:"@@"`
}

type valueGrammar struct {
	String *string         `parser:"  @String"`
	Char   *string         `parser:"| @Char"`
	Number *string         `parser:"| @Number"`
	List   []*valueGrammar `parser:"| '{' ( @@ ( ',' @@ )* )? '}'"`
	Ref    []string        `parser:"| @Ident ( '.' @Ident )*"`
}

// NewParticipleParser creates a new parser using participle
func NewParticipleParser() *ParticipleParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
		{Name: "Number", Pattern: `[-+]?(0[xX][0-9a-fA-F]+|[0-9][0-9_]*(\.[0-9]+)?([eE][-+]?[0-9]+)?)[lLfFdD]?`},
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
		{Name: "Punct", Pattern: `[@(){},.=]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[annotationGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{parser: parser}
}

// Parse parses a single annotation usage
func (p *ParticipleParser) Parse(text string) (*Syntax, error) {
	ast, err := p.parser.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	syntax := &Syntax{Name: strings.Join(ast.Name, ".")}
	for _, arg := range ast.Args {
		key := arg.Key
		if key == "" {
			key = "value"
		}
		syntax.Arguments = append(syntax.Arguments, Argument{Key: key, Value: arg.Value.render(true)})
	}
	return syntax, nil
}

// render returns the literal text of a value; top-level strings lose their quotes.
func (v *valueGrammar) render(top bool) string {
	switch {
	case v.String != nil:
		if top {
			return unquote(*v.String)
		}
		return *v.String
	case v.Char != nil:
		return *v.Char
	case v.Number != nil:
		return *v.Number
	case v.Ref != nil:
		return strings.Join(v.Ref, ".")
	default:
		items := make([]string, len(v.List))
		for i, item := range v.List {
			items[i] = item.render(false)
		}
		return "{" + strings.Join(items, ",") + "}"
	}
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
