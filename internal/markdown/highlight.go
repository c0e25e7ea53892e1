package markdown

import (
	gohtml "html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// highlightLines tokenizes code with the lexer registered for language and
// returns one HTML fragment per source line. Token classes follow chroma's
// standard short class names so theme CSS can target them.
func highlightLines(language, code string) ([]string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		// Unrecognized language tag: identical treatment to "no language".
		return plainLines(code), nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for _, tok := range line {
			val := strings.TrimRight(tok.Value, "\n")
			if val == "" {
				continue
			}
			escaped := gohtml.EscapeString(val)
			if class := tokenClass(tok.Type); class != "" {
				b.WriteString(`<span class="` + class + `">` + escaped + `</span>`)
			} else {
				b.WriteString(escaped)
			}
		}
		out = append(out, b.String())
	}
	// A trailing newline in the source yields one final empty line; drop it to
	// keep line numbering aligned with the author's view of the block.
	if len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

// plainLines HTML-escapes code line by line without highlighting.
func plainLines(code string) []string {
	code = strings.TrimSuffix(code, "\n")
	if code == "" {
		return nil
	}
	raw := strings.Split(code, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = gohtml.EscapeString(strings.TrimSuffix(l, "\r"))
	}
	return out
}

// tokenClass resolves a chroma token type to its standard CSS class,
// falling back through sub-category and category.
func tokenClass(t chroma.TokenType) string {
	if c, ok := chroma.StandardTypes[t]; ok {
		return c
	}
	if c, ok := chroma.StandardTypes[t.SubCategory()]; ok {
		return c
	}
	if c, ok := chroma.StandardTypes[t.Category()]; ok {
		return c
	}
	return ""
}
