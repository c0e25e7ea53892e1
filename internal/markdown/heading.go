package markdown

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// annotatedRenderer overrides heading and fenced-code rendering. One instance
// serves one document render; the collected TOC is read afterwards.
//
// Goldmark's renderer walk is the heading state machine: the entering call
// opens the anchored tag, child nodes render in between, and the closing call
// emits the end tag. No event buffering is needed.
type annotatedRenderer struct {
	toc []TOCEntry
}

var _ renderer.NodeRenderer = (*annotatedRenderer)(nil)

func (r *annotatedRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *annotatedRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		title := strings.TrimSpace(nodeText(n, source))
		id := Slugify(title)
		r.toc = append(r.toc, TOCEntry{Level: n.Level, Title: title, ID: id})
		fmt.Fprintf(w, `<h%d id="%s">`, n.Level, id)
	} else {
		fmt.Fprintf(w, "</h%d>\n", n.Level)
	}
	return ast.WalkContinue, nil
}

// Slugify derives a heading anchor: lower-cased, spaces replaced with '-',
// every other character outside letters, digits and '-' removed. Duplicate
// headings yield duplicate slugs; no uniqueness is enforced.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nodeText concatenates the plain text content beneath a node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
