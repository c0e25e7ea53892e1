// Package markdown renders document bodies to HTML. Headings are intercepted
// to derive stable anchors and a table of contents; fenced code blocks are
// intercepted to produce line-numbered, annotated, syntax-highlighted HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// TOCEntry is one table-of-contents row, in document order.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	ID    string `json:"id"`
}

// Result is a rendered document body.
type Result struct {
	HTML string
	TOC  []TOCEntry
}

// Render converts a Markdown body (reference rewriting already applied) into
// HTML. Inline $...$ math is left untouched: goldmark passes unknown inline
// syntax through as text.
func Render(body string) (Result, error) {
	ar := &annotatedRenderer{}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(ar, 100),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Result{}, err
	}
	return Result{HTML: buf.String(), TOC: ar.toc}, nil
}
