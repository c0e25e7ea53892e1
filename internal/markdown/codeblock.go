package markdown

import (
	"bytes"
	"fmt"
	gohtml "html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// fenceInfo is the parsed form of a fence info string, e.g.
// `rust title=main.rs del={2} add={4-5} {7}`.
type fenceInfo struct {
	Language    string
	Filename    string
	annotations lineAnnotations
}

func parseFenceInfo(info string) fenceInfo {
	fi := fenceInfo{annotations: parseAnnotations(info)}
	fields := strings.Fields(info)
	if len(fields) > 0 {
		fi.Language = fields[0]
	}
	for _, f := range fields {
		if v, ok := strings.CutPrefix(f, "title="); ok {
			fi.Filename = trimQuotes(v)
			break
		}
	}
	return fi
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func (r *annotatedRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	info := ""
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if _, err := w.WriteString(renderCodeBlock(info, code.String())); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// renderCodeBlock produces the full annotated code block: highlighted (or
// escaped) lines, per-line annotation classes, zero-padded line numbers, and
// a header carrying the language tag and optional filename. A highlighting
// failure degrades to escaped plain text; it never aborts the render.
func renderCodeBlock(info, code string) string {
	fi := parseFenceInfo(info)

	var lines []string
	if fi.Language == "" {
		lines = plainLines(code)
	} else {
		var err error
		lines, err = highlightLines(fi.Language, code)
		if err != nil {
			slog.Warn("Code highlighting failed, falling back to plain text",
				logfields.Language(fi.Language), logfields.Error(err))
			lines = plainLines(code)
		}
	}

	width := 1
	if len(lines) > 0 {
		width = len(strconv.Itoa(len(lines)))
	}

	var body strings.Builder
	for i, line := range lines {
		num := i + 1
		fmt.Fprintf(&body, `<span%s><span class="line-number">%0*d</span><span class="code-line">%s</span></span>`,
			fi.annotations.lineClass(num), width, num, line)
		if i < len(lines)-1 {
			body.WriteByte('\n')
		}
	}

	lang := gohtml.EscapeString(fi.Language)
	if fi.Filename != "" {
		return fmt.Sprintf(`<div class="code-block"><div class="code-header"><span class="code-filename">%s</span> <div><span class="code-language">%s</span> <button class="copy-button" onclick="copyCode(this)">copy</button></div></div><pre><code>%s</code></pre></div>`,
			gohtml.EscapeString(fi.Filename), lang, body.String())
	}
	return fmt.Sprintf(`<div class="code-block"><div class="code-header"><div><span class="code-language">%s</span> <button class="copy-button" onclick="copyCode(this)">copy</button></div></div><pre><code>%s</code></pre></div>`,
		lang, body.String())
}
