package markdown

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
)

func TestHighlightLines_UnknownLanguage_EscapedPlainLines(t *testing.T) {
	lines, err := highlightLines("nosuchlanguage123", "a < b\nc > d\n")
	require.NoError(t, err)
	require.Equal(t, []string{"a &lt; b", "c &gt; d"}, lines)
}

func TestHighlightLines_KnownLanguage_OneFragmentPerLine(t *testing.T) {
	lines, err := highlightLines("go", "package main\n\nvar x = 1\n")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "package")
	require.Empty(t, lines[1])
}

func TestHighlightLines_Output_IsHTMLEscaped(t *testing.T) {
	lines, err := highlightLines("go", "var s = \"<script>\"\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotContains(t, lines[0], "<script>")
}

func TestPlainLines_TrailingNewline_NoEmptyFinalLine(t *testing.T) {
	require.Equal(t, []string{"one", "two"}, plainLines("one\ntwo\n"))
}

func TestPlainLines_EmptyInput_NoLines(t *testing.T) {
	require.Empty(t, plainLines(""))
	require.Empty(t, plainLines("\n"))
}

func TestTokenClass_FallsBackThroughCategories(t *testing.T) {
	// A concrete type with a standard class resolves directly.
	require.Equal(t, "k", tokenClass(chroma.Keyword))
	// Plain text carries no class at all.
	require.Equal(t, "", tokenClass(chroma.Text))
}

func TestHighlightLines_TokenSpans_CarryClasses(t *testing.T) {
	lines, err := highlightLines("go", "func main() {}\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.True(t, strings.Contains(lines[0], `<span class="`), "expected at least one classed token span")
}
