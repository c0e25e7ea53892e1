package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRender_Heading_GetsAnchorID(t *testing.T) {
	res, err := Render("# Hello World\n")
	require.NoError(t, err)
	require.Contains(t, res.HTML, `<h1 id="hello-world">Hello World</h1>`)
}

func TestRender_TOC_DocumentOrderAndLevels(t *testing.T) {
	body := "# Top\n\n## Middle Part\n\ntext\n\n### Deep\n\n## Another\n"
	res, err := Render(body)
	require.NoError(t, err)

	require.Len(t, res.TOC, 4)
	require.Equal(t, TOCEntry{Level: 1, Title: "Top", ID: "top"}, res.TOC[0])
	require.Equal(t, TOCEntry{Level: 2, Title: "Middle Part", ID: "middle-part"}, res.TOC[1])
	require.Equal(t, TOCEntry{Level: 3, Title: "Deep", ID: "deep"}, res.TOC[2])
	require.Equal(t, TOCEntry{Level: 2, Title: "Another", ID: "another"}, res.TOC[3])
}

func TestRender_DuplicateHeadings_DuplicateSlugs(t *testing.T) {
	res, err := Render("## Setup\n\ntext\n\n## Setup\n")
	require.NoError(t, err)
	require.Len(t, res.TOC, 2)
	require.Equal(t, res.TOC[0].ID, res.TOC[1].ID)
}

func TestRender_HeadingAnchors_ParseAsValidHTML(t *testing.T) {
	res, err := Render("# My Heading\n\nsome paragraph text\n")
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(res.HTML))
	require.NoError(t, err)

	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "h1" {
			for _, attr := range n.Attr {
				if attr.Key == "id" && attr.Val == "my-heading" {
					found = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	require.True(t, found, "rendered heading must carry its anchor id")
}

func TestRender_PlainParagraph_Untouched(t *testing.T) {
	res, err := Render("just a paragraph\n")
	require.NoError(t, err)
	require.Contains(t, res.HTML, "<p>just a paragraph</p>")
	require.Empty(t, res.TOC)
}

func TestSlugify_LowercasesAndDashesSpaces(t *testing.T) {
	require.Equal(t, "hello-world", Slugify("Hello World"))
}

func TestSlugify_StripsPunctuation(t *testing.T) {
	require.Equal(t, "whats-new-in-v2", Slugify("What's New: in v2?"))
}

func TestSlugify_KeepsExistingDashes(t *testing.T) {
	require.Equal(t, "pre-built-binaries", Slugify("Pre-built Binaries"))
}

func TestSlugify_TrimsSurroundingSpace(t *testing.T) {
	require.Equal(t, "padded", Slugify("  Padded  "))
}
