package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/rewrite"
)

func doc(relPath, title, body string) content.Document {
	return content.Document{RelPath: relPath, Title: title, Date: "2024-01-01", Body: body}
}

func newTestGraph(t *testing.T, docs []content.Document) *Graph {
	t.Helper()
	root := t.TempDir()
	for _, d := range docs {
		p := filepath.Join(root, filepath.FromSlash(d.RelPath))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(d.Body), 0o644))
	}
	rw := rewrite.New(paths.NewResolver(paths.NewIndex(root)))
	return Collect(docs, rw)
}

func TestCollect_WikiStyleLink_RecordedAsBacklink(t *testing.T) {
	g := newTestGraph(t, []content.Document{
		doc("index.md", "Home", "welcome"),
		doc("notes/first.md", "First", "see [[index]]"),
	})

	require.Equal(t, []Backlink{{Title: "First", Path: "/notes/first"}}, g.Lookup("/"))
}

func TestCollect_LaterDocumentLinkingEarlier_SeenBeforeRender(t *testing.T) {
	// Traversal order must not matter: zz.md links to aa.md.
	g := newTestGraph(t, []content.Document{
		doc("aa.md", "AA", "no links"),
		doc("zz.md", "ZZ", "[[aa]]"),
	})

	require.Equal(t, []Backlink{{Title: "ZZ", Path: "/zz"}}, g.Lookup("/aa"))
}

func TestCollect_DuplicateLinksFromOneDocument_Deduplicated(t *testing.T) {
	g := newTestGraph(t, []content.Document{
		doc("a.md", "A", "target"),
		doc("b.md", "B", "[[a]] and again [[a]] and [x](/a)"),
	})

	require.Len(t, g.Lookup("/a"), 1)
}

func TestCollect_ExternalAndAssetLinks_NotRecorded(t *testing.T) {
	g := newTestGraph(t, []content.Document{
		doc("a.md", "A", "[ext](https://example.com) and ![[pic.png]]"),
		doc("pic.png", "", ""),
	})

	require.Zero(t, g.Len())
}

func TestLookup_UnlinkedTarget_EmptyNotError(t *testing.T) {
	g := newTestGraph(t, []content.Document{doc("a.md", "A", "nothing")})

	require.Empty(t, g.Lookup("/a"))
}

func TestLookup_MultipleSources_SortedByPath(t *testing.T) {
	g := newTestGraph(t, []content.Document{
		doc("target.md", "Target", "x"),
		doc("z.md", "Z", "[[target]]"),
		doc("a.md", "A", "[[target]]"),
	})

	got := g.Lookup("/target")
	require.Equal(t, []Backlink{
		{Title: "A", Path: "/a"},
		{Title: "Z", Path: "/z"},
	}, got)
}

func TestNormalizeTarget_StripsFragmentQueryAndExtension(t *testing.T) {
	require.Equal(t, "/notes/intro", NormalizeTarget("/notes/intro.md"))
	require.Equal(t, "/notes/intro", NormalizeTarget("/notes/intro#section"))
	require.Equal(t, "/notes/intro", NormalizeTarget("/notes/intro?x=1"))
	require.Equal(t, "/", NormalizeTarget("/index"))
	require.Equal(t, "/", NormalizeTarget(""))
}

func TestNormalizeTarget_NestedIndex_MapsToDirectory(t *testing.T) {
	require.Equal(t, "/notes", NormalizeTarget("/notes/index"))
	require.Equal(t, "/notes", NormalizeTarget("/notes/index.md"))
}
