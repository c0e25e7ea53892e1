// Package graph builds the site-wide backlink graph: a reverse index from
// every linked document to the documents that link to it.
package graph

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/rewrite"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// Backlink identifies one referencing document.
type Backlink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Graph maps a target document's canonical path to the set of documents that
// link to it. Built by one full pass before rendering starts; read-only
// afterwards, so concurrent lookups during rendering are safe.
type Graph struct {
	refs map[string]sets.Set[Backlink]
}

// Collect runs the backlink prepass over every document. It must complete
// before any document is rendered: a document early in traversal order may be
// linked to by a document later in traversal order.
func Collect(docs []content.Document, rw *rewrite.Rewriter) *Graph {
	g := &Graph{refs: make(map[string]sets.Set[Backlink])}
	for _, doc := range docs {
		source := Backlink{Title: doc.Title, Path: doc.CanonicalPath()}
		body := rw.Rewrite(doc.Body, doc.RelPath)
		for _, target := range internalTargets(body) {
			g.insert(target, source)
		}
	}
	return g
}

// Lookup returns the documents linking to the given canonical path, ordered
// by source path. A document nobody links to yields an empty result, not an
// error.
func (g *Graph) Lookup(target string) []Backlink {
	set, ok := g.refs[target]
	if !ok {
		return nil
	}
	out := set.Values()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Len returns the number of distinct link targets.
func (g *Graph) Len() int { return len(g.refs) }

// Targets returns every linked canonical path in sorted order.
func (g *Graph) Targets() []string {
	out := make([]string, 0, len(g.refs))
	for t := range g.refs {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) insert(target string, source Backlink) {
	set, ok := g.refs[target]
	if !ok {
		set = sets.New[Backlink]()
		g.refs[target] = set
	}
	set.Add(source)
}

// internalTargets parses a rewritten body and extracts the canonical paths of
// its internal links. After rewriting, internal links are site-absolute
// document paths; asset, external, and Wikipedia destinations are excluded.
func internalTargets(body string) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader([]byte(body)))

	var targets []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if !strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, paths.StaticPrefix) {
			return gmast.WalkContinue, nil
		}
		targets = append(targets, NormalizeTarget(dest))
		return gmast.WalkContinue, nil
	})
	return targets
}

// NormalizeTarget strips query, fragment, the document extension, and any
// trailing index segment from a link destination, exactly as document-path
// resolution does.
func NormalizeTarget(dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	dest = strings.TrimSuffix(dest, paths.DocExtension)
	if dest == "" || dest == "/index" {
		return "/"
	}
	if strings.HasSuffix(dest, "/index") {
		return strings.TrimSuffix(dest, "/index")
	}
	return dest
}
