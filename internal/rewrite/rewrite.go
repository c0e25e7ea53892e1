// Package rewrite scans document bodies for embedded images, wiki-style
// internal links, and wiki-namespace links, and rewrites each into its
// canonical output form.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/paths"
)

// RefKind tags which reference syntax a scan match belongs to.
type RefKind int

const (
	// KindEmbedImage is the double-bracket image form ![[path|alt]].
	KindEmbedImage RefKind = iota
	// KindImage is standard Markdown image syntax ![alt](path).
	KindImage
	// KindInternalLink is the double-bracket link form [[target|display]].
	KindInternalLink
	// KindWikiLink is the parenthetical wiki-namespace form [display](wiki:Article).
	KindWikiLink
)

// refPattern matches all four reference syntaxes in a single scan so that a
// replacement is never re-entered by a later pass. Alternation order matters:
// the embed-image branch must precede the link branch so ![[..]] wins over
// [[..]] at the same position.
//
// Group layout: 1,2 embed image (target, alt); 3,4 standard image (alt, path);
// 5,6 internal link (target, display); 7,8 wiki link (display, article).
var refPattern = regexp.MustCompile(
	`!\[\[([^|\]]+)(?:\|([^\]]*))?\]\]` +
		`|!\[([^\]]*)\]\(([^)]+)\)` +
		`|\[\[([^|\]]+)(?:\|([^\]]*))?\]\]` +
		`|\[([^\]]*)\]\(wiki:([^)]+)\)`)

// Rewriter rewrites references using the shared path resolver. It operates
// purely on text and never mutates the file index.
type Rewriter struct {
	resolver *paths.Resolver
}

// New creates a rewriter backed by the given resolver.
func New(resolver *paths.Resolver) *Rewriter {
	return &Rewriter{resolver: resolver}
}

// Rewrite replaces every reference in body with its canonical form. fromDoc
// is the referencing document's content-relative path, used for ./ and ../
// asset resolution. The transformation is idempotent: canonical output
// contains no spans that match a rewritable syntax again.
func (rw *Rewriter) Rewrite(body, fromDoc string) string {
	return refPattern.ReplaceAllStringFunc(body, func(m string) string {
		groups := refPattern.FindStringSubmatch(m)
		switch kindOf(groups) {
		case KindEmbedImage:
			return rw.rewriteEmbedImage(groups[1], groups[2], fromDoc)
		case KindImage:
			return rw.rewriteImage(groups[3], groups[4], fromDoc)
		case KindInternalLink:
			return rw.rewriteInternalLink(m, groups[5], groups[6])
		default:
			return rw.rewriteWikiLink(groups[7], groups[8])
		}
	})
}

// kindOf determines which alternation branch produced a match. The target
// groups of the first three branches cannot be empty, so a non-empty group
// identifies the branch.
func kindOf(groups []string) RefKind {
	switch {
	case groups[1] != "":
		return KindEmbedImage
	case groups[4] != "":
		return KindImage
	case groups[5] != "":
		return KindInternalLink
	default:
		return KindWikiLink
	}
}

// rewriteEmbedImage converts ![[path|alt]] to standard image syntax with a
// canonical asset path. External targets keep their URL but still convert to
// standard syntax.
func (rw *Rewriter) rewriteEmbedImage(target, alt, fromDoc string) string {
	return fmt.Sprintf("![%s](%s)", alt, rw.resolver.ResolveAsset(target, fromDoc))
}

func (rw *Rewriter) rewriteImage(alt, target, fromDoc string) string {
	return fmt.Sprintf("![%s](%s)", alt, rw.resolver.ResolveAsset(target, fromDoc))
}

// rewriteInternalLink handles [[target]] and [[target|display]]. The default
// display text is the target's final path segment with any wiki: prefix
// stripped. wiki: targets route to Wikipedia and keep a visible wiki: marker.
func (rw *Rewriter) rewriteInternalLink(match, target, display string) string {
	if !strings.Contains(match, "|") {
		display = defaultDisplay(target)
	}

	if article, ok := strings.CutPrefix(target, paths.WikiPrefix); ok {
		return fmt.Sprintf("[wiki:%s](%s)", display, paths.WikipediaURL(article))
	}
	if paths.IsExternal(target) {
		return fmt.Sprintf("[%s](%s)", display, target)
	}
	return fmt.Sprintf("[%s](%s)", display, rw.resolver.ResolveDocLink(target))
}

func (rw *Rewriter) rewriteWikiLink(display, article string) string {
	return fmt.Sprintf("[%s](%s)", display, paths.WikipediaURL(article))
}

func defaultDisplay(target string) string {
	t := strings.TrimPrefix(target, paths.WikiPrefix)
	if i := strings.LastIndex(t, "/"); i >= 0 {
		t = t[i+1:]
	}
	return t
}
