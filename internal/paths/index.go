// Package paths maintains the content file index and turns document-relative
// references into canonical output paths.
package paths

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// DocExtension is the file extension identifying renderable documents.
const DocExtension = ".md"

// Index maps bare file names (and document stems) to every relative path in
// the content tree bearing that name. It is built once on first use and is
// read-only afterwards, so concurrent lookups after construction are safe.
type Index struct {
	root   string
	once   sync.Once
	byName map[string][]string
}

// NewIndex creates an index rooted at the given content directory. The tree
// is not walked until the first lookup.
func NewIndex(root string) *Index {
	return &Index{root: root}
}

// ensure walks the content tree exactly once. Unreadable entries are skipped;
// a single inaccessible file must not abort indexing of the rest of the tree.
func (ix *Index) ensure() {
	ix.once.Do(func() {
		ix.byName = make(map[string][]string)

		err := filepath.WalkDir(ix.root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Debug("Skipping unreadable entry during indexing", logfields.Path(p), logfields.Error(err))
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") && p != ix.root {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(ix.root, p)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			ix.byName[name] = append(ix.byName[name], rel)
			if strings.HasSuffix(name, DocExtension) {
				stem := strings.TrimSuffix(name, DocExtension)
				ix.byName[stem] = append(ix.byName[stem], rel)
			}
			return nil
		})
		if err != nil {
			slog.Warn("Content tree walk ended early", logfields.Path(ix.root), logfields.Error(err))
		}

		// WalkDir visits entries in lexical order already; sorting again keeps
		// ambiguous-name resolution deterministic even if that ever changes.
		for _, matches := range ix.byName {
			sort.Strings(matches)
		}
	})
}

// Lookup returns every relative path whose bare name (or, for documents,
// stem) equals name, in lexicographic order. A nil result means no match.
func (ix *Index) Lookup(name string) []string {
	ix.ensure()
	return ix.byName[name]
}

// LookupDoc returns the best document match for name: the first entry with
// the document extension, falling back to the first match of any kind.
func (ix *Index) LookupDoc(name string) (string, bool) {
	matches := ix.Lookup(name)
	if len(matches) == 0 {
		return "", false
	}
	for _, m := range matches {
		if strings.HasSuffix(m, DocExtension) {
			return m, true
		}
	}
	return matches[0], true
}
