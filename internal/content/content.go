// Package content loads the document tree: it walks the content root,
// splits frontmatter from Markdown bodies, and validates required metadata.
package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	berrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
)

// Document is a parsed content document.
type Document struct {
	RelPath     string         // slash-separated path relative to the content root
	Title       string         // mandatory frontmatter title
	Date        string         // mandatory frontmatter date
	Description string         // optional frontmatter description
	Fields      map[string]any // full frontmatter map for templates
	Body        string         // Markdown body after the frontmatter block
}

// CanonicalPath returns the document's canonical output path (/path, with
// the root index mapping to /).
func (d Document) CanonicalPath() string {
	return paths.DocPath(d.RelPath)
}

// ParseDocument parses raw document text. Frontmatter errors are fatal for
// the build and carry the document path.
func ParseDocument(relPath string, raw []byte) (Document, error) {
	fm, body, err := SplitFrontmatter(string(raw))
	if err != nil {
		return Document{}, berrors.Wrap(err, berrors.CategoryFrontmatter, berrors.SeverityFatal,
			"failed to parse document").WithContext("path", relPath)
	}
	fields, err := ParseFrontmatter(fm)
	if err != nil {
		return Document{}, berrors.Wrap(err, berrors.CategoryFrontmatter, berrors.SeverityFatal,
			"failed to parse document").WithContext("path", relPath)
	}

	return Document{
		RelPath:     relPath,
		Title:       stringField(fields, "title"),
		Date:        stringField(fields, "date"),
		Description: stringField(fields, "description"),
		Fields:      fields,
		Body:        body,
	}, nil
}

// LoadTree walks the content root and parses every document, in lexical walk
// order. Hidden entries are excluded at every level. Unreadable entries are
// skipped so one bad file cannot abort discovery, but a document that fails
// frontmatter parsing aborts the whole load: an authoring error must not
// silently produce a half-built site.
func LoadTree(root string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("Skipping unreadable entry", logfields.Path(p), logfields.Error(walkErr))
			return nil
		}
		if Hidden(d.Name()) && p != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), paths.DocExtension) {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		raw, readErr := os.ReadFile(p)
		if readErr != nil {
			slog.Warn("Skipping unreadable document", logfields.Path(p), logfields.Error(readErr))
			return nil
		}

		doc, parseErr := ParseDocument(rel, raw)
		if parseErr != nil {
			return parseErr
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Hidden reports whether a file or directory name is excluded from builds.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
