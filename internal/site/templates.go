package site

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/graph"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// pageData is the template context for a rendered document page.
type pageData struct {
	Site        config.SiteConfig
	Title       string
	Date        string
	Description string
	Path        string
	Content     template.HTML
	TOC         []markdown.TOCEntry
	Backlinks   []graph.Backlink
	Fields      map[string]any
}

// listingData is the template context for a generated directory listing.
type listingData struct {
	Site    config.SiteConfig
	Title   string
	Entries []listingEntry
}

type listingEntry struct {
	Title       string
	URL         string
	Date        string
	Description string
}

// loadTemplates parses the embedded default templates, then overlays any
// same-named templates found in the overrides directory. A missing overrides
// directory is not an error.
func loadTemplates(overrideDir string) (*template.Template, error) {
	tmpl, err := template.ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in templates: %w", err)
	}

	if overrideDir == "" {
		return tmpl, nil
	}
	if _, err := os.Stat(overrideDir); os.IsNotExist(err) {
		return tmpl, nil
	}

	matches, err := filepath.Glob(filepath.Join(overrideDir, "*.html"))
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		tmpl, err = tmpl.ParseFiles(matches...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template overrides: %w", err)
		}
	}
	return tmpl, nil
}
