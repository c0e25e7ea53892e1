// Package site orchestrates a full build: content discovery, reference
// rewriting, backlink collection, parallel rendering, asset copying, listing
// pages, theme CSS, and the RSS feed.
package site

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	berrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/graph"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/rewrite"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// Builder runs full site builds for one configuration.
type Builder struct {
	cfg *config.Config
	rec metrics.Recorder
}

// NewBuilder creates a builder. A nil recorder disables metrics.
func NewBuilder(cfg *config.Config, rec metrics.Recorder) *Builder {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Builder{cfg: cfg, rec: rec}
}

// Build runs one complete build into the configured output directory. The
// read-only passes (file index, document load, backlink collection) complete
// before rendering starts, so per-document rendering runs in parallel against
// immutable shared state.
func (b *Builder) Build(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		b.rec.ObserveBuildDuration(time.Since(started))
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailed
		}
		b.rec.IncBuildOutcome(outcome)
	}()

	light, dark, err := b.cfg.Theme.Vars()
	if err != nil {
		return berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "invalid theme configuration")
	}

	outDir := b.cfg.Output.Directory
	if err := prepareOutput(outDir); err != nil {
		return err
	}

	docs, err := b.loadStage()
	if err != nil {
		return err
	}

	assets, err := b.assetStage(outDir)
	if err != nil {
		return err
	}

	if err := checkNamingConflicts(docs, assets); err != nil {
		return err
	}

	index := paths.NewIndex(b.cfg.Content.Dir)
	rw := rewrite.New(paths.NewResolver(index))

	backlinks := b.graphStage(docs, rw)

	tmpl, err := loadTemplates(b.cfg.Content.TemplatesDir)
	if err != nil {
		return berrors.Wrap(err, berrors.CategoryTemplate, berrors.SeverityFatal, "failed to load templates")
	}

	if err := b.renderStage(ctx, docs, rw, backlinks, tmpl, outDir); err != nil {
		return err
	}

	if err := b.listingStage(docs, assets, tmpl, outDir); err != nil {
		return err
	}

	if err := copySiteStatic(b.cfg.Content.StaticDir, outDir); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to copy static files")
	}

	if err := os.WriteFile(filepath.Join(outDir, "theme.css"), []byte(themeCSS(light, dark)), 0o644); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to write theme.css")
	}

	feed, err := buildFeed(b.cfg.Site, docs)
	if err != nil {
		return berrors.Wrap(err, berrors.CategoryRender, berrors.SeverityFatal, "failed to build feed")
	}
	if err := os.WriteFile(filepath.Join(outDir, "feed.xml"), feed, 0o644); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to write feed.xml")
	}

	slog.Info("Build complete",
		logfields.Count(len(docs)),
		logfields.DurationMS(float64(time.Since(started).Milliseconds())))
	return nil
}

func (b *Builder) loadStage() ([]content.Document, error) {
	defer b.observeStage("load", time.Now())
	docs, err := content.LoadTree(b.cfg.Content.Dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Documents loaded", logfields.Stage("load"), logfields.Count(len(docs)))
	return docs, nil
}

func (b *Builder) assetStage(outDir string) ([]asset, error) {
	defer b.observeStage("assets", time.Now())
	assets, err := copyContentAssets(b.cfg.Content.Dir, outDir)
	if err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to copy content assets")
	}
	return assets, nil
}

func (b *Builder) graphStage(docs []content.Document, rw *rewrite.Rewriter) *graph.Graph {
	defer b.observeStage("backlinks", time.Now())
	g := graph.Collect(docs, rw)
	slog.Debug("Backlink graph collected", logfields.Stage("backlinks"), logfields.Count(g.Len()))
	return g
}

func (b *Builder) renderStage(ctx context.Context, docs []content.Document, rw *rewrite.Rewriter,
	backlinks *graph.Graph, tmpl *template.Template, outDir string) error {
	defer b.observeStage("render", time.Now())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return b.renderDocument(doc, rw, backlinks, tmpl, outDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.rec.AddDocumentsRendered(len(docs))
	return nil
}

func (b *Builder) renderDocument(doc content.Document, rw *rewrite.Rewriter,
	backlinks *graph.Graph, tmpl *template.Template, outDir string) error {
	body := rw.Rewrite(doc.Body, doc.RelPath)
	res, err := markdown.Render(body)
	if err != nil {
		return berrors.Wrap(err, berrors.CategoryRender, berrors.SeverityFatal,
			"failed to render document").WithContext("path", doc.RelPath)
	}

	data := pageData{
		Site:        b.cfg.Site,
		Title:       doc.Title,
		Date:        doc.Date,
		Description: doc.Description,
		Path:        doc.CanonicalPath(),
		Content:     template.HTML(res.HTML),
		TOC:         res.TOC,
		Backlinks:   backlinks.Lookup(doc.CanonicalPath()),
		Fields:      doc.Fields,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		return berrors.Wrap(err, berrors.CategoryTemplate, berrors.SeverityFatal,
			"failed to execute page template").WithContext("path", doc.RelPath)
	}
	return writePage(outDir, doc.CanonicalPath(), buf.Bytes())
}

func (b *Builder) listingStage(docs []content.Document, assets []asset,
	tmpl *template.Template, outDir string) error {
	defer b.observeStage("listings", time.Now())

	for sitePath, data := range buildListings(b.cfg.Site, docs, assets) {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "listing.html", data); err != nil {
			return berrors.Wrap(err, berrors.CategoryTemplate, berrors.SeverityFatal,
				"failed to execute listing template").WithContext("path", sitePath)
		}
		if err := writePage(outDir, sitePath, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) observeStage(name string, start time.Time) {
	d := time.Since(start)
	b.rec.ObserveStageDuration(name, d)
	slog.Debug("Stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
}

// prepareOutput clears and recreates the output directory so stale pages from
// previous builds never survive.
func prepareOutput(outDir string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to clear output directory")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "failed to create output directory")
	}
	return nil
}

// checkNamingConflicts rejects trees where a document stem collides with a
// sibling directory name: both would claim the same output page.
func checkNamingConflicts(docs []content.Document, assets []asset) error {
	dirs := sets.New[string]()
	for _, d := range docs {
		addWithAncestors(dirs, path.Dir(d.RelPath))
	}
	for _, a := range assets {
		addWithAncestors(dirs, path.Dir(a.RelPath))
	}

	for _, d := range docs {
		s := stem(d.RelPath)
		if s == "index" {
			continue
		}
		candidate := path.Join(path.Dir(d.RelPath), s)
		if dirs.Has(candidate) {
			return berrors.New(berrors.CategoryContent, berrors.SeverityFatal,
				"document name collides with sibling directory").
				WithContext("path", d.RelPath).
				WithContext("directory", candidate)
		}
	}
	return nil
}

// writePage writes HTML for a canonical site path as <path>/index.html.
func writePage(outDir, sitePath string, html []byte) error {
	rel := strings.TrimPrefix(sitePath, "/")
	dst := filepath.Join(outDir, filepath.FromSlash(rel), "index.html")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal,
			"failed to create output directory").WithContext("path", sitePath)
	}
	if err := os.WriteFile(dst, html, 0o644); err != nil {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal,
			"failed to write page").WithContext("path", sitePath)
	}
	return nil
}
