package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	berrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func testConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	for rel, body := range files {
		p := filepath.Join(contentDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	cfg := &config.Config{}
	cfg.Site.Title = "Test Site"
	cfg.Content.Dir = contentDir
	cfg.Content.StaticDir = filepath.Join(root, "static")
	cfg.Content.TemplatesDir = filepath.Join(root, "templates")
	cfg.Output.Directory = filepath.Join(root, "dist")
	cfg.Theme.Type = config.ThemePreset
	cfg.Theme.Preset = "catppuccin"
	return cfg
}

func docWith(title, date, body string) string {
	return "---\ntitle: " + title + "\ndate: \"" + date + "\"\n---\n" + body
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_FullSite_AllArtifactsWritten(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md":       docWith("Home", "2024-01-01", "# Welcome\n\nsee [[first]]\n"),
		"notes/first.md": docWith("First Note", "2024-01-02", "back to [[index]]\n"),
		"assets/pic.png": "not really a png",
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	require.FileExists(t, filepath.Join(cfg.Output.Directory, "index.html"))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "notes", "first", "index.html"))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "static", "assets-pic.png"))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "theme.css"))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "feed.xml"))
}

func TestBuild_DocumentPage_ContainsRenderedBodyAndTOC(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md": docWith("Home", "2024-01-01", "# First Section\n\ntext\n\n## Second Part\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	page := readOutput(t, cfg, "index.html")
	require.Contains(t, page, `<h1 id="first-section">First Section</h1>`)
	require.Contains(t, page, `href="#second-part"`)
}

func TestBuild_Backlinks_RenderedOnTargetPage(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md":       docWith("Home", "2024-01-01", "welcome\n"),
		"notes/first.md": docWith("First Note", "2024-01-02", "go [[index|home]]\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	page := readOutput(t, cfg, "index.html")
	require.Contains(t, page, "Linked from")
	require.Contains(t, page, `<a href="/notes/first">First Note</a>`)
}

func TestBuild_ImageReference_RewrittenToStaticPath(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md":       docWith("Home", "2024-01-01", "![[pic.png|A picture]]\n"),
		"assets/pic.png": "png bytes",
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	page := readOutput(t, cfg, "index.html")
	require.Contains(t, page, `src="/static/assets-pic.png"`)
	require.Contains(t, page, `alt="A picture"`)
}

func TestBuild_DirectoryWithoutIndex_GetsListingPage(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md":       docWith("Home", "2024-01-01", "hi\n"),
		"notes/first.md": docWith("First Note", "2024-01-02", "body\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	listing := readOutput(t, cfg, "notes/index.html")
	require.Contains(t, listing, `<a href="/notes/first">First Note</a>`)
}

func TestBuild_NestedIndexDocument_ServedAtDirectoryURL(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md":       docWith("Home", "2024-01-01", "hi\n"),
		"notes/index.md": docWith("All Notes", "2024-01-01", "# Notes Overview\n"),
		"notes/first.md": docWith("First Note", "2024-01-02", "body\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	// The index document occupies the directory URL; no generated listing
	// may shadow it, and no page may land at /notes/index/.
	page := readOutput(t, cfg, "notes/index.html")
	require.Contains(t, page, `<h1 id="notes-overview">Notes Overview</h1>`)
	require.NoFileExists(t, filepath.Join(cfg.Output.Directory, "notes", "index", "index.html"))
}

func TestBuild_ThemeCSS_CarriesConfiguredVariables(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md": docWith("Home", "2024-01-01", "hi\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	css := readOutput(t, cfg, "theme.css")
	require.Contains(t, css, "--background-color:")
	require.Contains(t, css, "@media (prefers-color-scheme: dark)")
}

func TestBuild_NamingConflict_DocumentStemVsSiblingDirectory(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"notes.md":       docWith("Notes", "2024-01-01", "clash\n"),
		"notes/first.md": docWith("First", "2024-01-02", "body\n"),
	})

	err := NewBuilder(cfg, nil).Build(context.Background())
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryContent))
}

func TestBuild_FrontmatterError_FailsBuild(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"bad.md": "# no frontmatter here\n",
	})

	err := NewBuilder(cfg, nil).Build(context.Background())
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryFrontmatter))
}

func TestBuild_TemplateOverride_Used(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md": docWith("Home", "2024-01-01", "hi\n"),
	})
	require.NoError(t, os.MkdirAll(cfg.Content.TemplatesDir, 0o755))
	override := `<html><body><p>OVERRIDE {{.Title}}</p>{{.Content}}</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Content.TemplatesDir, "page.html"), []byte(override), 0o644))

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))

	page := readOutput(t, cfg, "index.html")
	require.Contains(t, page, "OVERRIDE Home")
}

func TestBuild_SecondBuild_RemovesStaleOutput(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"index.md": docWith("Home", "2024-01-01", "hi\n"),
		"gone.md":  docWith("Gone", "2024-01-01", "temporary\n"),
	})

	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "gone", "index.html"))

	require.NoError(t, os.Remove(filepath.Join(cfg.Content.Dir, "gone.md")))
	require.NoError(t, NewBuilder(cfg, nil).Build(context.Background()))
	require.NoFileExists(t, filepath.Join(cfg.Output.Directory, "gone", "index.html"))
}
