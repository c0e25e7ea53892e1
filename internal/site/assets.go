package site

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
)

// asset is a non-markdown content file discovered during the asset pass.
type asset struct {
	RelPath string // slash-separated path relative to the content root
	URL     string // canonical output URL under /static/
	ModTime time.Time
}

// copyContentAssets copies every non-markdown, non-hidden file from the
// content tree into the flat static output directory, under its sanitized
// name. Returns the copied assets for the listing pass.
func copyContentAssets(contentDir, outDir string) ([]asset, error) {
	staticOut := filepath.Join(outDir, "static")
	if err := os.MkdirAll(staticOut, 0o755); err != nil {
		return nil, err
	}

	var assets []asset
	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("Skipping unreadable entry", logfields.Path(p), logfields.Error(walkErr))
			return nil
		}
		if content.Hidden(d.Name()) && p != contentDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), paths.DocExtension) {
			return nil
		}

		rel, relErr := filepath.Rel(contentDir, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		dst := filepath.Join(staticOut, paths.SanitizeName(rel))
		if err := copyFile(p, dst); err != nil {
			return err
		}

		info, infoErr := d.Info()
		mod := time.Time{}
		if infoErr == nil {
			mod = info.ModTime()
		}
		assets = append(assets, asset{
			RelPath: rel,
			URL:     paths.StaticPrefix + paths.SanitizeName(rel),
			ModTime: mod,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// copySiteStatic copies the site-level static directory verbatim into the
// output root, preserving relative paths. A missing directory is fine.
func copySiteStatic(staticDir, outDir string) error {
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		return copyFile(p, filepath.Join(outDir, rel))
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
