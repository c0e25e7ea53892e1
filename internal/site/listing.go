package site

import (
	"path"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// buildListings produces a listing page for every content directory that has
// no index document of its own. Keys are canonical directory paths ("/" for
// the root, "/notes" for notes/). Documents list with frontmatter metadata,
// subdirectories link to their own pages, assets date by file modtime.
func buildListings(site config.SiteConfig, docs []content.Document, assets []asset) map[string]listingData {
	indexed := sets.New[string]()
	dirs := sets.New[string]()

	for _, d := range docs {
		dir := path.Dir(d.RelPath)
		addWithAncestors(dirs, dir)
		if stem(d.RelPath) == "index" {
			indexed.Add(dir)
		}
	}
	for _, a := range assets {
		addWithAncestors(dirs, path.Dir(a.RelPath))
	}

	listings := make(map[string]listingData)
	for _, dir := range dirs.Values() {
		if indexed.Has(dir) {
			continue
		}
		entries := listingEntries(dir, docs, assets, dirs)
		if len(entries) == 0 {
			continue
		}
		title := path.Base(dir)
		if dir == "." {
			title = site.Title
		}
		listings[dirPath(dir)] = listingData{Site: site, Title: title, Entries: entries}
	}
	return listings
}

func listingEntries(dir string, docs []content.Document, assets []asset, dirs sets.Set[string]) []listingEntry {
	var docEntries, subEntries, assetEntries []listingEntry

	for _, d := range docs {
		if path.Dir(d.RelPath) != dir || stem(d.RelPath) == "index" {
			continue
		}
		docEntries = append(docEntries, listingEntry{
			Title:       d.Title,
			URL:         d.CanonicalPath(),
			Date:        d.Date,
			Description: d.Description,
		})
	}
	for _, sub := range dirs.Values() {
		if sub != "." && path.Dir(sub) == dir {
			subEntries = append(subEntries, listingEntry{Title: path.Base(sub), URL: dirPath(sub)})
		}
	}
	for _, a := range assets {
		if path.Dir(a.RelPath) != dir {
			continue
		}
		entry := listingEntry{Title: path.Base(a.RelPath), URL: a.URL}
		if !a.ModTime.IsZero() {
			entry.Date = a.ModTime.Format("2006-01-02")
		}
		assetEntries = append(assetEntries, entry)
	}

	sort.Slice(docEntries, func(i, j int) bool {
		if docEntries[i].Date != docEntries[j].Date {
			return docEntries[i].Date > docEntries[j].Date
		}
		return docEntries[i].Title < docEntries[j].Title
	})
	sort.Slice(subEntries, func(i, j int) bool { return subEntries[i].Title < subEntries[j].Title })
	sort.Slice(assetEntries, func(i, j int) bool { return assetEntries[i].Title < assetEntries[j].Title })

	entries := append(docEntries, subEntries...)
	return append(entries, assetEntries...)
}

func addWithAncestors(dirs sets.Set[string], dir string) {
	for {
		dirs.Add(dir)
		if dir == "." {
			return
		}
		dir = path.Dir(dir)
	}
}

// dirPath maps a slash-relative directory to its canonical site path.
func dirPath(dir string) string {
	if dir == "." {
		return "/"
	}
	return "/" + dir
}

func stem(relPath string) string {
	base := path.Base(relPath)
	if ext := path.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
