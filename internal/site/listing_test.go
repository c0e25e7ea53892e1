package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

var testSite = config.SiteConfig{Title: "Test Site"}

func TestBuildListings_DirectoryWithoutIndex_GetsListing(t *testing.T) {
	docs := []content.Document{
		{RelPath: "notes/first.md", Title: "First", Date: "2024-01-02"},
		{RelPath: "notes/second.md", Title: "Second", Date: "2024-01-01"},
	}

	listings := buildListings(testSite, docs, nil)
	require.Contains(t, listings, "/notes")

	entries := listings["/notes"].Entries
	require.Len(t, entries, 2)
	// Newest first.
	require.Equal(t, "First", entries[0].Title)
	require.Equal(t, "/notes/first", entries[0].URL)
	require.Equal(t, "Second", entries[1].Title)
}

func TestBuildListings_DirectoryWithIndex_Skipped(t *testing.T) {
	docs := []content.Document{
		{RelPath: "notes/index.md", Title: "Notes", Date: "2024-01-01"},
		{RelPath: "notes/first.md", Title: "First", Date: "2024-01-02"},
	}

	listings := buildListings(testSite, docs, nil)
	require.NotContains(t, listings, "/notes")
}

func TestBuildListings_RootWithoutIndex_UsesSiteTitle(t *testing.T) {
	docs := []content.Document{
		{RelPath: "about.md", Title: "About", Date: "2024-01-01"},
	}

	listings := buildListings(testSite, docs, nil)
	require.Contains(t, listings, "/")
	require.Equal(t, "Test Site", listings["/"].Title)
}

func TestBuildListings_Subdirectories_LinkedFromParent(t *testing.T) {
	docs := []content.Document{
		{RelPath: "index.md", Title: "Home", Date: "2024-01-01"},
		{RelPath: "notes/first.md", Title: "First", Date: "2024-01-01"},
	}

	listings := buildListings(testSite, docs, nil)
	require.NotContains(t, listings, "/")

	require.Contains(t, listings, "/notes")
	require.Len(t, listings["/notes"].Entries, 1)
}

func TestBuildListings_Assets_DatedByModTime(t *testing.T) {
	assets := []asset{{
		RelPath: "files/report.pdf",
		URL:     "/static/files-report.pdf",
		ModTime: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}}

	listings := buildListings(testSite, nil, assets)
	require.Contains(t, listings, "/files")

	entries := listings["/files"].Entries
	require.Len(t, entries, 1)
	require.Equal(t, "report.pdf", entries[0].Title)
	require.Equal(t, "/static/files-report.pdf", entries[0].URL)
	require.Equal(t, "2024-03-15", entries[0].Date)
}

func TestBuildListings_IndexDocument_NotListedAsEntry(t *testing.T) {
	docs := []content.Document{
		{RelPath: "notes/sub/index.md", Title: "Sub", Date: "2024-01-01"},
		{RelPath: "notes/first.md", Title: "First", Date: "2024-01-01"},
	}

	listings := buildListings(testSite, docs, nil)
	entries := listings["/notes"].Entries
	require.Len(t, entries, 2)

	// The subdirectory itself appears; its index document does not.
	var urls []string
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	require.Contains(t, urls, "/notes/sub")
	require.Contains(t, urls, "/notes/first")
}
