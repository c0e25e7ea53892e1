package site

import (
	"encoding/xml"
	"log/slog"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
	Description string `xml:"description,omitempty"`
}

// dateLayouts are the accepted frontmatter date forms, primary first:
// "24 Jan 2025", "24 January 2025", "2025-01-24", "2025/01/24", "24/01/2025".
// Lenient layouts so unpadded day and month numbers parse too.
var dateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
}

// parseDocDate parses a frontmatter date string for chronological ordering.
func parseDocDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type feedEntry struct {
	doc    content.Document
	date   time.Time
	parsed bool
}

// buildFeed renders the RSS feed over all documents, newest first. Dates are
// parsed in the accepted frontmatter forms and emitted as RFC 2822 pubDate
// values; an unparseable date is kept verbatim and ordered after parsed ones
// rather than failing the feed.
func buildFeed(site config.SiteConfig, docs []content.Document) ([]byte, error) {
	base := strings.TrimSuffix(site.BaseURL, "/")

	entries := make([]feedEntry, 0, len(docs))
	for _, d := range docs {
		t, ok := parseDocDate(d.Date)
		if !ok {
			slog.Warn("Unrecognized document date, feed keeps it verbatim",
				logfields.Document(d.RelPath), slog.String("date", d.Date))
		}
		entries = append(entries, feedEntry{doc: d, date: t, parsed: ok})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.parsed != b.parsed:
			return a.parsed
		case a.parsed && !a.date.Equal(b.date):
			return a.date.After(b.date)
		case !a.parsed && a.doc.Date != b.doc.Date:
			return a.doc.Date > b.doc.Date
		}
		return a.doc.RelPath < b.doc.RelPath
	})

	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		link := base + e.doc.CanonicalPath()
		pubDate := e.doc.Date
		if e.parsed {
			pubDate = e.date.Format(time.RFC1123Z)
		}
		items = append(items, rssItem{
			Title:       e.doc.Title,
			Link:        link,
			GUID:        link,
			PubDate:     pubDate,
			Description: e.doc.Description,
		})
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        base + "/",
			Description: site.Description,
			Items:       items,
		},
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
