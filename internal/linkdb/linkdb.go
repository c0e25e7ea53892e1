// Package linkdb exports the document set and link graph into a SQLite
// database for offline querying.
package linkdb

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/graph"
)

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id    INTEGER PRIMARY KEY,
			path  TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			date  TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_title ON documents(title);`,
		`CREATE TABLE IF NOT EXISTS links (
			id     INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			target TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON links(source);`,
		`CREATE INDEX IF NOT EXISTS idx_links_target ON links(target);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Export writes documents and their resolved internal links to a fresh SQLite
// database at dbPath. Any existing file is replaced so the export always
// reflects exactly one content snapshot.
func Export(dbPath string, docs []content.Document, g *graph.Graph) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := openDBAt(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range docs {
		if _, err := tx.Exec(
			`INSERT INTO documents (path, title, date) VALUES (?, ?, ?)`,
			d.CanonicalPath(), d.Title, d.Date,
		); err != nil {
			return err
		}
	}

	for _, target := range g.Targets() {
		for _, bl := range g.Lookup(target) {
			if _, err := tx.Exec(
				`INSERT INTO links (source, target) VALUES (?, ?)`,
				bl.Path, target,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
