package catalog

import (
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// loadSnapshot reads a sqlite dataset snapshot. The authoring pipeline emits
// snapshots as a single papers(id TEXT, doc TEXT) table holding the raw JSON
// documents in collection order; the snapshot is opened read-only.
func loadSnapshot(path string) (*Collection, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer conn.Close()

	rows, err := conn.Query("SELECT doc FROM papers ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer rows.Close()

	var papers []Paper
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		var p Paper
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("parsing snapshot document: %w", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return NewCollection(papers), nil
}
