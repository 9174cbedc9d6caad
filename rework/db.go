package rework

import (
	"fmt"
	"os"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const inventorySchema = `
CREATE TABLE pages (
	id     TEXT NOT NULL PRIMARY KEY,
	source TEXT NOT NULL,
	title  TEXT NOT NULL
);
CREATE TABLE refs (
	page_id   TEXT NOT NULL REFERENCES pages(id),
	seq       INTEGER NOT NULL,
	element   TEXT NOT NULL,
	attribute TEXT NOT NULL,
	value     TEXT NOT NULL,
	kind      TEXT NOT NULL,
	mediatype TEXT NOT NULL DEFAULT '',
	note      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (page_id, seq)
);
`

// writeDatabase stores the inventory as a SQLite database. An existing file
// is replaced whole, leftovers of an older inventory would make this one
// lie.
func writeDatabase(path string, inv *Inventory) (err error) {
	if _, serr := os.Stat(path); serr == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("unable to replace database file: %w", err)
		}
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("unable to create database: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	defer sqlitex.Save(conn)(&err)

	if err = sqlitex.ExecScript(conn, inventorySchema); err != nil {
		return fmt.Errorf("unable to create inventory schema: %w", err)
	}

	for _, page := range inv.Pages {
		if err = sqlitex.Execute(conn,
			`INSERT INTO pages (id, source, title) VALUES (?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{page.ID, page.SrcName, page.Title}}); err != nil {
			return fmt.Errorf("unable to store page row: %w", err)
		}
		for i, r := range page.Refs {
			if err = sqlitex.Execute(conn,
				`INSERT INTO refs (page_id, seq, element, attribute, value, kind, mediatype, note)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{page.ID, i, r.Elem, r.Attr, r.Value, r.Kind.String(), r.MediaType, r.Note}}); err != nil {
				return fmt.Errorf("unable to store reference row: %w", err)
			}
		}
	}
	return nil
}
