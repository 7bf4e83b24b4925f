package export

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteSchema holds the settled graph in three tables. Positions are
// stored so a client can draw the graph without running the simulation.
const sqliteSchema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE nodes (
	id           TEXT PRIMARY KEY,
	image        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	rel_size     REAL NOT NULL,
	rel_distance REAL NOT NULL,
	depth        INTEGER NOT NULL,
	x            REAL NOT NULL,
	y            REAL NOT NULL,
	radius       REAL NOT NULL
);

CREATE TABLE links (
	source TEXT NOT NULL REFERENCES nodes(id),
	target TEXT NOT NULL REFERENCES nodes(id),
	PRIMARY KEY (source, target)
);

CREATE INDEX idx_nodes_depth ON nodes(depth);
`

func (e *Exporter) writeSQLite(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := map[string]string{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"title":        e.opts.Title,
		"width":        fmt.Sprint(e.opts.Width),
		"height":       fmt.Sprint(e.opts.Height),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (id, image, description, rel_size, rel_distance, depth, x, y, radius)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	unit := e.v.Config().CircleRadiusUnit
	for _, n := range e.nodes {
		if _, err := nodeStmt.Exec(
			n.ID, n.Image, n.Description,
			n.RelSize, n.RelDistance, n.Depth,
			n.Pos.X, n.Pos.Y, n.Radius(unit),
		); err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}

	linkStmt, err := tx.Prepare(`INSERT INTO links (source, target) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer linkStmt.Close()

	for _, l := range e.links {
		if _, err := linkStmt.Exec(l.Source.ID, l.Target.ID); err != nil {
			return fmt.Errorf("insert link %s: %w", l, err)
		}
	}

	return tx.Commit()
}
