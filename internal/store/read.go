package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/boostcard/internal/engine"
)

// ErrNotFound is returned when no selection set is stored for a column.
var ErrNotFound = errors.New("store: selection set not found")

// Entry is a stored selection set.
type Entry struct {
	Column     string
	Hash       string
	Revision   int64
	Selections []engine.Fitted
}

// Summary describes a stored selection set without decoding it.
type Summary struct {
	Column   string `json:"column"`
	Hash     string `json:"hash"`
	Revision int64  `json:"revision"`
	Count    int    `json:"count"`
}

// Get loads and recompiles the selection set stored for column.
func (s *Store) Get(ctx context.Context, column string) (Entry, error) {
	var (
		e   Entry
		doc string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT column_name, set_hash, document, revision
		FROM selection_sets
		WHERE column_name = ?
	`, column).Scan(&e.Column, &e.Hash, &doc, &e.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get %q: %w", column, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %q: %w", column, err)
	}

	e.Selections, err = unmarshalSet(doc)
	if err != nil {
		return Entry{}, fmt.Errorf("get %q: %w", column, err)
	}
	return e, nil
}

// List returns a summary of every stored set ordered by column name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name, set_hash, revision, selection_count
		FROM selection_sets
		ORDER BY column_name ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Column, &sum.Hash, &sum.Revision, &sum.Count); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}
