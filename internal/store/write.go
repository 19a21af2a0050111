package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/boostcard/internal/engine"
)

var (
	// ErrEmptyColumn is returned when a column name is empty.
	ErrEmptyColumn = errors.New("store: column name is empty")

	// ErrEmptySet is returned when Put is given no selections. Such a set
	// could not be read back.
	ErrEmptySet = errors.New("store: selection set is empty")
)

// Put stores fs as the selection set for column and returns its content
// hash.
//
// Writing the same content again leaves the row untouched (changed=false).
// Different content replaces the stored set and increments its revision.
// Every selection must be fitted; an unset fill fails with
// engine.ErrNotFitted before anything is written, and an empty set fails
// with ErrEmptySet.
func (s *Store) Put(ctx context.Context, column string, fs []engine.Fitted) (hash string, changed bool, err error) {
	if column == "" {
		return "", false, ErrEmptyColumn
	}
	if len(fs) == 0 {
		return "", false, fmt.Errorf("put %q: %w", column, ErrEmptySet)
	}
	doc, hash, err := marshalSet(fs)
	if err != nil {
		return "", false, fmt.Errorf("put %q: %w", column, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("put %q: begin tx: %w", column, err)
	}
	defer tx.Rollback() // No-op if committed

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT set_hash FROM selection_sets WHERE column_name = ?
	`, column).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return "", false, fmt.Errorf("put %q: select existing: %w", column, err)
	case existing == hash:
		return hash, false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO selection_sets (column_name, set_hash, document, revision, selection_count)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(column_name) DO UPDATE SET
			set_hash = excluded.set_hash,
			document = excluded.document,
			revision = selection_sets.revision + 1,
			selection_count = excluded.selection_count
	`, column, hash, doc, len(fs))
	if err != nil {
		return "", false, fmt.Errorf("put %q: upsert: %w", column, err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("put %q: commit: %w", column, err)
	}

	slog.Debug("catalog put", "column", column, "hash", hash, "count", len(fs))
	return hash, true, nil
}

// Delete removes the selection set for column. It returns ErrNotFound if
// no set is stored under that name.
func (s *Store) Delete(ctx context.Context, column string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM selection_sets WHERE column_name = ?
	`, column)
	if err != nil {
		return fmt.Errorf("delete %q: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: rows affected: %w", column, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", column, ErrNotFound)
	}
	slog.Debug("catalog delete", "column", column)
	return nil
}
