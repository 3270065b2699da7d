package repository

import (
	"context"
	"database/sql"
	"strings"
)

// partialUpdate applies a column->value merge to a single row and always
// stamps updated_at. Column names must come from a handler-side whitelist,
// never from raw client input. An empty fields map is a no-op so PATCH-style
// requests with nothing to change still succeed.
func partialUpdate(ctx context.Context, db *sql.DB, table string, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for col, v := range fields {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	sets = append(sets, "updated_at=UTC_TIMESTAMP()")
	args = append(args, id)
	_, err := db.ExecContext(ctx,
		"UPDATE "+table+" SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}
