package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

// SchemaSQL creates the tables the report reads, their indexes and the
// item change trigger. Every statement is idempotent.
//
//go:embed schema.sql
var SchemaSQL string

// ApplySchema runs SchemaSQL on q. Tables go into the first schema of the
// current search_path.
func ApplySchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
