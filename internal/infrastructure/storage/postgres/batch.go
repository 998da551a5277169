package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoTransaction is returned by bulk operations called outside RunInTransaction.
var ErrNoTransaction = errors.New("bulk operation requires transaction context")

// BatchInserter loads rows with the COPY protocol. Much faster than
// individual INSERTs for more than a handful of rows.
type BatchInserter struct {
	txManager *TxManager
}

// NewBatchInserter creates a new batch inserter.
func NewBatchInserter(txManager *TxManager) *BatchInserter {
	return &BatchInserter{txManager: txManager}
}

// CopyFromSlice copies rows into table. Each row matches columns.
func (b *BatchInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.getTx(ctx)
	if tx == nil {
		return 0, ErrNoTransaction
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}

// CopyStructs copies rows into table, taking columns from the "db" tags of T.
func CopyStructs[T any](ctx context.Context, b *BatchInserter, table string, rows []T) (int64, error) {
	values := make([][]any, len(rows))
	for i := range rows {
		values[i] = StructValues(&rows[i])
	}
	return b.CopyFromSlice(ctx, table, ExtractDBColumns[T](), values)
}

// BatchQuery is one statement of a batch.
type BatchQuery struct {
	SQL  string
	Args []any
}

// ExecuteBatch sends queries in a single round-trip inside the current transaction.
func (b *BatchInserter) ExecuteBatch(ctx context.Context, queries []BatchQuery) error {
	tx := b.txManager.getTx(ctx)
	if tx == nil {
		return ErrNoTransaction
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range queries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch statement %d: %w", i, err)
		}
	}
	return nil
}
