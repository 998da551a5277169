// Package catalog_repo provides PostgreSQL access to reference catalogs.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sbreport/internal/core/apperror"
	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/storage/postgres"
)

const itemsTable = "items"

// ItemRepo reads item tracking flags. It implements reports.ItemLookup.
type ItemRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ItemTrackingQuery selects the tracking flags of one item.
func (r *ItemRepo) ItemTrackingQuery(itemCode string) squirrel.SelectBuilder {
	return r.builder.
		Select("name AS item_code", "has_serial_no", "has_batch_no").
		From(itemsTable).
		Where(squirrel.Eq{"name": itemCode})
}

// GetItemTracking returns the tracking flags of itemCode, or an apperror
// NotFound when no such item exists.
func (r *ItemRepo) GetItemTracking(ctx context.Context, itemCode string) (*reports.ItemTracking, error) {
	sql, args, err := r.ItemTrackingQuery(itemCode).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}

	var tracking reports.ItemTracking
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &tracking, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemCode)
		}
		return nil, fmt.Errorf("get item tracking: %w", err)
	}
	return &tracking, nil
}
