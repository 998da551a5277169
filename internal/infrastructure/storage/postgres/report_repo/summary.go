// Package report_repo provides the PostgreSQL implementation of the
// serial and batch summary repository.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/storage/postgres"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var summaryColumns = []string{
	"sbb.company",
	"sbb.name",
	"sbb.posting_date",
	"sbb.voucher_type",
	"sbb.voucher_no",
	"sbb.item_code",
	"sbb.item_name",
	"sbe.warehouse",
	"sbe.serial_no",
	"sbe.batch_no",
	"b.batch_id",
	"sbe.qty",
	"sbe.incoming_rate",
	"sbe.stock_value_difference",
}

// BuildSummaryQuery builds the report query for filters. Only submitted,
// non-cancelled bundles are selected; every filter value is bound.
func BuildSummaryQuery(filters reports.Filters) squirrel.SelectBuilder {
	q := psql.Select(summaryColumns...).
		From("serial_batch_bundles sbb").
		LeftJoin("serial_batch_entries sbe ON sbe.parent = sbb.name AND sbe.parenttype = ?", reports.BundleDocType).
		LeftJoin("batches b ON b.name = sbe.batch_no").
		Where(squirrel.Eq{"sbb.docstatus": 1}).
		Where(squirrel.Eq{"sbb.is_cancelled": false})

	if filters.Company != "" {
		q = q.Where(squirrel.Eq{"sbb.company": filters.Company})
	}
	if filters.VoucherType != "" {
		q = q.Where(squirrel.Eq{"sbb.voucher_type": filters.VoucherType})
	}
	switch vouchers := filters.VoucherNoValues(); len(vouchers) {
	case 0:
	case 1:
		q = q.Where(squirrel.Eq{"sbb.voucher_no": vouchers[0]})
	default:
		q = q.Where(squirrel.Eq{"sbb.voucher_no": vouchers})
	}
	if filters.ItemCode != "" {
		q = q.Where(squirrel.Eq{"sbb.item_code": filters.ItemCode})
	}
	if filters.HasDateRange() {
		q = q.Where("sbb.posting_date BETWEEN ? AND ?", *filters.FromDate, *filters.ToDate)
	}
	if filters.Warehouse != "" {
		q = q.Where(squirrel.Eq{"sbe.warehouse": filters.Warehouse})
	}
	if filters.SerialNo != "" {
		q = q.Where(squirrel.Eq{"sbe.serial_no": filters.SerialNo})
	}
	if filters.BatchNo != "" {
		q = q.Where(squirrel.Eq{"sbe.batch_no": filters.BatchNo})
	}
	if filters.BatchID != "" {
		q = q.Where(squirrel.ILike{"b.batch_id": postgres.ContainsPattern(filters.BatchID)})
	}

	return q.OrderBy("sbb.posting_date ASC")
}

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// FetchSummaryRows runs the summary query in the transaction bound to ctx,
// if any.
func (r *ReportRepo) FetchSummaryRows(ctx context.Context, filters reports.Filters) ([]reports.Row, error) {
	query, args, err := BuildSummaryQuery(filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary query: %w", err)
	}

	var rows []reports.Row
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("serial and batch summary: %w", err)
	}
	return rows, nil
}
