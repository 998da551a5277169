// Package lookup_repo provides PostgreSQL searches behind the report's
// filter form lookups.
package lookup_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sbreport/internal/domain/lookup"
	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/storage/postgres"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// distinctValue selects col as a distinct, byte-ordered "value" column.
func distinctValue(col string) squirrel.SelectBuilder {
	return psql.Select(col + ` COLLATE "C" AS value`).Distinct()
}

func paginate(q squirrel.SelectBuilder, page lookup.Page) squirrel.SelectBuilder {
	q = q.OrderBy("value")
	if page.Limit > 0 {
		q = q.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		q = q.Offset(uint64(page.Offset))
	}
	return q
}

// VoucherTypesQuery selects doc types declaring the bundle field directly or
// through a child table field whose options name such a doc type.
func VoucherTypesQuery(text string, page lookup.Page) squirrel.SelectBuilder {
	q := distinctValue("df.parent").
		From("doc_fields df").
		Where(squirrel.Or{
			squirrel.Eq{"df.fieldname": lookup.BundleField},
			squirrel.Expr("df.options IN (SELECT parent FROM doc_fields WHERE fieldname = ?)", lookup.BundleField),
		})
	if text != "" {
		q = q.Where(squirrel.ILike{"df.parent": postgres.ContainsPattern(text)})
	}
	return paginate(q, page)
}

// EntryValuesQuery selects field values of entries under the submitted,
// non-cancelled bundles of voucherNos.
func EntryValuesQuery(field lookup.EntryField, voucherNos []string, text string, page lookup.Page) (squirrel.SelectBuilder, error) {
	var col string
	switch field {
	case lookup.EntrySerialNo:
		col = "sbe.serial_no"
	case lookup.EntryBatchNo:
		col = "sbe.batch_no"
	default:
		return squirrel.SelectBuilder{}, fmt.Errorf("unsupported entry field %q", field)
	}

	q := distinctValue(col).
		From("serial_batch_entries sbe").
		Join("serial_batch_bundles sbb ON sbb.name = sbe.parent").
		Where(squirrel.Eq{"sbe.parenttype": reports.BundleDocType}).
		Where(squirrel.Eq{"sbb.docstatus": 1}).
		Where(squirrel.Eq{"sbb.is_cancelled": false}).
		Where(squirrel.Eq{"sbb.voucher_no": voucherNos})

	if text != "" {
		q = q.Where(squirrel.ILike{col: postgres.ContainsPattern(text)})
	} else {
		q = q.Where(squirrel.NotEq{col: nil}).Where(squirrel.NotEq{col: ""})
	}
	return paginate(q, page), nil
}

// RegistryQuery selects keys of a registry table, optionally scoped by item.
func RegistryQuery(table, itemColumn, itemCode, text string, page lookup.Page) squirrel.SelectBuilder {
	q := distinctValue("r.name").From(table + " r")
	if itemCode != "" {
		q = q.Where(squirrel.Eq{"r." + itemColumn: itemCode})
	}
	if text != "" {
		q = q.Where(squirrel.ILike{"r.name": postgres.ContainsPattern(text)})
	}
	return paginate(q, page)
}

// LookupRepo implements lookup.Repository.
type LookupRepo struct {
	txm *postgres.TxManager
}

// NewLookupRepo creates a new lookup repository.
func NewLookupRepo(txm *postgres.TxManager) *LookupRepo {
	return &LookupRepo{txm: txm}
}

func (r *LookupRepo) ListVoucherTypes(ctx context.Context, text string, page lookup.Page) ([]string, error) {
	return r.selectValues(ctx, "voucher types", VoucherTypesQuery(text, page))
}

func (r *LookupRepo) ListEntryValues(ctx context.Context, field lookup.EntryField, voucherNos []string, text string, page lookup.Page) ([]string, error) {
	q, err := EntryValuesQuery(field, voucherNos, text, page)
	if err != nil {
		return nil, err
	}
	return r.selectValues(ctx, string(field)+" entries", q)
}

func (r *LookupRepo) ListSerialRegistry(ctx context.Context, itemCode, text string, page lookup.Page) ([]string, error) {
	return r.selectValues(ctx, "serial nos", RegistryQuery("serial_nos", "item_code", itemCode, text, page))
}

func (r *LookupRepo) ListBatchRegistry(ctx context.Context, itemCode, text string, page lookup.Page) ([]string, error) {
	return r.selectValues(ctx, "batches", RegistryQuery("batches", "item", itemCode, text, page))
}

func (r *LookupRepo) selectValues(ctx context.Context, what string, q squirrel.SelectBuilder) ([]string, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", what, err)
	}

	values := []string{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &values, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	return values, nil
}
