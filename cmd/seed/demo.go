package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sbreport/internal/domain/lookup"
	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/storage/postgres"
	"sbreport/pkg/logger"
)

type itemRow struct {
	Name        string `db:"name"`
	ItemName    string `db:"item_name"`
	HasSerialNo bool   `db:"has_serial_no"`
	HasBatchNo  bool   `db:"has_batch_no"`
}

type batchRow struct {
	Name    string `db:"name"`
	BatchID string `db:"batch_id"`
	Item    string `db:"item"`
}

type serialRow struct {
	Name     string `db:"name"`
	ItemCode string `db:"item_code"`
}

type docFieldRow struct {
	Parent    string  `db:"parent"`
	FieldName string  `db:"fieldname"`
	FieldType string  `db:"fieldtype"`
	Options   *string `db:"options"`
}

type bundleRow struct {
	Name        string    `db:"name"`
	Company     string    `db:"company"`
	PostingDate time.Time `db:"posting_date"`
	VoucherType string    `db:"voucher_type"`
	VoucherNo   string    `db:"voucher_no"`
	ItemCode    string    `db:"item_code"`
	ItemName    string    `db:"item_name"`
	Docstatus   int16     `db:"docstatus"`
	IsCancelled bool      `db:"is_cancelled"`
}

type entryRow struct {
	Parent               string          `db:"parent"`
	ParentType           string          `db:"parenttype"`
	Warehouse            string          `db:"warehouse"`
	SerialNo             *string         `db:"serial_no"`
	BatchNo              *string         `db:"batch_no"`
	Qty                  decimal.Decimal `db:"qty"`
	IncomingRate         decimal.Decimal `db:"incoming_rate"`
	StockValueDifference decimal.Decimal `db:"stock_value_difference"`
}

const (
	companyAcme   = "Acme Manufacturing"
	companyGlobex = "Globex"
	storesWH      = "Stores - AM"
	finishedWH    = "Finished Goods - AM"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ref(s string) *string { return &s }

func entry(bundle, warehouse string, serial, batch *string, qty, rate string) entryRow {
	q := decimal.RequireFromString(qty)
	r := decimal.RequireFromString(rate)
	return entryRow{
		Parent:               bundle,
		ParentType:           reports.BundleDocType,
		Warehouse:            warehouse,
		SerialNo:             serial,
		BatchNo:              batch,
		Qty:                  q,
		IncomingRate:         r,
		StockValueDifference: q.Mul(r),
	}
}

// seedDemoData loads items tracked by batch, by serial and not at all, plus
// submitted, draft and cancelled bundles across two companies.
func seedDemoData(ctx context.Context, inserter *postgres.BatchInserter, log *logger.Logger) error {
	items := []itemRow{
		{Name: "WIDGET-1", ItemName: "Widget", HasBatchNo: true},
		{Name: "SENSOR-9", ItemName: "Pressure sensor", HasSerialNo: true},
		{Name: "KIT-3", ItemName: "Assembly kit", HasSerialNo: true, HasBatchNo: true},
		{Name: "BOLT-M6", ItemName: "Bolt M6"},
	}
	batches := []batchRow{
		{Name: "BATCH-0001", BatchID: "AB-2024-01", Item: "WIDGET-1"},
		{Name: "BATCH-0002", BatchID: "AB-2024-02", Item: "WIDGET-1"},
		{Name: "BATCH-0003", BatchID: "KT-100%", Item: "KIT-3"},
	}
	serials := []serialRow{
		{Name: "SN-0001", ItemCode: "SENSOR-9"},
		{Name: "SN-0002", ItemCode: "SENSOR-9"},
		{Name: "SN-0003", ItemCode: "SENSOR-9"},
		{Name: "KIT-SN-01", ItemCode: "KIT-3"},
	}
	fields := []docFieldRow{
		{Parent: "Stock Entry", FieldName: "items", FieldType: "Table", Options: ref("Stock Entry Detail")},
		{Parent: "Stock Entry Detail", FieldName: lookup.BundleField, FieldType: "Link", Options: ref(reports.BundleDocType)},
		{Parent: "Purchase Receipt", FieldName: "items", FieldType: "Table", Options: ref("Purchase Receipt Item")},
		{Parent: "Purchase Receipt Item", FieldName: lookup.BundleField, FieldType: "Link", Options: ref(reports.BundleDocType)},
		{Parent: "Stock Reconciliation", FieldName: lookup.BundleField, FieldType: "Link", Options: ref(reports.BundleDocType)},
		{Parent: "Sales Invoice", FieldName: "customer", FieldType: "Link", Options: ref("Customer")},
	}
	bundles := []bundleRow{
		{Name: "SABB-0001", Company: companyAcme, PostingDate: day("2024-01-05"), VoucherType: "Purchase Receipt", VoucherNo: "PR-0001", ItemCode: "WIDGET-1", ItemName: "Widget", Docstatus: 1},
		{Name: "SABB-0002", Company: companyAcme, PostingDate: day("2024-01-12"), VoucherType: "Stock Entry", VoucherNo: "STE-0001", ItemCode: "WIDGET-1", ItemName: "Widget", Docstatus: 1},
		{Name: "SABB-0003", Company: companyAcme, PostingDate: day("2024-01-20"), VoucherType: "Purchase Receipt", VoucherNo: "PR-0002", ItemCode: "SENSOR-9", ItemName: "Pressure sensor", Docstatus: 1},
		{Name: "SABB-0004", Company: companyAcme, PostingDate: day("2024-02-02"), VoucherType: "Stock Entry", VoucherNo: "STE-0002", ItemCode: "KIT-3", ItemName: "Assembly kit", Docstatus: 1},
		{Name: "SABB-0005", Company: companyAcme, PostingDate: day("2024-02-10"), VoucherType: "Stock Entry", VoucherNo: "STE-0003", ItemCode: "WIDGET-1", ItemName: "Widget", Docstatus: 0},
		{Name: "SABB-0006", Company: companyAcme, PostingDate: day("2024-02-11"), VoucherType: "Stock Entry", VoucherNo: "STE-0004", ItemCode: "WIDGET-1", ItemName: "Widget", Docstatus: 2, IsCancelled: true},
		{Name: "SABB-0007", Company: companyGlobex, PostingDate: day("2024-01-15"), VoucherType: "Stock Reconciliation", VoucherNo: "SR-0001", ItemCode: "BOLT-M6", ItemName: "Bolt M6", Docstatus: 1},
	}
	entries := []entryRow{
		entry("SABB-0001", storesWH, nil, ref("BATCH-0001"), "10", "2.50"),
		entry("SABB-0001", storesWH, nil, ref("BATCH-0002"), "5", "2.75"),
		entry("SABB-0002", finishedWH, nil, ref("BATCH-0001"), "-4", "2.50"),
		entry("SABB-0003", storesWH, ref("SN-0001"), nil, "1", "120"),
		entry("SABB-0003", storesWH, ref("SN-0002"), nil, "1", "120"),
		entry("SABB-0004", finishedWH, ref("KIT-SN-01"), ref("BATCH-0003"), "1", "45"),
		entry("SABB-0004", finishedWH, nil, ref("BATCH-MISSING"), "2", "45"),
		entry("SABB-0005", storesWH, nil, ref("BATCH-0002"), "3", "2.75"),
		entry("SABB-0006", storesWH, nil, ref("BATCH-0001"), "7", "2.50"),
	}
	// SABB-0007 has no entries and is reported once with empty entry fields.

	steps := []struct {
		table string
		copy  func() (int64, error)
	}{
		{"items", func() (int64, error) { return postgres.CopyStructs(ctx, inserter, "items", items) }},
		{"batches", func() (int64, error) { return postgres.CopyStructs(ctx, inserter, "batches", batches) }},
		{"serial_nos", func() (int64, error) { return postgres.CopyStructs(ctx, inserter, "serial_nos", serials) }},
		{"doc_fields", func() (int64, error) { return postgres.CopyStructs(ctx, inserter, "doc_fields", fields) }},
		{"serial_batch_bundles", func() (int64, error) {
			return postgres.CopyStructs(ctx, inserter, "serial_batch_bundles", bundles)
		}},
		{"serial_batch_entries", func() (int64, error) {
			return postgres.CopyStructs(ctx, inserter, "serial_batch_entries", entries)
		}},
	}

	analyze := make([]postgres.BatchQuery, 0, len(steps))
	for _, step := range steps {
		n, err := step.copy()
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		log.Infow("seeded", "table", step.table, "rows", n)
		analyze = append(analyze, postgres.BatchQuery{SQL: "ANALYZE " + step.table})
	}

	// Refresh planner statistics for the loaded tables.
	if err := inserter.ExecuteBatch(ctx, analyze); err != nil {
		return fmt.Errorf("analyze seeded tables: %w", err)
	}
	return nil
}
