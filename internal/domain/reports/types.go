// Package reports implements the Serial and Batch Summary report: a filtered
// listing of submitted serial/batch bundles joined with their entries and the
// human readable batch ids, plus the column layout shown to the user.
package reports

import (
	"time"

	"sbreport/internal/core/types"
)

// BundleDocType is the document type of a serial and batch bundle.
// Entries reference it through their parenttype column.
const BundleDocType = "Serial and Batch Bundle"

// Filters selects which bundle entries appear in the report.
// Every field is optional; empty strings and nil dates mean "not set".
type Filters struct {
	Company     string
	VoucherType string
	// VoucherNos holds one voucher number (equality) or several (membership).
	VoucherNos []string
	ItemCode   string

	// The posting date range applies only when both ends are set.
	FromDate *time.Time
	ToDate   *time.Time

	Warehouse string
	SerialNo  string
	BatchNo   string

	// BatchID matches any batch whose batch_id contains it, case-insensitively.
	BatchID string
}

// HasDateRange reports whether the posting date filter applies.
func (f Filters) HasDateRange() bool {
	return f.FromDate != nil && f.ToDate != nil
}

// HasVoucherNo reports whether at least one non-empty voucher number is set.
func (f Filters) HasVoucherNo() bool {
	for _, v := range f.VoucherNos {
		if v != "" {
			return true
		}
	}
	return false
}

// VoucherNoValues returns the non-empty voucher numbers in input order.
func (f Filters) VoucherNoValues() []string {
	out := make([]string, 0, len(f.VoucherNos))
	for _, v := range f.VoucherNos {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Row is one (bundle, entry, batch) tuple. Entry and batch fields are nil
// when the bundle has no entries or the entry's batch is unknown.
type Row struct {
	Company     string    `db:"company" json:"company"`
	Name        string    `db:"name" json:"name"`
	PostingDate time.Time `db:"posting_date" json:"posting_date"`
	VoucherType string    `db:"voucher_type" json:"voucher_type"`
	VoucherNo   string    `db:"voucher_no" json:"voucher_no"`
	ItemCode    string    `db:"item_code" json:"item_code"`
	ItemName    *string   `db:"item_name" json:"item_name"`

	Warehouse *string `db:"warehouse" json:"warehouse"`
	SerialNo  *string `db:"serial_no" json:"serial_no"`
	BatchNo   *string `db:"batch_no" json:"batch_no"`
	BatchID   *string `db:"batch_id" json:"batch_id"`

	Qty                  types.NullNumber `db:"qty" json:"qty"`
	IncomingRate         types.NullNumber `db:"incoming_rate" json:"incoming_rate"`
	StockValueDifference types.NullNumber `db:"stock_value_difference" json:"stock_value_difference"`
}

// Value returns the row value stored under a column field name, or nil when
// the field is null or unknown.
func (r Row) Value(field string) any {
	switch field {
	case FieldCompany:
		return r.Company
	case FieldName:
		return r.Name
	case FieldPostingDate:
		return r.PostingDate
	case FieldVoucherType:
		return r.VoucherType
	case FieldVoucherNo:
		return r.VoucherNo
	case FieldItemCode:
		return r.ItemCode
	case FieldItemName:
		return deref(r.ItemName)
	case FieldWarehouse:
		return deref(r.Warehouse)
	case FieldSerialNo:
		return deref(r.SerialNo)
	case FieldBatchNo:
		return deref(r.BatchNo)
	case FieldBatchID:
		return deref(r.BatchID)
	case FieldQty:
		return nullDecimal(r.Qty)
	case FieldIncomingRate:
		return nullDecimal(r.IncomingRate)
	case FieldStockValueDifference:
		return nullDecimal(r.StockValueDifference)
	}
	return nil
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullDecimal(n types.NullNumber) any {
	if !n.Valid {
		return nil
	}
	return n.Decimal
}

// ItemTracking tells whether an item is tracked by serial and/or batch numbers.
type ItemTracking struct {
	ItemCode    string `db:"item_code" json:"item_code"`
	HasSerialNo bool   `db:"has_serial_no" json:"has_serial_no"`
	HasBatchNo  bool   `db:"has_batch_no" json:"has_batch_no"`
}

// Result is the report output: the shaped column list and the data rows.
type Result struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}
