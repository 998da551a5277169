package reports

import (
	"context"
	"fmt"
)

// Field names shared by rows and columns.
const (
	FieldCompany              = "company"
	FieldName                 = "name"
	FieldPostingDate          = "posting_date"
	FieldVoucherType          = "voucher_type"
	FieldVoucherNo            = "voucher_no"
	FieldItemCode             = "item_code"
	FieldItemName             = "item_name"
	FieldWarehouse            = "warehouse"
	FieldSerialNo             = "serial_no"
	FieldBatchNo              = "batch_no"
	FieldBatchID              = "batch_id"
	FieldQty                  = "qty"
	FieldIncomingRate         = "incoming_rate"
	FieldStockValueDifference = "stock_value_difference"
)

// FieldType is the presentation type of a column.
type FieldType string

const (
	FieldTypeLink        FieldType = "Link"         // Options names the linked entity
	FieldTypeDynamicLink FieldType = "Dynamic Link" // Options names the field holding the entity
	FieldTypeData        FieldType = "Data"
	FieldTypeDate        FieldType = "Date"
	FieldTypeFloat       FieldType = "Float"
)

// Column describes one report column. Width is a display hint only.
type Column struct {
	Label     string    `json:"label"`
	FieldName string    `json:"fieldname"`
	FieldType FieldType `json:"fieldtype"`
	Options   string    `json:"options,omitempty"`
	Width     int       `json:"width"`
}

var (
	leadingColumns = []Column{
		{Label: "Company", FieldName: FieldCompany, FieldType: FieldTypeLink, Options: "Company", Width: 120},
		{Label: "Serial and Batch Bundle", FieldName: FieldName, FieldType: FieldTypeLink, Options: BundleDocType, Width: 150},
		{Label: "Posting Date", FieldName: FieldPostingDate, FieldType: FieldTypeDate, Width: 110},
	}
	voucherColumns = []Column{
		{Label: "Voucher Type", FieldName: FieldVoucherType, FieldType: FieldTypeLink, Options: "DocType", Width: 140},
		{Label: "Voucher No", FieldName: FieldVoucherNo, FieldType: FieldTypeDynamicLink, Options: FieldVoucherType, Width: 180},
	}
	itemColumns = []Column{
		{Label: "Item Code", FieldName: FieldItemCode, FieldType: FieldTypeLink, Options: "Item", Width: 130},
		{Label: "Item Name", FieldName: FieldItemName, FieldType: FieldTypeData, Width: 150},
	}
	warehouseColumn = Column{Label: "Warehouse", FieldName: FieldWarehouse, FieldType: FieldTypeLink, Options: "Warehouse", Width: 160}
	serialColumn    = Column{Label: "Serial No", FieldName: FieldSerialNo, FieldType: FieldTypeData, Width: 160}
	batchColumns    = []Column{
		{Label: "Batch No", FieldName: FieldBatchNo, FieldType: FieldTypeLink, Options: "Batch", Width: 160},
		{Label: "Batch ID", FieldName: FieldBatchID, FieldType: FieldTypeData, Width: 140},
		{Label: "Batch Qty", FieldName: FieldQty, FieldType: FieldTypeFloat, Width: 110},
	}
	trailingColumns = []Column{
		{Label: "Incoming Rate", FieldName: FieldIncomingRate, FieldType: FieldTypeFloat, Width: 120},
		{Label: "Change in Stock Value", FieldName: FieldStockValueDifference, FieldType: FieldTypeFloat, Width: 140},
	}
)

// AllColumns returns every column the report can show, in display order.
func AllColumns() []Column {
	cols := make([]Column, 0, 14)
	cols = append(cols, leadingColumns...)
	cols = append(cols, voucherColumns...)
	cols = append(cols, itemColumns...)
	cols = append(cols, warehouseColumn, serialColumn)
	cols = append(cols, batchColumns...)
	cols = append(cols, trailingColumns...)
	return cols
}

// ResolveItemTracking picks the single item whose tracking flags decide the
// serial/batch columns: the item_code filter, or, under a voucher_type filter,
// the only item code present in rows. It returns nil when no single item
// can be determined.
func ResolveItemTracking(ctx context.Context, filters Filters, rows []Row, items ItemLookup) (*ItemTracking, error) {
	itemCode := filters.ItemCode
	if itemCode == "" && filters.VoucherType != "" {
		itemCode = singleItemCode(rows)
	}
	if itemCode == "" || items == nil {
		return nil, nil
	}

	tracking, err := items.GetItemTracking(ctx, itemCode)
	if err != nil {
		return nil, fmt.Errorf("item tracking for %s: %w", itemCode, err)
	}
	return tracking, nil
}

// singleItemCode returns the item code shared by all rows, or "" when rows
// are empty or span several items.
func singleItemCode(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	code := rows[0].ItemCode
	for _, r := range rows[1:] {
		if r.ItemCode != code {
			return ""
		}
	}
	return code
}

// ShapeColumns builds the column list for filters. Columns constant under a
// filter are hidden; serial and batch columns follow tracking, and both are
// shown when tracking is nil.
func ShapeColumns(filters Filters, tracking *ItemTracking, tr Translator) []Column {
	cols := make([]Column, 0, 14)
	cols = append(cols, leadingColumns...)

	if !filters.HasVoucherNo() {
		cols = append(cols, voucherColumns...)
	}
	if filters.ItemCode == "" {
		cols = append(cols, itemColumns...)
	}
	if filters.Warehouse == "" {
		cols = append(cols, warehouseColumn)
	}
	if tracking == nil || tracking.HasSerialNo {
		cols = append(cols, serialColumn)
	}
	if tracking == nil || tracking.HasBatchNo {
		cols = append(cols, batchColumns...)
	}
	cols = append(cols, trailingColumns...)

	if tr != nil {
		for i := range cols {
			cols[i].Label = tr.Translate(cols[i].Label)
		}
	}
	return cols
}
