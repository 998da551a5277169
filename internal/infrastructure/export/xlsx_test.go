package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sbreport/internal/core/types"
	"sbreport/internal/domain/reports"
)

func TestWriteXLSX(t *testing.T) {
	batch := "B-1"
	result := &reports.Result{
		Columns: reports.ShapeColumns(
			reports.Filters{ItemCode: "WIDGET-1", Warehouse: "Stores"},
			&reports.ItemTracking{ItemCode: "WIDGET-1", HasBatchNo: true},
			nil,
		),
		Rows: []reports.Row{
			{
				Company:              "Acme",
				Name:                 "SABB-0001",
				PostingDate:          time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				VoucherType:          "Stock Entry",
				VoucherNo:            "STE-0001",
				BatchNo:              &batch,
				Qty:                  types.MustNumber("5"),
				IncomingRate:         types.MustNumber("10.5"),
				StockValueDifference: types.MustNumber("52.5"),
			},
			{
				Company:     "Acme",
				Name:        "SABB-0002",
				PostingDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				VoucherType: "Delivery Note",
				VoucherNo:   "DN-0001",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Serial and Batch Summary", result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Serial and Batch Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Serial and Batch Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Company", "Serial and Batch Bundle", "Posting Date", "Voucher Type", "Voucher No",
		"Batch No", "Batch ID", "Batch Qty", "Incoming Rate", "Change in Stock Value",
	}, rows[0])
	assert.Equal(t, []string{
		"Acme", "SABB-0001", "2024-01-05", "Stock Entry", "STE-0001",
		"B-1", "", "5", "10.5", "52.5",
	}, rows[1])
	assert.Equal(t, []string{"Acme", "SABB-0002", "2024-01-20", "Delivery Note", "DN-0001"}, rows[2])
}

func TestWriteXLSX_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	result := &reports.Result{Columns: reports.AllColumns(), Rows: []reports.Row{}}
	require.NoError(t, WriteXLSX(&buf, "", result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 14)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "Serien- und Chargenübersicht", sheetName("Serien- und Chargenübersicht"))
	assert.Len(t, []rune(sheetName("A very long sheet name that exceeds the limit")), 31)
}
