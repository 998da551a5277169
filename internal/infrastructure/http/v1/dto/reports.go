package dto

import (
	"time"

	"sbreport/internal/core/apperror"
	"sbreport/internal/domain/reports"
)

// SummaryRequest holds the report filters as query parameters.
// voucher_no may be repeated. Dates use the YYYY-MM-DD layout.
// Unknown parameters are ignored.
type SummaryRequest struct {
	Company     string   `form:"company"`
	VoucherType string   `form:"voucher_type"`
	VoucherNos  []string `form:"voucher_no"`
	ItemCode    string   `form:"item_code"`
	FromDate    string   `form:"from_date"`
	ToDate      string   `form:"to_date"`
	Warehouse   string   `form:"warehouse"`
	SerialNo    string   `form:"serial_no"`
	BatchNo     string   `form:"batch_no"`
	BatchID     string   `form:"batch_id"`
}

// ToFilters converts the request into report filters.
func (r SummaryRequest) ToFilters() (reports.Filters, error) {
	from, err := parseDate("from_date", r.FromDate)
	if err != nil {
		return reports.Filters{}, err
	}
	to, err := parseDate("to_date", r.ToDate)
	if err != nil {
		return reports.Filters{}, err
	}

	return reports.Filters{
		Company:     r.Company,
		VoucherType: r.VoucherType,
		VoucherNos:  r.VoucherNos,
		ItemCode:    r.ItemCode,
		FromDate:    from,
		ToDate:      to,
		Warehouse:   r.Warehouse,
		SerialNo:    r.SerialNo,
		BatchNo:     r.BatchNo,
		BatchID:     r.BatchID,
	}, nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, apperror.NewInvalidInput(field, "expected a date in YYYY-MM-DD format").
			WithDetail("value", value)
	}
	return &d, nil
}

// SummaryResponse is the report output.
type SummaryResponse struct {
	Columns  []reports.Column `json:"columns"`
	Rows     []reports.Row    `json:"rows"`
	Language string           `json:"language"`
}

// FromResult converts the report result.
func FromResult(r *reports.Result, language string) SummaryResponse {
	return SummaryResponse{Columns: r.Columns, Rows: r.Rows, Language: language}
}

// FilterFormResponse lists the report's filter inputs.
type FilterFormResponse struct {
	Filters []reports.FilterField `json:"filters"`
}
