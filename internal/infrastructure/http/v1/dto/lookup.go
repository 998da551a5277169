package dto

import "sbreport/internal/domain/lookup"

// DefaultLookupPageLen applies when page_len is absent or zero.
const DefaultLookupPageLen = 20

// LookupRequest is the query of an autocomplete lookup.
type LookupRequest struct {
	DocType     string   `form:"doctype"`
	Txt         string   `form:"txt"`
	SearchField string   `form:"searchfield"`
	Start       int      `form:"start" binding:"min=0"`
	PageLen     int      `form:"page_len" binding:"min=0,max=500"`
	ItemCode    string   `form:"item_code"`
	VoucherType string   `form:"voucher_type"`
	VoucherNos  []string `form:"voucher_no"`
}

// ToSearchRequest converts an already sanitized request.
func (r LookupRequest) ToSearchRequest() lookup.SearchRequest {
	pageLen := r.PageLen
	if pageLen == 0 {
		pageLen = DefaultLookupPageLen
	}
	return lookup.SearchRequest{
		DocType:     r.DocType,
		Text:        r.Txt,
		SearchField: r.SearchField,
		Start:       r.Start,
		PageLen:     pageLen,
		Filters: lookup.Filters{
			ItemCode:    r.ItemCode,
			VoucherType: r.VoucherType,
			VoucherNos:  r.VoucherNos,
		},
	}
}

// LookupResponse wraps lookup tuples.
type LookupResponse struct {
	Results [][]string `json:"results"`
}
