// Package lookup answers the autocomplete searches behind the report's
// filter form: voucher types, serial numbers and batch numbers.
package lookup

// BundleField is the field a document type must declare to reference a
// serial and batch bundle.
const BundleField = "serial_and_batch_bundle"

// EntryField selects which entry column a voucher-scoped search reads.
type EntryField string

const (
	EntrySerialNo EntryField = "serial_no"
	EntryBatchNo  EntryField = "batch_no"
)

// Filters is the partial filter context sent by the form while typing.
type Filters struct {
	ItemCode    string
	VoucherType string
	VoucherNos  []string
}

// VoucherNoValues returns the non-empty voucher numbers.
func (f Filters) VoucherNoValues() []string {
	out := make([]string, 0, len(f.VoucherNos))
	for _, v := range f.VoucherNos {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SearchRequest is one autocomplete search.
// DocType and SearchField are accepted for compatibility with generic link
// search callers; only DocType is validated.
type SearchRequest struct {
	DocType     string
	Text        string
	SearchField string
	Start       int
	PageLen     int
	Filters     Filters
}

// Page returns the pagination window of the request.
func (r SearchRequest) Page() Page {
	return Page{Offset: r.Start, Limit: r.PageLen}
}

// Page is an OFFSET/LIMIT window. Zero or negative values mean unbounded.
type Page struct {
	Offset int
	Limit  int
}
