package reports

// Lookup names used by filter fields that autocomplete through the lookup endpoints.
const (
	LookupVoucherTypes = "voucher-types"
	LookupSerialNos    = "serial-nos"
	LookupBatchNos     = "batch-nos"
)

// FilterField describes one input of the report's filter form.
// Required is a form hint; the report itself accepts any subset of filters.
type FilterField struct {
	FieldName   string    `json:"fieldname"`
	Label       string    `json:"label"`
	FieldType   FieldType `json:"fieldtype"`
	Options     string    `json:"options,omitempty"`
	Required    bool      `json:"reqd,omitempty"`
	Lookup      string    `json:"lookup,omitempty"`
	Description string    `json:"description,omitempty"`
}

// FilterFieldTypeMultiSelect is a list input; voucher_no accepts several values.
const FilterFieldTypeMultiSelect FieldType = "MultiSelectList"

// FilterForm returns the filter form definition, labels passed through tr.
func FilterForm(tr Translator) []FilterField {
	fields := []FilterField{
		{FieldName: "company", Label: "Company", FieldType: FieldTypeLink, Options: "Company", Required: true},
		{FieldName: "from_date", Label: "From Date", FieldType: FieldTypeDate, Required: true},
		{FieldName: "to_date", Label: "To Date", FieldType: FieldTypeDate, Required: true},
		{FieldName: "voucher_type", Label: "Voucher Type", FieldType: FieldTypeLink, Options: "DocType", Lookup: LookupVoucherTypes},
		{FieldName: "voucher_no", Label: "Voucher No", FieldType: FilterFieldTypeMultiSelect},
		{FieldName: "item_code", Label: "Item", FieldType: FieldTypeLink, Options: "Item"},
		{FieldName: "warehouse", Label: "Warehouse", FieldType: FieldTypeLink, Options: "Warehouse"},
		{FieldName: "serial_no", Label: "Serial No", FieldType: FieldTypeLink, Options: "Serial No", Lookup: LookupSerialNos},
		{FieldName: "batch_no", Label: "Batch No", FieldType: FieldTypeLink, Options: "Batch", Lookup: LookupBatchNos},
		{FieldName: "batch_id", Label: "Batch ID", FieldType: FieldTypeData, Description: "Partial match, e.g. A123"},
	}

	if tr != nil {
		for i := range fields {
			fields[i].Label = tr.Translate(fields[i].Label)
			if fields[i].Description != "" {
				fields[i].Description = tr.Translate(fields[i].Description)
			}
		}
	}
	return fields
}
