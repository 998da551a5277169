package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type auditFields struct {
	Docstatus   int  `db:"docstatus"`
	IsCancelled bool `db:"is_cancelled"`
}

type bundleRow struct {
	Name string `db:"name"`
	auditFields
	ItemCode string `db:"item_code"`
	Note     string `db:"-"`
	Untagged string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[bundleRow]()
	assert.Equal(t, []string{"name", "docstatus", "is_cancelled", "item_code"}, cols)

	assert.Equal(t, cols, ExtractDBColumns[*bundleRow](), "pointer types share metadata")
	assert.Empty(t, ExtractDBColumns[int]())
}

func TestStructToMap(t *testing.T) {
	row := bundleRow{
		Name:        "SABB-0001",
		auditFields: auditFields{Docstatus: 1, IsCancelled: false},
		ItemCode:    "WIDGET-1",
		Note:        "skipped",
	}

	m := StructToMap(&row)
	assert.Equal(t, map[string]any{
		"name":         "SABB-0001",
		"docstatus":    1,
		"is_cancelled": false,
		"item_code":    "WIDGET-1",
	}, m)

	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap((*bundleRow)(nil)))
}

func TestStructValues_FollowColumnOrder(t *testing.T) {
	row := bundleRow{Name: "SABB-0002", auditFields: auditFields{Docstatus: 2, IsCancelled: true}, ItemCode: "BOLT"}

	assert.Equal(t, []any{"SABB-0002", 2, true, "BOLT"}, StructValues(row))
}
