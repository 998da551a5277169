package report_repo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbreport/internal/domain/reports"
)

func toSQL(t *testing.T, f reports.Filters) (string, []any) {
	t.Helper()
	query, args, err := BuildSummaryQuery(f).ToSql()
	require.NoError(t, err)
	return query, args
}

func day(s string) *time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestBuildSummaryQuery_NoFilters(t *testing.T) {
	query, args := toSQL(t, reports.Filters{})

	assert.True(t, strings.HasPrefix(query, "SELECT sbb.company, sbb.name, sbb.posting_date"))
	assert.Contains(t, query, "FROM serial_batch_bundles sbb")
	assert.Contains(t, query, "LEFT JOIN serial_batch_entries sbe ON sbe.parent = sbb.name AND sbe.parenttype = $1")
	assert.Contains(t, query, "LEFT JOIN batches b ON b.name = sbe.batch_no")
	assert.Contains(t, query, "WHERE sbb.docstatus = $2 AND sbb.is_cancelled = $3")
	assert.True(t, strings.HasSuffix(query, "ORDER BY sbb.posting_date ASC"))
	assert.Equal(t, []any{reports.BundleDocType, 1, false}, args)
}

func TestBuildSummaryQuery_BasePredicatesAlwaysPresent(t *testing.T) {
	filterSets := []reports.Filters{
		{},
		{Company: "Acme"},
		{VoucherNos: []string{"A", "B", "C"}},
		{ItemCode: "WIDGET-1", FromDate: day("2024-01-01"), ToDate: day("2024-01-31")},
		{Warehouse: "Stores", SerialNo: "SN-1", BatchNo: "B-1", BatchID: "AB"},
	}

	for _, f := range filterSets {
		query, args := toSQL(t, f)
		assert.Contains(t, query, "sbb.docstatus = $2")
		assert.Contains(t, query, "sbb.is_cancelled = $3")
		assert.Equal(t, 1, args[1])
		assert.Equal(t, false, args[2])
	}
}

func TestBuildSummaryQuery_EqualityFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   reports.Filters
		predicate string
		arg       any
	}{
		{"company", reports.Filters{Company: "Acme"}, "sbb.company = $4", "Acme"},
		{"voucher_type", reports.Filters{VoucherType: "Stock Entry"}, "sbb.voucher_type = $4", "Stock Entry"},
		{"item_code", reports.Filters{ItemCode: "WIDGET-1"}, "sbb.item_code = $4", "WIDGET-1"},
		{"warehouse", reports.Filters{Warehouse: "Stores"}, "sbe.warehouse = $4", "Stores"},
		{"serial_no", reports.Filters{SerialNo: "SN-1"}, "sbe.serial_no = $4", "SN-1"},
		{"batch_no", reports.Filters{BatchNo: "B-1"}, "sbe.batch_no = $4", "B-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := toSQL(t, tt.filters)
			assert.Contains(t, query, tt.predicate)
			require.Len(t, args, 4)
			assert.Equal(t, tt.arg, args[3])
		})
	}
}

func TestBuildSummaryQuery_VoucherNo(t *testing.T) {
	t.Run("single value is equality", func(t *testing.T) {
		query, args := toSQL(t, reports.Filters{VoucherNos: []string{"STE-0001"}})
		assert.Contains(t, query, "sbb.voucher_no = $4")
		assert.NotContains(t, query, " IN ")
		assert.Equal(t, "STE-0001", args[3])
	})

	t.Run("several values are membership", func(t *testing.T) {
		query, args := toSQL(t, reports.Filters{VoucherNos: []string{"STE-0001", "STE-0002", "DN-0001"}})
		assert.Contains(t, query, "sbb.voucher_no IN ($4,$5,$6)")
		assert.Equal(t, []any{"STE-0001", "STE-0002", "DN-0001"}, args[3:])
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		query, args := toSQL(t, reports.Filters{VoucherNos: []string{"", ""}})
		assert.NotContains(t, query, "sbb.voucher_no =")
		assert.NotContains(t, query, "sbb.voucher_no IN")
		assert.Len(t, args, 3, "only the join and base predicate args")
	})
}

func TestBuildSummaryQuery_DateRange(t *testing.T) {
	noDates, noArgs := toSQL(t, reports.Filters{Company: "Acme"})

	fromOnly, fromArgs := toSQL(t, reports.Filters{Company: "Acme", FromDate: day("2024-01-01")})
	assert.Equal(t, noDates, fromOnly)
	assert.Equal(t, noArgs, fromArgs)

	toOnly, toArgs := toSQL(t, reports.Filters{Company: "Acme", ToDate: day("2024-01-31")})
	assert.Equal(t, noDates, toOnly)
	assert.Equal(t, noArgs, toArgs)

	both, bothArgs := toSQL(t, reports.Filters{FromDate: day("2024-01-01"), ToDate: day("2024-01-31")})
	assert.Contains(t, both, "sbb.posting_date BETWEEN $4 AND $5")
	assert.Equal(t, *day("2024-01-01"), bothArgs[3])
	assert.Equal(t, *day("2024-01-31"), bothArgs[4])
}

func TestBuildSummaryQuery_BatchIDIsCaseInsensitiveSubstring(t *testing.T) {
	query, args := toSQL(t, reports.Filters{BatchID: "AB"})
	assert.Contains(t, query, "b.batch_id ILIKE $4")
	assert.Equal(t, "%AB%", args[3])

	_, args = toSQL(t, reports.Filters{BatchID: "10%_off"})
	assert.Equal(t, `%10\%\_off%`, args[3])
}

func TestBuildSummaryQuery_ValuesAreNeverInterpolated(t *testing.T) {
	injection := "x' OR '1'='1"
	query, args := toSQL(t, reports.Filters{
		Company:    injection,
		VoucherNos: []string{injection, "STE-1"},
		BatchID:    injection,
	})
	assert.NotContains(t, query, injection)
	assert.Contains(t, args, injection)
}

func TestBuildSummaryQuery_AllFiltersOrder(t *testing.T) {
	query, args := toSQL(t, reports.Filters{
		Company:     "Acme",
		VoucherType: "Stock Entry",
		VoucherNos:  []string{"STE-1"},
		ItemCode:    "WIDGET-1",
		FromDate:    day("2024-01-01"),
		ToDate:      day("2024-01-31"),
		Warehouse:   "Stores",
		SerialNo:    "SN-1",
		BatchNo:     "B-1",
		BatchID:     "AB",
	})

	assert.Contains(t, query, "WHERE sbb.docstatus = $2 AND sbb.is_cancelled = $3 AND sbb.company = $4 AND "+
		"sbb.voucher_type = $5 AND sbb.voucher_no = $6 AND sbb.item_code = $7 AND "+
		"sbb.posting_date BETWEEN $8 AND $9 AND sbe.warehouse = $10 AND sbe.serial_no = $11 AND "+
		"sbe.batch_no = $12 AND b.batch_id ILIKE $13 ORDER BY sbb.posting_date ASC")
	assert.Len(t, args, 13)
}
