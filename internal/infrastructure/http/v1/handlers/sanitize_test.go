package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbreport/internal/core/apperror"
	"sbreport/internal/infrastructure/http/v1/dto"
)

func TestSanitizeSearchText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "SN-001", want: "SN-001"},
		{name: "trims", in: "  AB \t", want: "AB"},
		{name: "strips control characters", in: "A\x00B\x1bC\n", want: "ABC"},
		{name: "composes to NFC", in: "Cafe\u0301", want: "Caf\u00e9"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSearchText(tt.in))
		})
	}
}

func TestSanitizeSearchText_CapsLength(t *testing.T) {
	got := SanitizeSearchText(strings.Repeat("ä", 500))
	assert.Len(t, []rune(got), MaxSearchTextLen)
}

func TestSanitizeLookupRequest(t *testing.T) {
	t.Run("cleans values", func(t *testing.T) {
		req := dto.LookupRequest{
			DocType:     " Serial No ",
			Txt:         " sn\x00 ",
			SearchField: "name",
			ItemCode:    " WIDGET-1\n",
			VoucherNos:  []string{" STE-1 ", "", "  "},
		}
		require.NoError(t, SanitizeLookupRequest(&req))

		assert.Equal(t, "Serial No", req.DocType)
		assert.Equal(t, "sn", req.Txt)
		assert.Equal(t, "WIDGET-1", req.ItemCode)
		assert.Equal(t, []string{"STE-1"}, req.VoucherNos)
	})

	t.Run("requires doctype", func(t *testing.T) {
		req := dto.LookupRequest{DocType: " \t "}
		err := SanitizeLookupRequest(&req)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "doctype", appErr.Details["field"])
	})

	t.Run("rejects non identifier searchfield", func(t *testing.T) {
		req := dto.LookupRequest{DocType: "Batch", SearchField: "name; DROP TABLE batches"}
		err := SanitizeLookupRequest(&req)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "searchfield", appErr.Details["field"])
	})
}
