package handlers

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"sbreport/internal/core/apperror"
	"sbreport/internal/infrastructure/http/v1/dto"
)

// MaxSearchTextLen caps the search text, in runes.
const MaxSearchTextLen = 140

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SanitizeSearchText normalizes free text typed into a lookup: NFC form,
// control characters removed, surrounding space trimmed, length capped.
func SanitizeSearchText(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	if runes := []rune(s); len(runes) > MaxSearchTextLen {
		s = strings.TrimSpace(string(runes[:MaxSearchTextLen]))
	}
	return s
}

// sanitizeValue trims and strips control characters from a filter value.
func sanitizeValue(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))
}

// SanitizeLookupRequest cleans req in place and rejects values that cannot
// be searched safely.
func SanitizeLookupRequest(req *dto.LookupRequest) error {
	req.DocType = sanitizeValue(req.DocType)
	if req.DocType == "" {
		return apperror.NewInvalidInput("doctype", "doctype is required")
	}

	req.SearchField = sanitizeValue(req.SearchField)
	if req.SearchField != "" && !identifierRe.MatchString(req.SearchField) {
		return apperror.NewInvalidInput("searchfield", "searchfield must be a field name").
			WithDetail("value", req.SearchField)
	}

	req.Txt = SanitizeSearchText(req.Txt)
	req.ItemCode = sanitizeValue(req.ItemCode)
	req.VoucherType = sanitizeValue(req.VoucherType)

	vouchers := make([]string, 0, len(req.VoucherNos))
	for _, v := range req.VoucherNos {
		if v = sanitizeValue(v); v != "" {
			vouchers = append(vouchers, v)
		}
	}
	req.VoucherNos = vouchers
	return nil
}
