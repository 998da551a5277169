package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"sbreport/internal/domain/lookup"
	"sbreport/internal/infrastructure/http/v1/dto"
)

// LookupSearcher answers the filter form lookups.
type LookupSearcher interface {
	VoucherTypes(ctx context.Context, req lookup.SearchRequest) ([][]string, error)
	SerialNos(ctx context.Context, req lookup.SearchRequest) ([][]string, error)
	BatchNos(ctx context.Context, req lookup.SearchRequest) ([][]string, error)
}

// LookupHandler serves the autocomplete lookups.
type LookupHandler struct {
	*BaseHandler
	service LookupSearcher
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(base *BaseHandler, service LookupSearcher) *LookupHandler {
	return &LookupHandler{BaseHandler: base, service: service}
}

// VoucherTypes handles GET /reports/serial-batch-summary/lookup/voucher-types
func (h *LookupHandler) VoucherTypes(c *gin.Context) {
	h.search(c, h.service.VoucherTypes)
}

// SerialNos handles GET /reports/serial-batch-summary/lookup/serial-nos
func (h *LookupHandler) SerialNos(c *gin.Context) {
	h.search(c, h.service.SerialNos)
}

// BatchNos handles GET /reports/serial-batch-summary/lookup/batch-nos
func (h *LookupHandler) BatchNos(c *gin.Context) {
	h.search(c, h.service.BatchNos)
}

func (h *LookupHandler) search(c *gin.Context, fn func(context.Context, lookup.SearchRequest) ([][]string, error)) {
	var req dto.LookupRequest
	if !h.BindQuery(c, &req) {
		return
	}
	if err := SanitizeLookupRequest(&req); err != nil {
		h.Error(c, err)
		return
	}

	results, err := fn(c.Request.Context(), req.ToSearchRequest())
	if err != nil {
		h.Error(c, err)
		return
	}
	if results == nil {
		results = [][]string{}
	}
	h.OK(c, dto.LookupResponse{Results: results})
}
