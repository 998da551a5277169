package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/export"
	"sbreport/internal/infrastructure/http/v1/dto"
	"sbreport/internal/infrastructure/i18n"
)

const exportFileName = "serial-and-batch-summary.xlsx"

// ReportRunner executes the serial and batch summary.
type ReportRunner interface {
	Execute(ctx context.Context, filters reports.Filters, tr reports.Translator) (*reports.Result, error)
}

// ReportsHandler handles HTTP requests for the serial and batch summary.
type ReportsHandler struct {
	*BaseHandler
	service ReportRunner
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service ReportRunner) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetSummary handles GET /reports/serial-batch-summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	result, _, lang, ok := h.run(c)
	if !ok {
		return
	}
	h.OK(c, dto.FromResult(result, lang))
}

// Export handles GET /reports/serial-batch-summary/export
func (h *ReportsHandler) Export(c *gin.Context) {
	result, tr, _, ok := h.run(c)
	if !ok {
		return
	}

	sheet := i18n.SheetTitle
	if tr != nil {
		sheet = tr.Translate(sheet)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sheet, result); err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Filters handles GET /reports/serial-batch-summary/filters
func (h *ReportsHandler) Filters(c *gin.Context) {
	tr, _ := h.ReportTranslator(c)
	h.OK(c, dto.FilterFormResponse{Filters: reports.FilterForm(tr)})
}

func (h *ReportsHandler) run(c *gin.Context) (*reports.Result, reports.Translator, string, bool) {
	var req dto.SummaryRequest
	if !h.BindQuery(c, &req) {
		return nil, nil, "", false
	}

	filters, err := req.ToFilters()
	if err != nil {
		h.Error(c, err)
		return nil, nil, "", false
	}

	tr, lang := h.ReportTranslator(c)
	result, err := h.service.Execute(c.Request.Context(), filters, tr)
	if err != nil {
		h.Error(c, err)
		return nil, nil, "", false
	}
	return result, tr, lang, true
}
