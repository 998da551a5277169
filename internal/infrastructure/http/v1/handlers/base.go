// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sbreport/internal/core/apperror"
	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/i18n"
)

// defaultLanguage is reported when translations are off.
const defaultLanguage = "en"

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	translations *i18n.Catalog
}

// NewBaseHandler creates a base handler. translations may be nil, in which
// case labels are served untranslated.
func NewBaseHandler(translations *i18n.Catalog) *BaseHandler {
	return &BaseHandler{translations: translations}
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers err on the Gin context and aborts the request.
// The response is rendered by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Translator returns the translator for the request's Accept-Language, or
// nil when translations are off. It sets Content-Language accordingly.
func (h *BaseHandler) Translator(c *gin.Context) *i18n.Translator {
	if h.translations == nil {
		return nil
	}
	tr := h.translations.ForAcceptLanguage(c.GetHeader("Accept-Language"))
	c.Header("Content-Language", tr.Language())
	return tr
}

// ReportTranslator returns the request's translator as a reports.Translator
// and its language. With translations off the translator is a nil interface,
// never a typed nil, and the language is English.
func (h *BaseHandler) ReportTranslator(c *gin.Context) (reports.Translator, string) {
	tr := h.Translator(c)
	if tr == nil {
		return nil, defaultLanguage
	}
	return tr, tr.Language()
}
