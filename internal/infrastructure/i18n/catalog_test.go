package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbreport/internal/domain/reports"
)

func TestCatalog_ForAcceptLanguage(t *testing.T) {
	cat, err := NewCatalog()
	require.NoError(t, err)

	tests := []struct {
		header string
		lang   string
		label  string
	}{
		{header: "", lang: "en", label: "Change in Stock Value"},
		{header: "es-ES,es;q=0.9", lang: "es", label: "Cambio en el valor de inventario"},
		{header: "de", lang: "de", label: "Änderung des Lagerwerts"},
		{header: "fr-FR,de;q=0.5", lang: "de", label: "Änderung des Lagerwerts"},
		{header: "ja", lang: "en", label: "Change in Stock Value"},
		{header: ";;;invalid", lang: "en", label: "Change in Stock Value"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			tr := cat.ForAcceptLanguage(tt.header)
			assert.Equal(t, tt.lang, tr.Language())
			assert.Equal(t, tt.label, tr.Translate("Change in Stock Value"))
		})
	}
}

func TestCatalog_EveryColumnTranslated(t *testing.T) {
	cat, err := NewCatalog()
	require.NoError(t, err)

	for _, lang := range []string{"es", "de"} {
		tr := cat.ForAcceptLanguage(lang)
		for _, col := range reports.AllColumns() {
			assert.NotEqual(t, col.Label, tr.Translate(col.Label), "%s: %s", lang, col.Label)
		}
		for _, f := range reports.FilterForm(nil) {
			assert.NotEqual(t, f.Label, tr.Translate(f.Label), "%s: %s", lang, f.Label)
		}
	}
}

func TestTranslator_UnknownLabelPassesThrough(t *testing.T) {
	cat, err := NewCatalog()
	require.NoError(t, err)

	assert.Equal(t, "Custom Column", cat.ForAcceptLanguage("es").Translate("Custom Column"))
}

func TestTranslator_ShapesTranslatedColumns(t *testing.T) {
	cat, err := NewCatalog()
	require.NoError(t, err)

	cols := reports.ShapeColumns(reports.Filters{ItemCode: "WIDGET-1"}, nil, cat.ForAcceptLanguage("de"))
	assert.Equal(t, "Unternehmen", cols[0].Label)
	assert.Equal(t, "company", cols[0].FieldName)
}
