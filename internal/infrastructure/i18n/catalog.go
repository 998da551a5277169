// Package i18n translates report labels using golang.org/x/text catalogs.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"sbreport/internal/domain/reports"
)

// SheetTitle is the label used as the export sheet name.
const SheetTitle = "Serial and Batch Summary"

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		"Company":                  "Compañía",
		"Serial and Batch Bundle":  "Paquete de serie y lote",
		"Posting Date":             "Fecha de contabilización",
		"Voucher Type":             "Tipo de comprobante",
		"Voucher No":               "Nº de comprobante",
		"Item Code":                "Código de artículo",
		"Item Name":                "Nombre del artículo",
		"Item":                     "Artículo",
		"Warehouse":                "Almacén",
		"Serial No":                "Nº de serie",
		"Batch No":                 "Nº de lote",
		"Batch ID":                 "ID de lote",
		"Batch Qty":                "Cantidad del lote",
		"Incoming Rate":            "Tasa de entrada",
		"Change in Stock Value":    "Cambio en el valor de inventario",
		"From Date":                "Desde la fecha",
		"To Date":                  "Hasta la fecha",
		"Partial match, e.g. A123": "Coincidencia parcial, p. ej. A123",
		SheetTitle:                 "Resumen de series y lotes",
	},
	language.German: {
		"Company":                  "Unternehmen",
		"Serial and Batch Bundle":  "Serien- und Chargenbündel",
		"Posting Date":             "Buchungsdatum",
		"Voucher Type":             "Belegart",
		"Voucher No":               "Beleg-Nr.",
		"Item Code":                "Artikelcode",
		"Item Name":                "Artikelname",
		"Item":                     "Artikel",
		"Warehouse":                "Lager",
		"Serial No":                "Seriennummer",
		"Batch No":                 "Chargennummer",
		"Batch ID":                 "Chargen-ID",
		"Batch Qty":                "Chargenmenge",
		"Incoming Rate":            "Eingangspreis",
		"Change in Stock Value":    "Änderung des Lagerwerts",
		"From Date":                "Von-Datum",
		"To Date":                  "Bis-Datum",
		"Partial match, e.g. A123": "Teilübereinstimmung, z. B. A123",
		SheetTitle:                 "Serien- und Chargenübersicht",
	},
}

// Catalog holds the label translations of every supported language.
// English is the default and source language.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// NewCatalog builds the catalog.
func NewCatalog() (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := []language.Tag{language.English, language.Spanish, language.German}

	for _, tag := range supported[1:] {
		for key, msg := range translations[tag] {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set %s translation for %q: %w", tag, key, err)
			}
		}
	}

	return &Catalog{
		builder:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// ForAcceptLanguage returns a translator for the best supported match of
// an Accept-Language header. Unparsable or empty headers yield English.
func (c *Catalog) ForAcceptLanguage(header string) *Translator {
	tags, _, _ := language.ParseAcceptLanguage(header)
	_, idx, _ := c.matcher.Match(tags...)
	return c.For(c.supported[idx])
}

// For returns a translator for tag.
func (c *Catalog) For(tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Translator implements reports.Translator for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

var _ reports.Translator = (*Translator)(nil)

// Translate returns the translation of label, or label itself when the
// language has none.
func (t *Translator) Translate(label string) string {
	return t.printer.Sprintf(label)
}

// Language returns the BCP 47 tag of the translator.
func (t *Translator) Language() string {
	return t.tag.String()
}
