// Package view renders the on-screen invoice preview. It is the second
// projection of the same Invoice/Settings pair the PDF renders; both must
// carry the same informational content.
package view

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rechnung-app/rechnung/internal/format"
	"github.com/rechnung-app/rechnung/internal/models"
)

//go:embed invoice.html
var invoiceHTML string

var invoiceTpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"currency": format.Currency,
	"date":     format.Date,
	"daterange": func(a, b string) string {
		return format.DateRange(a, b)
	},
	"iban":     format.IBAN,
	"quantity": format.Quantity,
	"terms": func(days int) string {
		return fmt.Sprintf("%d Tage", days)
	},
}).Parse(invoiceHTML))

type previewData struct {
	Invoice  models.Invoice
	Settings models.BusinessSettings
	Currency string
}

// Render writes the HTML preview for an invoice/settings pair.
func Render(w io.Writer, inv models.Invoice, set models.BusinessSettings) error {
	data := previewData{Invoice: inv, Settings: set, Currency: set.Preferences.Currency}
	if err := invoiceTpl.Execute(w, data); err != nil {
		return fmt.Errorf("render preview %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}
