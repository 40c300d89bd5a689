// Package pdf renders an invoice and the business settings into the
// downloadable A4 document. It is a pure projection: same informational
// content as the on-screen preview, no state.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/rechnung-app/rechnung/internal/format"
	"github.com/rechnung-app/rechnung/internal/models"
)

// Filename returns the download name for an invoice document:
// Rechnung-<number>-<dd-MM-yyyy>.pdf
func Filename(inv models.Invoice) string {
	date := format.Date(inv.Date)
	for i := 0; i < len(date); i++ {
		if date[i] == '.' {
			date = date[:i] + "-" + date[i+1:]
		}
	}
	return fmt.Sprintf("Rechnung-%s-%s.pdf", inv.InvoiceNumber, date)
}

// Render produces the PDF document bytes for an invoice/settings pair.
func Render(inv models.Invoice, set models.BusinessSettings) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	currency := set.Preferences.Currency
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	// Title + invoice number
	doc.SetFont("Helvetica", "B", 22)
	doc.Cell(100, 10, tr("Rechnung"))
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(113, 113, 122)
	doc.CellFormat(0, 10, tr(inv.InvoiceNumber), "", 1, "R", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)
	doc.SetDrawColor(209, 213, 219)
	doc.Line(18, doc.GetY(), 192, doc.GetY())
	doc.Ln(8)

	// Issuer and client blocks side by side
	topY := doc.GetY()
	writeLabel(doc, tr, "VON")
	writeAddress(doc, tr, set.Name, set.Street, set.PostalCode+" "+set.City)
	if set.TaxNumber != "" {
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(113, 113, 122)
		doc.CellFormat(80, 4, tr("Steuernummer: "+set.TaxNumber), "", 1, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	} else if set.TaxNumberPending {
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(113, 113, 122)
		doc.CellFormat(80, 4, tr("Steuernummer: wird beantragt"), "", 1, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	leftEnd := doc.GetY()

	doc.SetXY(110, topY)
	writeLabelAt(doc, tr, 110, "AN")
	writeAddressAt(doc, tr, 110, inv.Client.Name, inv.Client.Street, inv.Client.PostalCode+" "+inv.Client.City)
	if doc.GetY() < leftEnd {
		doc.SetY(leftEnd)
	}
	doc.Ln(10)

	// Metadata row: date, Leistungszeitraum, Zahlungsziel
	metaY := doc.GetY()
	writeMeta(doc, tr, 18, "RECHNUNGSDATUM", format.Date(inv.Date))
	doc.SetY(metaY)
	writeMeta(doc, tr, 80, "LEISTUNGSZEITRAUM", format.DateRange(inv.ServicePeriodStart, inv.ServicePeriodEnd))
	doc.SetY(metaY)
	writeMeta(doc, tr, 150, "ZAHLUNGSZIEL", fmt.Sprintf("%d Tage", inv.PaymentTerms))
	doc.Ln(10)

	// Line item table
	doc.SetFont("Helvetica", "B", 8)
	doc.SetDrawColor(0, 0, 0)
	doc.CellFormat(84, 7, tr("Beschreibung"), "B", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, tr("Menge"), "B", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, tr("Einzelpreis"), "B", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, tr("Gesamt"), "B", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	for _, it := range inv.LineItems {
		y := doc.GetY()
		doc.CellFormat(84, 8, tr(it.Description), "", 0, "L", false, 0, "")
		doc.CellFormat(30, 8, tr(fmt.Sprintf("%s %s", format.Quantity(it.Quantity), it.Unit)), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 8, tr(format.Currency(it.UnitPrice, currency)), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 8, tr(format.Currency(it.Total, currency)), "", 1, "R", false, 0, "")
		if it.SubDescription != "" {
			doc.SetFont("Helvetica", "", 7)
			doc.SetTextColor(113, 113, 122)
			doc.SetY(y + 8)
			doc.CellFormat(84, 4, tr(it.SubDescription), "", 1, "L", false, 0, "")
			doc.SetTextColor(0, 0, 0)
			doc.SetFont("Helvetica", "", 9)
		}
		doc.SetDrawColor(229, 229, 229)
		doc.Line(18, doc.GetY(), 192, doc.GetY())
	}
	doc.Ln(4)

	// Totals
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(144, 6, tr("Zwischensumme"), "", 0, "R", false, 0, "")
	doc.CellFormat(30, 6, tr(format.Currency(inv.Subtotal, currency)), "", 1, "R", false, 0, "")
	if inv.VATRate > 0 {
		doc.CellFormat(144, 6, tr(fmt.Sprintf("Umsatzsteuer (%.0f%%)", inv.VATRate)), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, tr(format.Currency(inv.VATAmount, currency)), "", 1, "R", false, 0, "")
	}
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(144, 8, tr("Gesamtbetrag"), "T", 0, "R", false, 0, "")
	doc.CellFormat(30, 8, tr(format.Currency(inv.Total, currency)), "T", 1, "R", false, 0, "")
	doc.Ln(6)

	// Statutory VAT exemption notice
	if inv.VATRate == 0 {
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(113, 113, 122)
		doc.MultiCell(0, 4, tr("Gemäß § 19 UStG wird keine Umsatzsteuer berechnet."), "", "L", false)
		doc.SetTextColor(0, 0, 0)
		doc.Ln(4)
	}

	if inv.Notes != "" {
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
		doc.Ln(4)
	}

	// Bank details block
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(179, 179, 179)
	doc.CellFormat(0, 5, tr("BANKVERBINDUNG"), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
	bank := set.BankDetails
	doc.CellFormat(0, 5, tr("Kontoinhaber: "+bank.AccountHolder), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("IBAN: "+format.IBAN(bank.IBAN)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("BIC: "+bank.BIC), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("Bank: "+bank.BankName), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func writeLabel(doc *gofpdf.Fpdf, tr func(string) string, label string) {
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(179, 179, 179)
	doc.CellFormat(80, 5, tr(label), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

func writeLabelAt(doc *gofpdf.Fpdf, tr func(string) string, x float64, label string) {
	doc.SetX(x)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(179, 179, 179)
	doc.CellFormat(80, 5, tr(label), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

func writeAddress(doc *gofpdf.Fpdf, tr func(string) string, name, street, cityLine string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(80, 5, tr(name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(80, 5, tr(street), "", 1, "L", false, 0, "")
	doc.CellFormat(80, 5, tr(cityLine), "", 1, "L", false, 0, "")
}

func writeAddressAt(doc *gofpdf.Fpdf, tr func(string) string, x float64, name, street, cityLine string) {
	doc.SetX(x)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(80, 5, tr(name), "", 1, "L", false, 0, "")
	doc.SetX(x)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(80, 5, tr(street), "", 1, "L", false, 0, "")
	doc.SetX(x)
	doc.CellFormat(80, 5, tr(cityLine), "", 1, "L", false, 0, "")
}

func writeMeta(doc *gofpdf.Fpdf, tr func(string) string, x float64, label, value string) {
	doc.SetX(x)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(179, 179, 179)
	doc.CellFormat(60, 5, tr(label), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetX(x)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(60, 5, tr(value), "", 1, "L", false, 0, "")
}
