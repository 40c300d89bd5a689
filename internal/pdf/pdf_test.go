package pdf

import (
	"bytes"
	"testing"

	"github.com/rechnung-app/rechnung/internal/models"
)

func documentInvoice() (models.Invoice, models.BusinessSettings) {
	inv := models.Invoice{
		ID:                 "i-1",
		InvoiceNumber:      "2025-004",
		Date:               "2025-06-01",
		ServicePeriodStart: "2025-05-01",
		ServicePeriodEnd:   "2025-05-31",
		Client:             models.Client{Name: "Acme GmbH", Street: "Hauptstr. 1", PostalCode: "10115", City: "Berlin"},
		LineItems: []models.LineItem{
			{Description: "Beratung", SubDescription: "Architektur-Review", Quantity: 2, Unit: "Tage", UnitPrice: 800, Total: 1600},
			{Description: "Pauschale", Quantity: 1, Unit: "Pauschal", UnitPrice: 250, Total: 250},
		},
		Subtotal:     1850,
		VATRate:      0,
		Total:        1850,
		PaymentTerms: 14,
		DueDate:      "2025-06-15",
		Status:       models.StatusPending,
	}
	set := models.DefaultSettings()
	set.Name = "Max Mustermann"
	set.Street = "Nebenstr. 2"
	set.PostalCode = "80331"
	set.City = "München"
	set.TaxNumberPending = true
	set.BankDetails = models.BankDetails{AccountHolder: "Max Mustermann", IBAN: "DE89370400440532013000", BIC: "COBADEFFXXX", BankName: "Commerzbank"}
	return inv, set
}

func TestRenderProducesPDF(t *testing.T) {
	inv, set := documentInvoice()
	data, err := Render(inv, set)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF document")
	}
	if len(data) < 1000 {
		t.Fatalf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRenderWithVAT(t *testing.T) {
	inv, set := documentInvoice()
	inv.VATRate = 19
	inv.VATAmount = 351.50
	inv.Total = 2201.50
	data, err := Render(inv, set)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestFilename(t *testing.T) {
	inv, _ := documentInvoice()
	if got := Filename(inv); got != "Rechnung-2025-004-01-06-2025.pdf" {
		t.Fatalf("got %q", got)
	}
}
