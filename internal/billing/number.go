package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rechnung-app/rechnung/internal/models"
)

// NextInvoiceNumber suggests the next invoice number for the configured
// prefix: highest numeric suffix among existing invoices with that prefix
// (or startingNumber−1 when none exist) plus one, zero-padded to three
// digits. A suggestion only; uniqueness is not enforced at save time.
func NextInvoiceNumber(prefix string, startingNumber int, invoices []models.Invoice) string {
	highest := startingNumber - 1
	for _, inv := range invoices {
		if !strings.HasPrefix(inv.InvoiceNumber, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(inv.InvoiceNumber, prefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// TotalsByClient sums the totals of all non-draft invoices per client. The
// cached totalInvoiced on a client record is refreshed from this, never
// trusted as authoritative.
func TotalsByClient(invoices []models.Invoice) map[string]float64 {
	totals := make(map[string]float64)
	for _, inv := range invoices {
		if inv.Status == models.StatusDraft {
			continue
		}
		totals[inv.ClientID] = Total(totals[inv.ClientID], inv.Total)
	}
	return totals
}
