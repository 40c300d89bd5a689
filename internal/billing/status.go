package billing

import (
	"time"

	"github.com/rechnung-app/rechnung/internal/models"
)

// DeriveStatus returns the effective status of an invoice at the given
// moment. Only pending invoices are promoted to overdue; draft never becomes
// overdue regardless of date and paid never reverts. The comparison is
// date-only: an invoice is overdue starting the day after its due date,
// never on the due date itself.
func DeriveStatus(inv models.Invoice, now time.Time) models.InvoiceStatus {
	if inv.Status != models.StatusPending && inv.Status != models.StatusOverdue {
		return inv.Status
	}
	due, err := time.Parse(isoDate, inv.DueDate)
	if err != nil {
		// unparsable due date: leave the stored status alone
		return inv.Status
	}
	today, _ := time.Parse(isoDate, now.Format(isoDate))
	if today.After(due) {
		return models.StatusOverdue
	}
	return models.StatusPending
}
