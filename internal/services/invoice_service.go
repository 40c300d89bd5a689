package services

import (
	"errors"
	"time"

	"github.com/rechnung-app/rechnung/internal/billing"
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/storage"
)

// ErrNotFound signals an operation on an id that is not in the collection.
var ErrNotFound = errors.New("not_found")

// InvoiceService owns the in-memory invoice collection and mediates all
// mutations. Every mutation is write-through: the gateway is written first
// and the cache only updated on success, so a persistence failure leaves the
// in-memory state as it was.
type InvoiceService struct {
	gw       storage.Gateway
	invoices []models.Invoice
	now      func() time.Time
}

func NewInvoiceService(gw storage.Gateway) *InvoiceService {
	return &InvoiceService{gw: gw, invoices: []models.Invoice{}, now: time.Now}
}

// Load reads the full collection, applies the status deriver to every record
// and persists any overdue flips, so displayed and stored state never drift.
func (s *InvoiceService) Load() error {
	invs, err := s.gw.Invoices()
	if err != nil {
		return err
	}
	now := s.now()
	changed := false
	for i := range invs {
		derived := billing.DeriveStatus(invs[i], now)
		if derived != invs[i].Status {
			invs[i].Status = derived
			changed = true
		}
	}
	if changed {
		if err := s.gw.SaveInvoices(invs); err != nil {
			return err
		}
	}
	s.invoices = invs
	return nil
}

// All returns the cached collection in storage order.
func (s *InvoiceService) All() []models.Invoice {
	out := make([]models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Add persists a new invoice and appends it to the cache. Derived fields are
// recomputed here; invoiceNumber duplicates are permitted (the number is a
// suggestion, not a key).
func (s *InvoiceService) Add(inv models.Invoice) (models.Invoice, error) {
	if err := billing.Recalculate(&inv); err != nil {
		return models.Invoice{}, err
	}
	now := s.now().UTC().Format(time.RFC3339)
	inv.CreatedAt = now
	inv.UpdatedAt = now
	next := append(s.All(), inv)
	if err := s.gw.SaveInvoices(next); err != nil {
		return models.Invoice{}, err
	}
	s.invoices = next
	return inv, nil
}

// Update replaces the invoice with the same id, rederiving totals and status
// so nothing derived is trusted from the caller. Returns ErrNotFound for an
// unknown id.
func (s *InvoiceService) Update(inv models.Invoice) (models.Invoice, error) {
	idx := s.indexOf(inv.ID)
	if idx < 0 {
		return models.Invoice{}, ErrNotFound
	}
	if err := billing.Recalculate(&inv); err != nil {
		return models.Invoice{}, err
	}
	inv.Status = billing.DeriveStatus(inv, s.now())
	inv.CreatedAt = s.invoices[idx].CreatedAt
	inv.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	next := s.All()
	next[idx] = inv
	if err := s.gw.SaveInvoices(next); err != nil {
		return models.Invoice{}, err
	}
	s.invoices = next
	return inv, nil
}

// Delete removes the invoice. Deleting an unknown id is a no-op.
func (s *InvoiceService) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := append(s.All()[:idx], s.invoices[idx+1:]...)
	if err := s.gw.SaveInvoices(next); err != nil {
		return err
	}
	s.invoices = next
	return nil
}

// Get returns the invoice with its status derived at read time, persisting
// the flip when the derivation changed it.
func (s *InvoiceService) Get(id string) (models.Invoice, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Invoice{}, ErrNotFound
	}
	inv := s.invoices[idx]
	derived := billing.DeriveStatus(inv, s.now())
	if derived == inv.Status {
		return inv, nil
	}
	inv.Status = derived
	next := s.All()
	next[idx] = inv
	if err := s.gw.SaveInvoices(next); err != nil {
		return models.Invoice{}, err
	}
	s.invoices = next
	return inv, nil
}

// MarkAsPaid transitions the invoice to paid and stamps paidDate with the
// current date. Paid is terminal: there is no automatic transition away.
// No-op for an unknown id.
func (s *InvoiceService) MarkAsPaid(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	now := s.now()
	inv := s.invoices[idx]
	inv.Status = models.StatusPaid
	inv.PaidDate = now.Format("2006-01-02")
	inv.UpdatedAt = now.UTC().Format(time.RFC3339)
	next := s.All()
	next[idx] = inv
	if err := s.gw.SaveInvoices(next); err != nil {
		return err
	}
	s.invoices = next
	return nil
}

// RefreshStatuses rederives and persists every record's status in bulk.
// Intended to run once per session start.
func (s *InvoiceService) RefreshStatuses() error {
	now := s.now()
	next := s.All()
	for i := range next {
		next[i].Status = billing.DeriveStatus(next[i], now)
	}
	if err := s.gw.SaveInvoices(next); err != nil {
		return err
	}
	s.invoices = next
	return nil
}

// HasInvoicesFor reports whether any invoice of any status, drafts included,
// references the client.
func (s *InvoiceService) HasInvoicesFor(clientID string) bool {
	for _, inv := range s.invoices {
		if inv.ClientID == clientID {
			return true
		}
	}
	return false
}

// NextNumber suggests the next invoice number from the configured prefix.
func (s *InvoiceService) NextNumber(set models.BusinessSettings) string {
	return billing.NextInvoiceNumber(set.Preferences.InvoicePrefix, set.Preferences.StartingInvoiceNumber, s.invoices)
}

func (s *InvoiceService) indexOf(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

// SetClock overrides the time source, for tests.
func (s *InvoiceService) SetClock(now func() time.Time) { s.now = now }
