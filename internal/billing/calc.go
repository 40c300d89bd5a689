package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rechnung-app/rechnung/internal/models"
)

const isoDate = "2006-01-02"

// LineItemTotal computes quantity × unit price rounded half-up to two
// decimals (currency minor-unit precision).
func LineItemTotal(quantity, unitPrice float64) float64 {
	q := decimal.NewFromFloat(quantity)
	p := decimal.NewFromFloat(unitPrice)
	f, _ := q.Mul(p).Round(2).Float64()
	return f
}

// Subtotal sums the stored line totals. Item totals must already be correct;
// they are recomputed eagerly on edit, not here.
func Subtotal(items []models.LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Total))
	}
	f, _ := sum.Float64()
	return f
}

// VAT computes the tax amount for a subtotal at the given percentage rate.
// A zero rate always yields exactly zero.
func VAT(subtotal, ratePercent float64) float64 {
	if ratePercent == 0 {
		return 0
	}
	s := decimal.NewFromFloat(subtotal)
	r := decimal.NewFromFloat(ratePercent)
	f, _ := s.Mul(r).Div(decimal.NewFromInt(100)).Round(2).Float64()
	return f
}

// Total computes subtotal + VAT rounded to two decimals.
func Total(subtotal, vat float64) float64 {
	s := decimal.NewFromFloat(subtotal)
	v := decimal.NewFromFloat(vat)
	f, _ := s.Add(v).Round(2).Float64()
	return f
}

// DueDate adds paymentTermsDays calendar days to an ISO date string and
// returns the result as an ISO date string. Calendar arithmetic handles
// month, year and leap-day rollover.
func DueDate(invoiceDate string, paymentTermsDays int) (string, error) {
	d, err := time.Parse(isoDate, invoiceDate)
	if err != nil {
		return "", fmt.Errorf("invalid invoice date %q: %w", invoiceDate, err)
	}
	return d.AddDate(0, 0, paymentTermsDays).Format(isoDate), nil
}

// Recalculate rederives every computed field on an invoice from its inputs:
// line totals, subtotal, VAT amount (forced to zero when the rate is zero),
// grand total and due date. Called on every save so derived fields are never
// trusted from the caller.
func Recalculate(inv *models.Invoice) error {
	for i := range inv.LineItems {
		inv.LineItems[i].Total = LineItemTotal(inv.LineItems[i].Quantity, inv.LineItems[i].UnitPrice)
	}
	inv.Subtotal = Subtotal(inv.LineItems)
	inv.VATAmount = VAT(inv.Subtotal, inv.VATRate)
	inv.Total = Total(inv.Subtotal, inv.VATAmount)
	due, err := DueDate(inv.Date, inv.PaymentTerms)
	if err != nil {
		return err
	}
	inv.DueDate = due
	return nil
}
