package models

// InvoiceStatus is the lifecycle state of an invoice.
// draft and paid are frozen with respect to the automatic overdue check.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// LineItem is owned by exactly one invoice. Total is derived from
// Quantity×UnitPrice and never edited independently.
type LineItem struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	SubDescription string  `json:"subDescription,omitempty"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	UnitPrice      float64 `json:"unitPrice"`
	Total          float64 `json:"total"`
}

// Invoice carries a denormalized snapshot of the client taken at save time,
// so historical invoices are unaffected by later client edits.
// Subtotal, VATAmount, Total and DueDate are derived on every save.
// Dates are ISO 8601 date-only strings (YYYY-MM-DD); the timestamps are RFC 3339.
type Invoice struct {
	ID                 string        `json:"id"`
	InvoiceNumber      string        `json:"invoiceNumber"`
	Date               string        `json:"date"`
	ServicePeriodStart string        `json:"servicePeriodStart"`
	ServicePeriodEnd   string        `json:"servicePeriodEnd"`
	ClientID           string        `json:"clientId"`
	Client             Client        `json:"client"`
	LineItems          []LineItem    `json:"lineItems"`
	Subtotal           float64       `json:"subtotal"`
	VATRate            float64       `json:"vatRate"`
	VATAmount          float64       `json:"vatAmount"`
	Total              float64       `json:"total"`
	PaymentTerms       int           `json:"paymentTerms"`
	DueDate            string        `json:"dueDate"`
	Status             InvoiceStatus `json:"status"`
	PaidDate           string        `json:"paidDate,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          string        `json:"createdAt"`
	UpdatedAt          string        `json:"updatedAt"`
}

// UnitOption is one of the fixed set of billable units offered to the user.
// The storage level keeps Unit as a freeform string.
type UnitOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UnitOptions lists the units an invoice line can be billed in.
var UnitOptions = []UnitOption{
	{Value: "Tage", Label: "Days (Tage)"},
	{Value: "Stunden", Label: "Hours (Stunden)"},
	{Value: "Stück", Label: "Pieces (Stück)"},
	{Value: "Pauschal", Label: "Flat Rate (Pauschal)"},
}
