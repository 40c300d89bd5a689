package models

// Client is a top-level record related to invoices only by ClientID.
// TotalInvoiced is a recomputable convenience cache (sum of non-draft invoice
// totals referencing this client), never authoritative.
type Client struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Street        string  `json:"street"`
	PostalCode    string  `json:"postalCode"`
	City          string  `json:"city"`
	Email         string  `json:"email,omitempty"`
	TotalInvoiced float64 `json:"totalInvoiced"`
}
