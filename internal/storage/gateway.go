// Package storage is the persistence gateway: a key-value store holding
// three independent JSON blobs (settings, invoices, clients) plus a
// schema-version marker. Every write replaces a whole collection, which is
// atomic from the caller's point of view.
package storage

import "github.com/rechnung-app/rechnung/internal/models"

// Gateway is the persistence contract consumed by the three stores. A
// missing blob yields the default value (default settings, empty slices),
// never an error.
type Gateway interface {
	Settings() (models.BusinessSettings, error)
	SaveSettings(models.BusinessSettings) error
	Invoices() ([]models.Invoice, error)
	SaveInvoices([]models.Invoice) error
	Clients() ([]models.Client, error)
	SaveClients([]models.Client) error
	// Clear wipes all three blobs.
	Clear() error
}

const (
	keySettings = "invoice-app-settings"
	keyInvoices = "invoice-app-invoices"
	keyClients  = "invoice-app-clients"
	keyVersion  = "invoice-app-version"
)

// dataVersion is the current schema version. A stored mismatch at open time
// triggers a one-way destructive reset of all three blobs.
const dataVersion = "v3"
