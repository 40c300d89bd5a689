package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rechnung-app/rechnung/internal/models"
)

// Snapshot is the export/import document: a full copy of all three
// collections plus the export timestamp. On import any subset of the three
// data keys may be present; absent keys are left untouched.
type Snapshot struct {
	Settings   *models.BusinessSettings `json:"settings,omitempty"`
	Invoices   []models.Invoice         `json:"invoices,omitempty"`
	Clients    []models.Client          `json:"clients,omitempty"`
	ExportedAt time.Time                `json:"exportedAt"`
}

// Export serializes the full current state of the gateway.
func Export(g Gateway) ([]byte, error) {
	settings, err := g.Settings()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	invoices, err := g.Invoices()
	if err != nil {
		return nil, fmt.Errorf("read invoices: %w", err)
	}
	clients, err := g.Clients()
	if err != nil {
		return nil, fmt.Errorf("read clients: %w", err)
	}
	snap := Snapshot{
		Settings:   &settings,
		Invoices:   invoices,
		Clients:    clients,
		ExportedAt: time.Now().UTC(),
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import applies a snapshot. The payload is fully decoded before any write,
// so malformed input never touches existing data. If a write fails midway,
// keys already written are restored from the pre-import state.
func Import(g Gateway, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("malformed snapshot: %w", err)
	}

	prevSettings, err := g.Settings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	prevInvoices, err := g.Invoices()
	if err != nil {
		return fmt.Errorf("read invoices: %w", err)
	}
	prevClients, err := g.Clients()
	if err != nil {
		return fmt.Errorf("read clients: %w", err)
	}

	var applied []func() error
	rollback := func() {
		for _, restore := range applied {
			// best effort: the pre-import copies are known-good values
			_ = restore()
		}
	}

	if snap.Settings != nil {
		if err := g.SaveSettings(*snap.Settings); err != nil {
			return fmt.Errorf("apply settings: %w", err)
		}
		applied = append(applied, func() error { return g.SaveSettings(prevSettings) })
	}
	if snap.Invoices != nil {
		if err := g.SaveInvoices(snap.Invoices); err != nil {
			rollback()
			return fmt.Errorf("apply invoices: %w", err)
		}
		applied = append(applied, func() error { return g.SaveInvoices(prevInvoices) })
	}
	if snap.Clients != nil {
		if err := g.SaveClients(snap.Clients); err != nil {
			rollback()
			return fmt.Errorf("apply clients: %w", err)
		}
		applied = append(applied, func() error { return g.SaveClients(prevClients) })
	}
	return nil
}
