package storage

import (
	"encoding/json"

	"github.com/rechnung-app/rechnung/internal/models"
)

// Memory is a map-backed Gateway for tests and ephemeral runs. It round-trips
// values through JSON so callers see the same copy semantics as the sqlite
// gateway.
type Memory struct {
	blobs map[string]string

	// FailWrites makes every save return this error, for exercising
	// write-through failure paths.
	FailWrites error
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string]string{keyVersion: dataVersion}}
}

func (m *Memory) get(key string, out any) (bool, error) {
	raw, ok := m.blobs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), out)
}

func (m *Memory) set(key string, v any) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.blobs[key] = string(raw)
	return nil
}

func (m *Memory) Settings() (models.BusinessSettings, error) {
	s := models.DefaultSettings()
	ok, err := m.get(keySettings, &s)
	if err != nil {
		return models.DefaultSettings(), err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}
	return s, nil
}

func (m *Memory) SaveSettings(s models.BusinessSettings) error { return m.set(keySettings, s) }

func (m *Memory) Invoices() ([]models.Invoice, error) {
	var invs []models.Invoice
	if _, err := m.get(keyInvoices, &invs); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []models.Invoice{}
	}
	return invs, nil
}

func (m *Memory) SaveInvoices(invs []models.Invoice) error {
	if invs == nil {
		invs = []models.Invoice{}
	}
	return m.set(keyInvoices, invs)
}

func (m *Memory) Clients() ([]models.Client, error) {
	var cs []models.Client
	if _, err := m.get(keyClients, &cs); err != nil {
		return nil, err
	}
	if cs == nil {
		cs = []models.Client{}
	}
	return cs, nil
}

func (m *Memory) SaveClients(cs []models.Client) error {
	if cs == nil {
		cs = []models.Client{}
	}
	return m.set(keyClients, cs)
}

func (m *Memory) Clear() error {
	delete(m.blobs, keySettings)
	delete(m.blobs, keyInvoices)
	delete(m.blobs, keyClients)
	return nil
}
