package services

import (
	"github.com/rechnung-app/rechnung/internal/billing"
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/storage"
)

// ClientService owns the in-memory client collection. Deletion here does not
// cascade and does not check for referencing invoices; that refusal is the
// caller's responsibility at the boundary.
type ClientService struct {
	gw      storage.Gateway
	clients []models.Client
}

func NewClientService(gw storage.Gateway) *ClientService {
	return &ClientService{gw: gw, clients: []models.Client{}}
}

func (s *ClientService) Load() error {
	cs, err := s.gw.Clients()
	if err != nil {
		return err
	}
	s.clients = cs
	return nil
}

func (s *ClientService) All() []models.Client {
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *ClientService) Add(c models.Client) (models.Client, error) {
	next := append(s.All(), c)
	if err := s.gw.SaveClients(next); err != nil {
		return models.Client{}, err
	}
	s.clients = next
	return c, nil
}

// Update replaces the client with the same id. Returns ErrNotFound for an
// unknown id.
func (s *ClientService) Update(c models.Client) (models.Client, error) {
	idx := s.indexOf(c.ID)
	if idx < 0 {
		return models.Client{}, ErrNotFound
	}
	next := s.All()
	next[idx] = c
	if err := s.gw.SaveClients(next); err != nil {
		return models.Client{}, err
	}
	s.clients = next
	return c, nil
}

// Delete removes the client. Idempotent: an unknown id is a no-op.
func (s *ClientService) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := append(s.All()[:idx], s.clients[idx+1:]...)
	if err := s.gw.SaveClients(next); err != nil {
		return err
	}
	s.clients = next
	return nil
}

func (s *ClientService) Get(id string) (models.Client, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Client{}, ErrNotFound
	}
	return s.clients[idx], nil
}

// RefreshTotals recomputes every client's cached totalInvoiced from the
// given invoices (sum of non-draft totals) and persists the result. The
// cached value is a display convenience; this is the only place it is set.
func (s *ClientService) RefreshTotals(invoices []models.Invoice) error {
	totals := billing.TotalsByClient(invoices)
	next := s.All()
	for i := range next {
		next[i].TotalInvoiced = totals[next[i].ID]
	}
	if err := s.gw.SaveClients(next); err != nil {
		return err
	}
	s.clients = next
	return nil
}

func (s *ClientService) indexOf(id string) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}
