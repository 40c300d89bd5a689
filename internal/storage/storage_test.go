package storage

import (
	"path/filepath"
	"testing"

	"github.com/rechnung-app/rechnung/internal/models"
)

func openTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	g, err := Open(filepath.Join(t.TempDir(), "rechnung.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return g
}

func TestSQLiteGatewayDefaults(t *testing.T) {
	g := openTestGateway(t)
	s, err := g.Settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !s.Preferences.IsKleinunternehmer || s.Preferences.DefaultPaymentTerms != 14 {
		t.Fatalf("unexpected default settings: %+v", s.Preferences)
	}
	invs, err := g.Invoices()
	if err != nil || len(invs) != 0 {
		t.Fatalf("expected empty invoices, got %v err %v", invs, err)
	}
	cs, err := g.Clients()
	if err != nil || len(cs) != 0 {
		t.Fatalf("expected empty clients, got %v err %v", cs, err)
	}
}

func TestSQLiteGatewayRoundTrip(t *testing.T) {
	g := openTestGateway(t)

	s := models.DefaultSettings()
	s.Name = "Max Mustermann"
	s.Preferences.InvoicePrefix = "2025-"
	if err := g.SaveSettings(s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	invs := []models.Invoice{{ID: "inv-1", InvoiceNumber: "2025-001", Status: models.StatusPending}}
	if err := g.SaveInvoices(invs); err != nil {
		t.Fatalf("save invoices: %v", err)
	}
	cs := []models.Client{{ID: "c-1", Name: "Acme GmbH", City: "Berlin"}}
	if err := g.SaveClients(cs); err != nil {
		t.Fatalf("save clients: %v", err)
	}

	got, err := g.Settings()
	if err != nil || got.Name != "Max Mustermann" || got.Preferences.InvoicePrefix != "2025-" {
		t.Fatalf("settings round trip: %+v err %v", got, err)
	}
	gotInvs, err := g.Invoices()
	if err != nil || len(gotInvs) != 1 || gotInvs[0].InvoiceNumber != "2025-001" {
		t.Fatalf("invoices round trip: %+v err %v", gotInvs, err)
	}
	gotCs, err := g.Clients()
	if err != nil || len(gotCs) != 1 || gotCs[0].Name != "Acme GmbH" {
		t.Fatalf("clients round trip: %+v err %v", gotCs, err)
	}
}

func TestSQLiteGatewayOverwriteReplacesCollection(t *testing.T) {
	g := openTestGateway(t)
	if err := g.SaveClients([]models.Client{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := g.SaveClients([]models.Client{{ID: "c"}}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	cs, err := g.Clients()
	if err != nil || len(cs) != 1 || cs[0].ID != "c" {
		t.Fatalf("expected whole-collection replace, got %+v err %v", cs, err)
	}
}

func TestSQLiteGatewayVersionMismatchWipes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rechnung.db")

	g, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := g.SaveClients([]models.Client{{ID: "c-1", Name: "Acme"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// simulate an old data version on disk
	if err := g.set(keyVersion, "v2"); err != nil {
		t.Fatalf("set version: %v", err)
	}

	g2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cs, err := g2.Clients()
	if err != nil || len(cs) != 0 {
		t.Fatalf("expected wiped clients after version mismatch, got %+v err %v", cs, err)
	}
	v, ok, err := g2.get(keyVersion)
	if err != nil || !ok || v != dataVersion {
		t.Fatalf("expected version stamped to %s, got %q ok=%v err=%v", dataVersion, v, ok, err)
	}
}

func TestSQLiteGatewaySameVersionKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rechnung.db")

	g, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := g.SaveClients([]models.Client{{ID: "c-1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	g2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cs, err := g2.Clients()
	if err != nil || len(cs) != 1 {
		t.Fatalf("expected data preserved across reopen, got %+v err %v", cs, err)
	}
}
