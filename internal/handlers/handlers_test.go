package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/server"
	"github.com/rechnung-app/rechnung/internal/services"
	"github.com/rechnung-app/rechnung/internal/storage"
)

func newTestApp(t *testing.T) (http.Handler, *storage.Memory) {
	t.Helper()
	gw := storage.NewMemory()
	invoices := services.NewInvoiceService(gw)
	clients := services.NewClientService(gw)
	settings := services.NewSettingsService(gw)
	for _, load := range []func() error{settings.Load, invoices.Load, clients.Load} {
		if err := load(); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	return server.New(gw, invoices, clients, settings), gw
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func createClient(t *testing.T, h http.Handler, name string) models.Client {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/clients", map[string]any{
		"name": name, "street": "Hauptstr. 1", "postalCode": "10115", "city": "Berlin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client: %d %s", rec.Code, rec.Body.String())
	}
	return decode[models.Client](t, rec)
}

func invoicePayload(clientID string, vatRate float64) map[string]any {
	return map[string]any{
		"invoiceNumber":      "2025-001",
		"date":               "2025-06-01",
		"servicePeriodStart": "2025-05-01",
		"servicePeriodEnd":   "2025-05-31",
		"clientId":           clientID,
		"vatRate":            vatRate,
		"paymentTerms":       14,
		"status":             "pending",
		"lineItems": []map[string]any{
			{"description": "Beratung", "quantity": 2, "unit": "Tage", "unitPrice": 50},
		},
	}
}

func TestKleinunternehmerScenario(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")

	rec := do(t, h, http.MethodPost, "/invoices", invoicePayload(client.ID, 0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", rec.Code, rec.Body.String())
	}
	inv := decode[models.Invoice](t, rec)
	if inv.Subtotal != 100 || inv.VATAmount != 0 || inv.Total != 100 {
		t.Fatalf("subtotal=%v vat=%v total=%v", inv.Subtotal, inv.VATAmount, inv.Total)
	}
	if inv.Client.Name != "Acme" {
		t.Fatalf("client snapshot missing: %+v", inv.Client)
	}
	if inv.DueDate != "2025-06-15" {
		t.Fatalf("dueDate = %s", inv.DueDate)
	}

	rec = do(t, h, http.MethodPost, "/invoices/paid?id="+inv.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark paid: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/clients/get?id="+client.ID, nil)
	got := decode[models.Client](t, rec)
	if got.TotalInvoiced != 100 {
		t.Fatalf("totalInvoiced = %v, want 100", got.TotalInvoiced)
	}
}

func TestVATScenario(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")

	rec := do(t, h, http.MethodPost, "/invoices", invoicePayload(client.ID, 19))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", rec.Code, rec.Body.String())
	}
	inv := decode[models.Invoice](t, rec)
	if inv.VATAmount != 19 || inv.Total != 119 {
		t.Fatalf("vat=%v total=%v", inv.VATAmount, inv.Total)
	}
}

func TestInvoiceValidationFailureChangesNothing(t *testing.T) {
	h, gw := newTestApp(t)
	client := createClient(t, h, "Acme")

	payload := invoicePayload(client.ID, 0)
	payload["lineItems"] = []map[string]any{} // an invoice needs at least one item
	rec := do(t, h, http.MethodPost, "/invoices", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
	invs, _ := gw.Invoices()
	if len(invs) != 0 {
		t.Fatalf("state changed on validation failure: %+v", invs)
	}
}

func TestInvoiceUnknownClientRejected(t *testing.T) {
	h, _ := newTestApp(t)
	rec := do(t, h, http.MethodPost, "/invoices", invoicePayload("ghost", 0))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateUnknownInvoiceIs404(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")
	payload := invoicePayload(client.ID, 0)
	payload["id"] = "missing"
	rec := do(t, h, http.MethodPost, "/invoices/update", payload)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestClientDeleteRefusedWhileReferenced(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")

	// a draft reference blocks deletion too
	payload := invoicePayload(client.ID, 0)
	payload["status"] = "draft"
	rec := do(t, h, http.MethodPost, "/invoices", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d", rec.Code)
	}
	inv := decode[models.Invoice](t, rec)

	rec = do(t, h, http.MethodPost, "/clients/delete?id="+client.ID, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
	}

	// once the invoice is gone, deletion succeeds
	rec = do(t, h, http.MethodPost, "/invoices/delete?id="+inv.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete invoice: %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/clients/delete?id="+client.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete client: %d %s", rec.Code, rec.Body.String())
	}
}

func TestNextNumberSuggestion(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")

	rec := do(t, h, http.MethodGet, "/invoices/next-number", nil)
	first := decode[map[string]string](t, rec)["invoiceNumber"]
	if !strings.HasSuffix(first, "-001") {
		t.Fatalf("first suggestion = %s", first)
	}

	payload := invoicePayload(client.ID, 0)
	payload["invoiceNumber"] = first
	if rec := do(t, h, http.MethodPost, "/invoices", payload); rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/invoices/next-number", nil)
	second := decode[map[string]string](t, rec)["invoiceNumber"]
	if !strings.HasSuffix(second, "-002") {
		t.Fatalf("second suggestion = %s", second)
	}

	// duplicates are permitted: the number is a suggestion, not a key
	if rec := do(t, h, http.MethodPost, "/invoices", payload); rec.Code != http.StatusCreated {
		t.Fatalf("duplicate number rejected: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPDFAndPreviewCarrySameContent(t *testing.T) {
	h, _ := newTestApp(t)
	client := createClient(t, h, "Acme")
	rec := do(t, h, http.MethodPost, "/invoices", invoicePayload(client.ID, 0))
	inv := decode[models.Invoice](t, rec)

	rec = do(t, h, http.MethodGet, "/invoices/pdf?id="+inv.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Rechnung-2025-001-01-06-2025.pdf") {
		t.Fatalf("disposition = %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf body")
	}

	rec = do(t, h, http.MethodGet, "/invoices/preview?id="+inv.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: %d", rec.Code)
	}
	html := rec.Body.String()
	for _, want := range []string{"2025-001", "Acme", "Beratung", "100,00", "§ 19 UStG"} {
		if !strings.Contains(html, want) {
			t.Fatalf("preview missing %q", want)
		}
	}
}

func TestExportImportRoundTripViaHTTP(t *testing.T) {
	h, gw := newTestApp(t)
	client := createClient(t, h, "Acme")
	if rec := do(t, h, http.MethodPost, "/invoices", invoicePayload(client.ID, 0)); rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	snapshot := rec.Body.Bytes()

	before, _ := gw.Invoices()

	req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(snapshot))
	imp := httptest.NewRecorder()
	h.ServeHTTP(imp, req)
	if imp.Code != http.StatusOK {
		t.Fatalf("import: %d %s", imp.Code, imp.Body.String())
	}

	after, _ := gw.Invoices()
	if fmt.Sprintf("%+v", before) != fmt.Sprintf("%+v", after) {
		t.Fatalf("import(export()) changed data:\n%+v\n%+v", before, after)
	}
}

func TestImportMalformedRejected(t *testing.T) {
	h, gw := newTestApp(t)
	createClient(t, h, "Acme")
	before, _ := gw.Clients()

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	after, _ := gw.Clients()
	if len(before) != len(after) {
		t.Fatalf("data changed on malformed import")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h, _ := newTestApp(t)

	rec := do(t, h, http.MethodGet, "/settings", nil)
	set := decode[models.BusinessSettings](t, rec)
	if !set.Preferences.IsKleinunternehmer {
		t.Fatalf("default Kleinunternehmer must be on")
	}

	set.Name = "Max Mustermann"
	set.Preferences.DefaultPaymentTerms = 30
	rec = do(t, h, http.MethodPut, "/settings", set)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/settings/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: %d", rec.Code)
	}
	got := decode[models.BusinessSettings](t, rec)
	if got.Name != "" || got.Preferences.DefaultPaymentTerms != 14 {
		t.Fatalf("reset record: %+v", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestApp(t)
	rec := do(t, h, http.MethodDelete, "/invoices", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
