package server

import (
	"net/http"

	"github.com/rechnung-app/rechnung/internal/handlers"
	"github.com/rechnung-app/rechnung/internal/httpx"
	"github.com/rechnung-app/rechnung/internal/services"
	"github.com/rechnung-app/rechnung/internal/storage"
)

// New constructs the root http.Handler with all routes applied. The three
// services must already be loaded.
func New(gw storage.Gateway, invoices *services.InvoiceService, clients *services.ClientService, settings *services.SettingsService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ih := handlers.NewInvoiceHandler(invoices, clients, settings)
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/invoices/get", requireMethod(http.MethodGet, ih.Get))
	mux.HandleFunc("/invoices/update", requireMethod(http.MethodPost, ih.Update))
	mux.HandleFunc("/invoices/delete", requireMethod(http.MethodPost, ih.Delete))
	mux.HandleFunc("/invoices/paid", requireMethod(http.MethodPost, ih.MarkPaid))
	mux.HandleFunc("/invoices/next-number", requireMethod(http.MethodGet, ih.NextNumber))
	mux.HandleFunc("/invoices/pdf", requireMethod(http.MethodGet, ih.PDF))
	mux.HandleFunc("/invoices/preview", requireMethod(http.MethodGet, ih.Preview))

	ch := handlers.NewClientHandler(clients, invoices)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/get", requireMethod(http.MethodGet, ch.Get))
	mux.HandleFunc("/clients/update", requireMethod(http.MethodPost, ch.Update))
	mux.HandleFunc("/clients/delete", requireMethod(http.MethodPost, ch.Delete))

	sh := handlers.NewSettingsHandler(settings)
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPut:
			sh.Update(w, r)
		default:
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/settings/reset", requireMethod(http.MethodPost, sh.Reset))

	dh := handlers.NewDataHandler(gw, invoices, clients, settings)
	mux.HandleFunc("/export", requireMethod(http.MethodGet, dh.Export))
	mux.HandleFunc("/import", requireMethod(http.MethodPost, dh.Import))

	return mux
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}
