package handlers

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rechnung-app/rechnung/internal/httpx"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/services"
	"github.com/rechnung-app/rechnung/internal/storage"
)

// maxImportSize caps snapshot uploads; the whole dataset of a single user
// fits comfortably below this.
const maxImportSize = 16 << 20

// DataHandler exposes the snapshot export/import surface. After an import
// the three stores are reloaded so the caches reflect the applied data.
type DataHandler struct {
	Gateway  storage.Gateway
	Invoices *services.InvoiceService
	Clients  *services.ClientService
	Settings *services.SettingsService
	log      zerolog.Logger
}

func NewDataHandler(gw storage.Gateway, invoices *services.InvoiceService, clients *services.ClientService, settings *services.SettingsService) *DataHandler {
	return &DataHandler{
		Gateway:  gw,
		Invoices: invoices,
		Clients:  clients,
		Settings: settings,
		log:      logger.WithComponent("data"),
	}
}

// Export: GET /export
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := storage.Export(h.Gateway)
	if err != nil {
		h.log.Error().Err(err).Msg("export snapshot")
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="rechnung-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import: POST /import
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "read_failed", nil)
		return
	}
	if err := storage.Import(h.Gateway, body); err != nil {
		h.log.Warn().Err(err).Msg("import rejected")
		httpx.JSONError(w, http.StatusBadRequest, "import_failed", nil)
		return
	}
	if err := h.reload(); err != nil {
		h.log.Error().Err(err).Msg("reload after import")
		httpx.JSONError(w, http.StatusInternalServerError, "reload_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (h *DataHandler) reload() error {
	if err := h.Settings.Load(); err != nil {
		return err
	}
	if err := h.Invoices.Load(); err != nil {
		return err
	}
	return h.Clients.Load()
}
