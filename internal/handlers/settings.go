package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rechnung-app/rechnung/internal/httpx"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/services"
)

// SettingsHandler exposes the singleton settings record. The store takes any
// type-shaped record; legal completeness is checked by the UI before it
// allows a document download, not here.
type SettingsHandler struct {
	Settings *services.SettingsService
	log      zerolog.Logger
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: settings, log: logger.WithComponent("settings")}
}

// Get: GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Settings.Get())
}

// Update: PUT /settings (whole-record replace)
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var set models.BusinessSettings
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Settings.Update(set); err != nil {
		h.log.Error().Err(err).Msg("persist settings")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Settings.Get())
}

// Reset: POST /settings/reset
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Settings.Reset(); err != nil {
		h.log.Error().Err(err).Msg("reset settings")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_reset_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Settings.Get())
}
