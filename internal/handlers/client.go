package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rechnung-app/rechnung/internal/httpx"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/services"
)

// ClientHandler exposes client CRUD. The referential-integrity refusal lives
// here: the store itself deletes unconditionally, but the boundary refuses
// to delete a client any invoice still references.
type ClientHandler struct {
	Clients  *services.ClientService
	Invoices *services.InvoiceService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewClientHandler(clients *services.ClientService, invoices *services.InvoiceService) *ClientHandler {
	return &ClientHandler{
		Clients:  clients,
		Invoices: invoices,
		validate: validator.New(),
		log:      logger.WithComponent("clients"),
	}
}

type clientReq struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Street     string `json:"street" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	City       string `json:"city" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	cs := h.Clients.All()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": cs, "total": len(cs)})
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	c := models.Client{ID: req.ID, Name: req.Name, Street: req.Street, PostalCode: req.PostalCode, City: req.City, Email: req.Email}
	saved, err := h.Clients.Add(c)
	if err != nil {
		h.log.Error().Err(err).Str("client", req.Name).Msg("persist client")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

// Update: POST /clients/update
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	existing, err := h.Clients.Get(req.ID)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	c := models.Client{ID: req.ID, Name: req.Name, Street: req.Street, PostalCode: req.PostalCode, City: req.City, Email: req.Email, TotalInvoiced: existing.TotalInvoiced}
	saved, err := h.Clients.Update(c)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", req.ID).Msg("persist client update")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: POST /clients/delete?id=...
// Refused with 409 while any invoice, drafts included, references the client.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if h.Invoices.HasInvoicesFor(id) {
		httpx.JSONError(w, http.StatusConflict, "client_has_invoices", nil)
		return
	}
	if err := h.Clients.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("delete client")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Get: GET /clients/get?id=...
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	c, err := h.Clients.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}
