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
	"github.com/rechnung-app/rechnung/internal/pdf"
	"github.com/rechnung-app/rechnung/internal/services"
	"github.com/rechnung-app/rechnung/internal/view"
)

// InvoiceHandler exposes the invoice store plus the two document
// projections (PDF download and HTML preview).
type InvoiceHandler struct {
	Invoices *services.InvoiceService
	Clients  *services.ClientService
	Settings *services.SettingsService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewInvoiceHandler(invoices *services.InvoiceService, clients *services.ClientService, settings *services.SettingsService) *InvoiceHandler {
	return &InvoiceHandler{
		Invoices: invoices,
		Clients:  clients,
		Settings: settings,
		validate: validator.New(),
		log:      logger.WithComponent("invoices"),
	}
}

type lineItemReq struct {
	ID             string  `json:"id"`
	Description    string  `json:"description" validate:"required"`
	SubDescription string  `json:"subDescription"`
	Quantity       float64 `json:"quantity" validate:"gte=0"`
	Unit           string  `json:"unit" validate:"required"`
	UnitPrice      float64 `json:"unitPrice" validate:"gte=0"`
}

type invoiceReq struct {
	ID                 string        `json:"id"`
	InvoiceNumber      string        `json:"invoiceNumber" validate:"required"`
	Date               string        `json:"date" validate:"required,datetime=2006-01-02"`
	ServicePeriodStart string        `json:"servicePeriodStart" validate:"required,datetime=2006-01-02"`
	ServicePeriodEnd   string        `json:"servicePeriodEnd" validate:"required,datetime=2006-01-02"`
	ClientID           string        `json:"clientId" validate:"required"`
	LineItems          []lineItemReq `json:"lineItems" validate:"required,min=1,dive"`
	VATRate            float64       `json:"vatRate" validate:"gte=0"`
	PaymentTerms       int           `json:"paymentTerms" validate:"gte=0"`
	Status             string        `json:"status" validate:"required,oneof=draft pending paid"`
	Notes              string        `json:"notes"`
}

// toModel builds the invoice record, snapshotting the referenced client at
// save time. Derived fields are left zero; the store recomputes them.
func (h *InvoiceHandler) toModel(req invoiceReq) (models.Invoice, error) {
	client, err := h.Clients.Get(req.ClientID)
	if err != nil {
		return models.Invoice{}, err
	}
	items := make([]models.LineItem, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, models.LineItem{
			ID:             id,
			Description:    it.Description,
			SubDescription: it.SubDescription,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			UnitPrice:      it.UnitPrice,
		})
	}
	return models.Invoice{
		ID:                 req.ID,
		InvoiceNumber:      req.InvoiceNumber,
		Date:               req.Date,
		ServicePeriodStart: req.ServicePeriodStart,
		ServicePeriodEnd:   req.ServicePeriodEnd,
		ClientID:           req.ClientID,
		Client:             client,
		LineItems:          items,
		VATRate:            req.VATRate,
		PaymentTerms:       req.PaymentTerms,
		Status:             models.InvoiceStatus(req.Status),
		Notes:              req.Notes,
	}, nil
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs := h.Invoices.All()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
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
	inv, err := h.toModel(req)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_client", nil)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("resolve client")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	saved, err := h.Invoices.Add(inv)
	if err != nil {
		h.log.Error().Err(err).Str("invoice", req.InvoiceNumber).Msg("persist invoice")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	if err := h.Clients.RefreshTotals(h.Invoices.All()); err != nil {
		h.log.Error().Err(err).Msg("refresh client totals")
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

// Update: POST /invoices/update
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
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
	inv, err := h.toModel(req)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_client", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	saved, err := h.Invoices.Update(inv)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", req.ID).Msg("persist invoice update")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	if err := h.Clients.RefreshTotals(h.Invoices.All()); err != nil {
		h.log.Error().Err(err).Msg("refresh client totals")
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: POST /invoices/delete?id=...
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Invoices.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("delete invoice")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	if err := h.Clients.RefreshTotals(h.Invoices.All()); err != nil {
		h.log.Error().Err(err).Msg("refresh client totals")
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	inv, err := h.Invoices.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// MarkPaid: POST /invoices/paid?id=...
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Invoices.MarkAsPaid(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("mark invoice paid")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_mark_paid", nil)
		return
	}
	if err := h.Clients.RefreshTotals(h.Invoices.All()); err != nil {
		h.log.Error().Err(err).Msg("refresh client totals")
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// NextNumber: GET /invoices/next-number
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	n := h.Invoices.NextNumber(h.Settings.Get())
	httpx.JSON(w, http.StatusOK, map[string]string{"invoiceNumber": n})
}

// PDF: GET /invoices/pdf?id=...
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	inv, err := h.Invoices.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	data, err := pdf.Render(inv, h.Settings.Get())
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("generate pdf")
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(inv)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Preview: GET /invoices/preview?id=...
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	inv, err := h.Invoices.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, inv, h.Settings.Get()); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("render preview")
	}
}
