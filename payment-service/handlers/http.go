package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/northmart/commerce-platform/payment-service/application"
	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/pkg/errors"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	createPayment  *application.CreatePayment
	getPayment     *application.GetPayment
	processPayment *application.ProcessPayment
	confirmPayment *application.ConfirmPayment
	failPayment    *application.FailPayment
	issueRefund    *application.IssueRefund
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(
	createPayment *application.CreatePayment,
	getPayment *application.GetPayment,
	processPayment *application.ProcessPayment,
	confirmPayment *application.ConfirmPayment,
	failPayment *application.FailPayment,
	issueRefund *application.IssueRefund,
) *PaymentHandlers {
	return &PaymentHandlers{
		createPayment:  createPayment,
		getPayment:     getPayment,
		processPayment: processPayment,
		confirmPayment: confirmPayment,
		failPayment:    failPayment,
		issueRefund:    issueRefund,
	}
}

// CreatePayment handles payment creation requests
func (h *PaymentHandlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreatePaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createPayment.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetPayment handles payment retrieval requests
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		http.Error(w, "Payment ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getPayment.Execute(r.Context(), &application.GetPaymentQuery{
		PaymentID: paymentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ProcessPayment marks a payment as submitted to the gateway
func (h *PaymentHandlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	cmd := application.ProcessPaymentCommand{
		PaymentID: chi.URLParam(r, "id"),
	}

	if err := h.processPayment.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmPayment handles gateway confirmation callbacks
func (h *PaymentHandlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.ConfirmPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.PaymentID = chi.URLParam(r, "id")

	if err := h.confirmPayment.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FailPayment handles gateway failure callbacks
func (h *PaymentHandlers) FailPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.FailPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.PaymentID = chi.URLParam(r, "id")

	if err := h.failPayment.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IssueRefund handles refund requests
func (h *PaymentHandlers) IssueRefund(w http.ResponseWriter, r *http.Request) {
	var cmd application.IssueRefundCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.PaymentID = chi.URLParam(r, "id")

	response, err := h.issueRefund.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.CreatePayment)
		r.Get("/{id}", h.GetPayment)
		r.Post("/{id}/process", h.ProcessPayment)
		r.Post("/{id}/confirm", h.ConfirmPayment)
		r.Post("/{id}/fail", h.FailPayment)
		r.Post("/{id}/refunds", h.IssueRefund)
	})
}

// writeError maps domain errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflictingConfirmation),
		errors.Is(err, domain.ErrRefundExceedsBalance):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
