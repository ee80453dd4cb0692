package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/northmart/commerce-platform/order-service/application"
	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/pkg/errors"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	createOrder  *application.CreateOrder
	getOrder     *application.GetOrder
	shipOrder    *application.ShipOrder
	deliverOrder *application.DeliverOrder
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	createOrder *application.CreateOrder,
	getOrder *application.GetOrder,
	shipOrder *application.ShipOrder,
	deliverOrder *application.DeliverOrder,
) *OrderHandlers {
	return &OrderHandlers{
		createOrder:  createOrder,
		getOrder:     getOrder,
		shipOrder:    shipOrder,
		deliverOrder: deliverOrder,
	}
}

// CreateOrder handles order creation requests
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetOrder handles order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	order, err := h.getOrder.Execute(r.Context(), &application.GetOrderQuery{
		OrderID: orderID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// ShipOrder handles shipping requests
func (h *OrderHandlers) ShipOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.ShipOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.OrderID = chi.URLParam(r, "id")

	if err := h.shipOrder.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeliverOrder handles delivery confirmation requests
func (h *OrderHandlers) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	cmd := application.DeliverOrderCommand{
		OrderID: chi.URLParam(r, "id"),
	}

	if err := h.deliverOrder.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/ship", h.ShipOrder)
		r.Post("/{id}/deliver", h.DeliverOrder)
	})
}

// writeError maps domain errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrOrderAlreadyProgressed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
