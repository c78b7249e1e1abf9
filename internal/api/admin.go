package api

import (
	"encoding/json"
	"net/http"

	"aphonix-notify/internal/models"
)

// ListOrders returns all orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	orders, err := h.Store.ListOrders(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, http.StatusOK, response{Success: true, Data: orders})
}

// UpdateOrderStatus moves an order through the fulfilment states.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OrderID string             `json:"orderId"`
		Status  models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.OrderID == "" {
		h.fail(w, http.StatusBadRequest, "orderId is required")
		return
	}
	if !models.ValidStatus(req.Status) {
		h.fail(w, http.StatusBadRequest, "unknown order status")
		return
	}

	if err := h.Store.UpdateOrderStatus(r.Context(), req.OrderID, req.Status); err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, http.StatusOK, response{Success: true})
}

// ListContactMessages returns all contact-form submissions, newest first.
// Messages are read-only for admins.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	msgs, err := h.Store.ListContactMessages(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, http.StatusOK, response{Success: true, Data: msgs})
}

// ListOrderReplies returns the reply audit trail for one order.
func (h *Handler) ListOrderReplies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		h.fail(w, http.StatusBadRequest, "orderId query parameter is required")
		return
	}

	replies, err := h.Store.ListOrderReplies(r.Context(), orderID)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, http.StatusOK, response{Success: true, Data: replies})
}

// MegaSale reads or toggles the storefront sale-mode flag.
func (h *Handler) MegaSale(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodGet:
		enabled, err := h.Store.MegaSale(r.Context())
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.respond(w, http.StatusOK, response{Success: true, Data: map[string]bool{"enabled": enabled}})

	case http.MethodPut:
		var req struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.Store.SetMegaSale(r.Context(), req.Enabled); err != nil {
			h.fail(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.respond(w, http.StatusOK, response{Success: true, Data: map[string]bool{"enabled": req.Enabled}})

	default:
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
