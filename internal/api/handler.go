package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"aphonix-notify/internal/auth"
	"aphonix-notify/internal/email"
	"aphonix-notify/internal/metrics"
	"aphonix-notify/internal/models"
	"aphonix-notify/internal/render"
)

// Store is the persistence surface the handlers need. *db.Store satisfies it;
// tests substitute fakes.
type Store interface {
	InsertOrder(ctx context.Context, o *models.Order) error
	InsertContactMessage(ctx context.Context, m *models.ContactMessage) error
	InsertOrderReply(ctx context.Context, r *models.OrderReply) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	ListOrderReplies(ctx context.Context, orderID string) ([]models.OrderReply, error)
	MegaSale(ctx context.Context) (bool, error)
	SetMegaSale(ctx context.Context, enabled bool) error
}

type Handler struct {
	Store    Store
	Mailer   email.Mailer
	Sessions *auth.Sessions
	Log      *zap.Logger

	From          string
	OperatorInbox string
}

type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SendNotification is the dispatch entry point: it validates the typed
// request, performs the kind-specific persistence, renders the email and
// sends it. Persistence failures on the order/contact path are logged and
// swallowed; an email dispatch failure is fatal to the request.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()

	var (
		rendered render.Email
		to       []string
		err      error
	)

	switch req.Type {

	case models.TypeOrder:
		if req.Name == "" || req.Email == "" || req.ProductName == nil || *req.ProductName == "" || req.ProductPrice == nil {
			h.fail(w, http.StatusInternalServerError, "order notifications require name, email, productName and productPrice")
			return
		}
		if *req.ProductPrice < 0 {
			h.fail(w, http.StatusInternalServerError, "productPrice must be non-negative")
			return
		}

		order := &models.Order{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			ProductName:  *req.ProductName,
			ProductPrice: *req.ProductPrice,
			Status:       models.StatusPending,
		}
		if insertErr := h.Store.InsertOrder(ctx, order); insertErr != nil {
			// Non-fatal: the operator notification still goes out.
			h.Log.Error("failed to persist order", zap.Error(insertErr))
			metrics.PersistenceFailures.Inc()
		}

		rendered, err = render.Order(req.Name, req.Email, req.Phone, req.Address, *req.ProductName, *req.ProductPrice)
		to = []string{h.OperatorInbox}

	case models.TypeContact:
		if req.Name == "" || req.Email == "" || req.Message == nil || *req.Message == "" {
			h.fail(w, http.StatusInternalServerError, "contact notifications require name, email and message")
			return
		}

		msg := &models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: *req.Message,
		}
		if insertErr := h.Store.InsertContactMessage(ctx, msg); insertErr != nil {
			h.Log.Error("failed to persist contact message", zap.Error(insertErr))
			metrics.PersistenceFailures.Inc()
		}

		rendered, err = render.Contact(req.Name, req.Email, req.Subject, *req.Message)
		to = []string{h.OperatorInbox}

	case models.TypeReply:
		if req.Email == "" || req.Message == nil || *req.Message == "" {
			h.fail(w, http.StatusInternalServerError, "reply notifications require email and message")
			return
		}

		// The audit record is only written after the send succeeds.
		rendered, err = render.Reply(req.Name, req.Subject, *req.Message, req.OrderID)
		to = []string{req.Email}

	default:
		h.fail(w, http.StatusInternalServerError, fmt.Sprintf("unsupported notification type %q", req.Type))
		return
	}

	if err != nil {
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.NotificationsTotal.WithLabelValues(string(req.Type)).Inc()

	receipt, err := h.Mailer.Send(ctx, email.Message{
		From:    h.From,
		To:      to,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	})
	if err != nil {
		h.Log.Error("email send failed",
			zap.String("type", string(req.Type)),
			zap.Error(err),
		)
		metrics.EmailFailures.Inc()
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.EmailsSent.Inc()
	h.Log.Info("email sent successfully",
		zap.String("type", string(req.Type)),
		zap.String("message_id", receipt.ID),
	)

	if req.Type == models.TypeReply && req.OrderID != nil && *req.OrderID != "" {
		reply := &models.OrderReply{
			OrderID: *req.OrderID,
			Message: *req.Message,
		}
		if insertErr := h.Store.InsertOrderReply(ctx, reply); insertErr != nil {
			// The customer already has the email; losing the audit row is
			// logged, not surfaced.
			h.Log.Error("failed to persist order reply",
				zap.String("order_id", *req.OrderID),
				zap.Error(insertErr),
			)
			metrics.PersistenceFailures.Inc()
		}
	}

	h.respond(w, http.StatusOK, response{Success: true, Data: receipt})
}

// Health responds 200 while the process is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Login verifies the admin password and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.Sessions.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.fail(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respond(w, http.StatusOK, response{Success: true, Data: map[string]string{"token": token}})
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

func (h *Handler) respond(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Log.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, response{Success: false, Error: msg})
}
