package models

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           string      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	Phone        *string     `json:"phone" db:"phone"`
	Address      *string     `json:"address" db:"address"`
	ProductName  string      `json:"product_name" db:"product_name"`
	ProductPrice int64       `json:"product_price" db:"product_price"`
	Status       OrderStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type OrderReply struct {
	ID      string    `json:"id" db:"id"`
	OrderID string    `json:"order_id" db:"order_id"`
	Message string    `json:"message" db:"message"`
	SentAt  time.Time `json:"sent_at" db:"sent_at"`
}

type NotificationType string

const (
	TypeOrder   NotificationType = "order"
	TypeContact NotificationType = "contact"
	TypeReply   NotificationType = "reply"
)

// EmailRequest is the inbound body for the /send endpoint. Which fields are
// required depends on Type.
type EmailRequest struct {
	Type         NotificationType `json:"type"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	Subject      *string          `json:"subject,omitempty"`
	Message      *string          `json:"message,omitempty"`
	ProductName  *string          `json:"productName,omitempty"`
	ProductPrice *int64           `json:"productPrice,omitempty"`
	OrderID      *string          `json:"orderId,omitempty"`
}
