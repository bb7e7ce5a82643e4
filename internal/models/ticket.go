package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the receipt of a finalized purchase. Inserted once, never updated.
type Ticket struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	PurchaseDatetime time.Time       `json:"purchase_datetime"`
	Amount           decimal.Decimal `json:"amount"`
	Purchaser        string          `json:"purchaser"`
}

// Title is empty when the product could not be found.
type FailedProduct struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type PurchaseResult struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TicketID       *uuid.UUID      `json:"ticket_id"`
	TicketCode     string          `json:"ticket_code,omitempty"`
	FailedProducts []FailedProduct `json:"failed_products"`
}

// FulfilledItem is a line item whose stock decrement succeeded.
type FulfilledItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type PurchaseCompletedEvent struct {
	CartID     uuid.UUID       `json:"cart_id"`
	TicketID   uuid.UUID       `json:"ticket_id"`
	TicketCode string          `json:"ticket_code"`
	Purchaser  string          `json:"purchaser"`
	Amount     decimal.Decimal `json:"amount"`
	Items      []FulfilledItem `json:"items"`
	OccurredAt time.Time       `json:"occurred_at"`
}
