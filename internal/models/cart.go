package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxQuantity matches the INTEGER stock column; larger quantities can never be fulfilled.
const MaxQuantity = math.MaxInt32

var ErrInvalidQuantity = errors.New("quantity must be an integer")

type LineItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IndexOf returns the position of the line item for productID, or -1.
func (c *Cart) IndexOf(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

// Product is nil when the referenced product no longer exists.
type CartItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product"`
}

type CartView struct {
	ID        uuid.UUID      `json:"id"`
	Items     []CartItemView `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CreateCartResponse struct {
	CartID uuid.UUID `json:"cid"`
}

// A missing quantity means one unit.
type AddToCartRequest struct {
	Quantity *Quantity `json:"quantity,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity *Quantity `json:"quantity" validate:"required"`
}

// Quantity accepts a JSON number or a numeric string, e.g. 3 or "3".
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))

	if raw == "null" {
		return fmt.Errorf("%w: got null", ErrInvalidQuantity)
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > MaxQuantity {
			return fmt.Errorf("%w: got %s", ErrInvalidQuantity, string(data))
		}

		n = int64(f)
	}

	if n > MaxQuantity || n < -MaxQuantity {
		return fmt.Errorf("%w: %s is out of range", ErrInvalidQuantity, raw)
	}

	*q = Quantity(n)

	return nil
}

type LineItemInput struct {
	ProductID string   `json:"product_id" validate:"required"`
	Quantity  Quantity `json:"quantity"`
}

type UpdateCartRequest struct {
	Products []LineItemInput `json:"products" validate:"dive"`
}

var _ json.Unmarshaler = (*Quantity)(nil)
