package models_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Quantity
		wantErr bool
	}{
		{"Number", `3`, 3, false},
		{"Numeric string", `"7"`, 7, false},
		{"Padded string", `" 2 "`, 2, false},
		{"Negative", `-1`, -1, false},
		{"Integral float", `4.0`, 4, false},
		{"Fractional float", `2.5`, 0, true},
		{"Word", `"many"`, 0, true},
		{"Boolean", `true`, 0, true},
		{"Null", `null`, 0, true},
		{"Largest allowed", `2147483647`, models.MaxQuantity, false},
		{"Above int32", `2147483648`, 0, true},
		{"Int64 max string", `"9223372036854775807"`, 0, true},
		{"Huge float", `1e12`, 0, true},
		{"Below negative bound", `-2147483648`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q models.Quantity

			err := json.Unmarshal([]byte(tt.input), &q)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, models.ErrInvalidQuantity)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestUpdateCartRequestDecode(t *testing.T) {
	pid := uuid.New()
	body := `{"products":[{"product_id":"` + pid.String() + `","quantity":"5"}]}`

	var req models.UpdateCartRequest

	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Products, 1)
	assert.Equal(t, pid.String(), req.Products[0].ProductID)
	assert.Equal(t, models.Quantity(5), req.Products[0].Quantity)
}

func TestCartIndexOf(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cart := &models.Cart{Items: []models.LineItem{{ProductID: a, Quantity: 1}, {ProductID: b, Quantity: 2}}}

	assert.Equal(t, 0, cart.IndexOf(a))
	assert.Equal(t, 1, cart.IndexOf(b))
	assert.Equal(t, -1, cart.IndexOf(uuid.New()))
}
