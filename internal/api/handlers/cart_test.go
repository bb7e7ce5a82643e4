package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/services/mocks"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleCart(items ...models.LineItem) *models.Cart {
	if items == nil {
		items = []models.LineItem{}
	}

	return &models.Cart{ID: uuid.New(), Items: items, CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func TestCreateCart(t *testing.T) {
	t.Run("Success - Cart Created", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		cart := sampleCart()

		mockCartService.On("CreateCart", mock.Anything).Return(cart, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/carts", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.CreateCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var created models.CreateCartResponse
		resp := testutils.DecodeResponse(t, rr, &created)
		assert.True(t, resp.Success)
		assert.Equal(t, cart.ID, created.CartID)
	})

	t.Run("Failure - Storage Error Hides Detail", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("CreateCart", mock.Anything).
			Return(nil, appErrors.StorageError("Failed to create cart").WithDetail("pq: relation carts does not exist")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/carts", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.CreateCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeStorage, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
		assert.NotContains(t, rr.Body.String(), "pq:")
	})
}

func TestListCarts(t *testing.T) {
	mockCartService := mocks.NewCartService(t)
	cartHandler := handlers.NewCartHandler(mockCartService)
	carts := []*models.Cart{sampleCart(), sampleCart()}

	mockCartService.On("ListCarts", mock.Anything).Return(carts, nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts", nil, nil)
	rr := httptest.NewRecorder()

	cartHandler.ListCarts().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var listed []models.Cart
	testutils.DecodeResponse(t, rr, &listed)
	assert.Len(t, listed, 2)
}

func TestGetCart(t *testing.T) {
	t.Run("Success - Resolved View", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		product := &models.Product{ID: uuid.New(), Title: "Lamp", Price: decimal.NewFromInt(12)}
		view := &models.CartView{
			ID: uuid.New(),
			Items: []models.CartItemView{
				{ProductID: product.ID, Quantity: 2, Product: product},
				{ProductID: uuid.New(), Quantity: 1},
			},
		}

		mockCartService.On("GetCart", mock.Anything, view.ID.String()).Return(view, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts/"+view.ID.String(), nil, map[string]string{"cid": view.ID.String()})
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"product":null`)

		var got models.CartView
		testutils.DecodeResponse(t, rr, &got)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Lamp", got.Items[0].Product.Title)
		assert.Nil(t, got.Items[1].Product)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("GetCart", mock.Anything, "abc").Return(nil, appErrors.InvalidIDError("cart", "abc")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts/abc", nil, map[string]string{"cid": "abc"})
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInvalidArgument, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		id := uuid.NewString()

		mockCartService.On("GetCart", mock.Anything, id).Return(nil, appErrors.NotFoundError("Cart "+id+" not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts/"+id, nil, map[string]string{"cid": id})
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})
}

func TestUpdateCartProducts(t *testing.T) {
	t.Run("Success - Coerces Quantities", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		cart := sampleCart()
		a, b := uuid.NewString(), uuid.NewString()
		body := `{"products":[{"product_id":"` + a + `","quantity":"2"},{"product_id":"` + b + `","quantity":3}]}`

		mockCartService.On("UpdateCartProducts", mock.Anything, cart.ID.String(), []models.LineItemInput{
			{ProductID: a, Quantity: 2},
			{ProductID: b, Quantity: 3},
		}).Return(cart, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/carts/"+cart.ID.String(), strings.NewReader(body), map[string]string{"cid": cart.ID.String()})
		rr := httptest.NewRecorder()

		// Act
		cartHandler.UpdateCartProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Non Numeric Quantity", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		body := `{"products":[{"product_id":"` + uuid.NewString() + `","quantity":"many"}]}`

		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/carts/x", strings.NewReader(body), map[string]string{"cid": "x"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateCartProducts().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInvalidArgument, testutils.DecodeResponse(t, rr, nil).Error.Code)
		mockCartService.AssertNotCalled(t, "UpdateCartProducts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Missing Product ID", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/carts/x", strings.NewReader(`{"products":[{"quantity":1}]}`), map[string]string{"cid": "x"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateCartProducts().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})
}

func TestEmptyCart(t *testing.T) {
	mockCartService := mocks.NewCartService(t)
	cartHandler := handlers.NewCartHandler(mockCartService)
	cart := sampleCart()

	mockCartService.On("EmptyCart", mock.Anything, cart.ID.String()).Return(cart, nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/carts/"+cart.ID.String(), nil, map[string]string{"cid": cart.ID.String()})
	rr := httptest.NewRecorder()

	cartHandler.EmptyCart().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Cart
	testutils.DecodeResponse(t, rr, &got)
	assert.Empty(t, got.Items)
}

func TestDeleteCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		id := uuid.NewString()

		mockCartService.On("DeleteCart", mock.Anything, id).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/carts/"+id+"/delete", nil, map[string]string{"cid": id})
		rr := httptest.NewRecorder()

		cartHandler.DeleteCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, testutils.DecodeResponse(t, rr, nil).Success)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		id := uuid.NewString()

		mockCartService.On("DeleteCart", mock.Anything, id).Return(appErrors.NotFoundError("Cart not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/carts/"+id+"/delete", nil, map[string]string{"cid": id})
		rr := httptest.NewRecorder()

		cartHandler.DeleteCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAddToCart(t *testing.T) {
	cid, pid := uuid.NewString(), uuid.NewString()
	params := map[string]string{"cid": cid, "pid": pid}
	target := "/api/v1/carts/" + cid + "/products/" + pid

	t.Run("Success - Defaults To One", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, cid, pid, 1).Return(sampleCart(), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, target, http.NoBody, params)
		rr := httptest.NewRecorder()

		cartHandler.AddToCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Explicit Quantity", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, cid, pid, 4).Return(sampleCart(), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, target, strings.NewReader(`{"quantity":4}`), params)
		rr := httptest.NewRecorder()

		cartHandler.AddToCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, cid, pid, 0).
			Return(nil, appErrors.InvalidArgumentError("Quantity must be at least 1")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, target, strings.NewReader(`{"quantity":0}`), params)
		rr := httptest.NewRecorder()

		cartHandler.AddToCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInvalidArgument, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, cid, pid, 1).
			Return(nil, appErrors.NotFoundError("Product "+pid+" not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, target, http.NoBody, params)
		rr := httptest.NewRecorder()

		cartHandler.AddToCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, testutils.DecodeResponse(t, rr, nil).Error.Message, "Product")
	})
}

func TestUpdateProductQuantity(t *testing.T) {
	cid, pid := uuid.NewString(), uuid.NewString()
	params := map[string]string{"cid": cid, "pid": pid}
	target := "/api/v1/carts/" + cid + "/products/" + pid

	t.Run("Success", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("UpdateProductQuantity", mock.Anything, cid, pid, 0).Return(sampleCart(), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, target, strings.NewReader(`{"quantity":"0"}`), params)
		rr := httptest.NewRecorder()

		cartHandler.UpdateProductQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Missing Quantity", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, target, strings.NewReader(`{}`), params)
		rr := httptest.NewRecorder()

		cartHandler.UpdateProductQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})
}

func TestDeleteProductFromCart(t *testing.T) {
	cid, pid := uuid.NewString(), uuid.NewString()
	params := map[string]string{"cid": cid, "pid": pid}

	mockCartService := mocks.NewCartService(t)
	cartHandler := handlers.NewCartHandler(mockCartService)

	mockCartService.On("DeleteProductFromCart", mock.Anything, cid, pid).
		Return(nil, appErrors.NotFoundError("Product not found in cart")).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/carts/"+cid+"/products/"+pid, nil, params)
	rr := httptest.NewRecorder()

	cartHandler.DeleteProductFromCart().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFinalizePurchase(t *testing.T) {
	cid := uuid.NewString()
	params := map[string]string{"cid": cid}
	target := "/api/v1/carts/" + cid + "/purchase"

	t.Run("Success - Complete", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		ticketID := uuid.New()
		result := &models.PurchaseResult{
			TotalAmount:    decimal.NewFromInt(20),
			TicketID:       &ticketID,
			TicketCode:     "k3j9z0q1a",
			FailedProducts: []models.FailedProduct{},
		}

		mockCartService.On("FinalizePurchase", mock.Anything, cid, testutils.TestPurchaser).Return(result, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, target, nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.PurchaseResult
		testutils.DecodeResponse(t, rr, &got)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, ticketID, *got.TicketID)
		assert.Empty(t, got.FailedProducts)
	})

	t.Run("Success - Partial Content", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		failedID := uuid.New()
		result := &models.PurchaseResult{
			TotalAmount:    decimal.Zero,
			FailedProducts: []models.FailedProduct{{ID: failedID, Title: "Gadget"}},
		}

		mockCartService.On("FinalizePurchase", mock.Anything, cid, testutils.TestPurchaser).Return(result, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, target, nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPartialContent, rr.Code)
		assert.Contains(t, rr.Body.String(), `"ticket_id":null`)

		var got models.PurchaseResult
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, []models.FailedProduct{{ID: failedID, Title: "Gadget"}}, got.FailedProducts)
	})

	t.Run("Success - Empty Cart Body", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		result := &models.PurchaseResult{
			TotalAmount:    decimal.Zero,
			FailedProducts: []models.FailedProduct{},
		}

		mockCartService.On("FinalizePurchase", mock.Anything, cid, testutils.TestPurchaser).Return(result, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, target, nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"data":{"total_amount":0,"ticket_id":null,"failed_products":[]}}`, rr.Body.String())
	})

	t.Run("Success - Amount Is A Number", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		ticketID := uuid.MustParse("7d9f3c7e-2a51-4c1b-9a7e-3f1f0b6c2d11")
		result := &models.PurchaseResult{
			TotalAmount:    decimal.RequireFromString("60.04"),
			TicketID:       &ticketID,
			TicketCode:     "k3j9z0q1a",
			FailedProducts: []models.FailedProduct{},
		}

		mockCartService.On("FinalizePurchase", mock.Anything, cid, testutils.TestPurchaser).Return(result, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, target, nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"data":{"total_amount":60.04,"ticket_id":"7d9f3c7e-2a51-4c1b-9a7e-3f1f0b6c2d11","ticket_code":"k3j9z0q1a","failed_products":[]}}`, rr.Body.String())
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, target, nil, params)
		rr := httptest.NewRecorder()

		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, testutils.DecodeResponse(t, rr, nil).Error.Code)
		mockCartService.AssertNotCalled(t, "FinalizePurchase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("FinalizePurchase", mock.Anything, cid, testutils.TestPurchaser).
			Return(nil, appErrors.StorageError("Failed to finalize purchase")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, target, nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		cartHandler.FinalizePurchase().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeStorage, testutils.DecodeResponse(t, rr, nil).Error.Code)
	})
}
