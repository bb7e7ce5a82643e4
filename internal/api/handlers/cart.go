package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	service "github.com/aaravmahajanofficial/cart-checkout-service/internal/services"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// CreateCart godoc
//	@Summary		Create a cart
//	@Description	Creates an empty cart and returns its id.
//	@Tags			Carts
//	@Produce		json
//	@Success		201	{object}	models.CreateCartResponse	"Cart created"
//	@Failure		500	{object}	response.ErrorResponse		"Internal server error"
//	@Router			/carts [post]
func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.CreateCart(r.Context())
		if err != nil {
			logger.Error("Failed to create cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart created successfully", slog.String("cartId", cart.ID.String()))
		response.Success(w, http.StatusCreated, models.CreateCartResponse{CartID: cart.ID})
	}
}

// ListCarts godoc
//	@Summary		List carts
//	@Description	Returns every cart with unresolved product ids.
//	@Tags			Carts
//	@Produce		json
//	@Success		200	{array}		models.Cart				"Carts"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts [get]
func (h *CartHandler) ListCarts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		carts, err := h.cartService.ListCarts(r.Context())
		if err != nil {
			logger.Error("Failed to list carts", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Carts listed", slog.Int("count", len(carts)))
		response.Success(w, http.StatusOK, carts)
	}
}

// GetCart godoc
//	@Summary		Get a cart
//	@Description	Returns a cart with each line item's product resolved. A product that no longer exists is null.
//	@Tags			Carts
//	@Produce		json
//	@Param			cid	path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.CartView			"Cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid} [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("cid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("cartId", cartID))

		cart, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			logger.Warn("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateCartProducts godoc
//	@Summary		Replace cart contents
//	@Description	Replaces every line item. Order is kept, duplicates are not merged and quantities of zero or less are dropped.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			cid		path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Param			body	body		models.UpdateCartRequest	true	"New line items"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid ID or quantity"
//	@Failure		404		{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid} [put]
func (h *CartHandler) UpdateCartProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("cid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("cartId", cartID))

		var req models.UpdateCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart contents")
			return
		}

		cart, err := h.cartService.UpdateCartProducts(r.Context(), cartID, req.Products)
		if err != nil {
			logger.Warn("Failed to replace cart contents", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart contents replaced", slog.Int("items", len(cart.Items)))
		response.Success(w, http.StatusOK, cart)
	}
}

// EmptyCart godoc
//	@Summary		Empty a cart
//	@Description	Removes every line item. The cart itself is kept.
//	@Tags			Carts
//	@Produce		json
//	@Param			cid	path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Cart				"Emptied cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid} [delete]
func (h *CartHandler) EmptyCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("cid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("cartId", cartID))

		cart, err := h.cartService.EmptyCart(r.Context(), cartID)
		if err != nil {
			logger.Warn("Failed to empty cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart emptied")
		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteCart godoc
//	@Summary		Delete a cart
//	@Tags			Carts
//	@Produce		json
//	@Param			cid	path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Success		200	{object}	response.APIResponse	"Cart deleted"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid}/delete [delete]
func (h *CartHandler) DeleteCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("cid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("cartId", cartID))

		if err := h.cartService.DeleteCart(r.Context(), cartID); err != nil {
			logger.Warn("Failed to delete cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart deleted")
		response.Success(w, http.StatusOK, map[string]string{"message": "Cart deleted"})
	}
}

// AddToCart godoc
//	@Summary		Add a product to a cart
//	@Description	Adds quantity units (default 1). An existing line for the product is incremented. Stock is not checked.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			cid		path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Param			pid		path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Param			body	body		models.AddToCartRequest	false	"Quantity to add"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid ID or quantity"
//	@Failure		404		{object}	response.ErrorResponse	"Cart or product not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid}/products/{pid} [post]
func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, productID := r.PathValue("cid"), r.PathValue("pid")
		logger := middleware.LoggerFromContext(r.Context()).With(
			slog.String("cartId", cartID),
			slog.String("productId", productID),
		)

		var req models.AddToCartRequest
		if !utils.ParseAndValidateOptional(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = int(*req.Quantity)
		}

		cart, err := h.cartService.AddToCart(r.Context(), cartID, productID, quantity)
		if err != nil {
			logger.Warn("Failed to add product to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product added to cart", slog.Int("quantity", quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateProductQuantity godoc
//	@Summary		Set a line item's quantity
//	@Description	Sets the quantity exactly. Zero or less removes the line.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			cid		path		string						true	"Cart ID (UUID)"	Format(uuid)
//	@Param			pid		path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Param			body	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid ID or quantity"
//	@Failure		404		{object}	response.ErrorResponse		"Cart not found or product not in cart"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/carts/{cid}/products/{pid} [put]
func (h *CartHandler) UpdateProductQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, productID := r.PathValue("cid"), r.PathValue("pid")
		logger := middleware.LoggerFromContext(r.Context()).With(
			slog.String("cartId", cartID),
			slog.String("productId", productID),
		)

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid quantity input")
			return
		}

		cart, err := h.cartService.UpdateProductQuantity(r.Context(), cartID, productID, int(*req.Quantity))
		if err != nil {
			logger.Warn("Failed to update quantity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Quantity updated", slog.Int("quantity", int(*req.Quantity)))
		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteProductFromCart godoc
//	@Summary		Remove one unit of a product
//	@Description	Decrements the line by one, removing it when it reaches zero.
//	@Tags			Carts
//	@Produce		json
//	@Param			cid	path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Param			pid	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Cart				"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found or product not in cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts/{cid}/products/{pid} [delete]
func (h *CartHandler) DeleteProductFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, productID := r.PathValue("cid"), r.PathValue("pid")
		logger := middleware.LoggerFromContext(r.Context()).With(
			slog.String("cartId", cartID),
			slog.String("productId", productID),
		)

		cart, err := h.cartService.DeleteProductFromCart(r.Context(), cartID, productID)
		if err != nil {
			logger.Warn("Failed to remove product from cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product removed from cart")
		response.Success(w, http.StatusOK, cart)
	}
}

// FinalizePurchase godoc
//	@Summary		Check out a cart
//	@Description	Buys every line item that is fully in stock and issues a ticket for the total. Lines that could not be fulfilled stay in the cart and are listed in failed_products. Requires authentication; the token's email is the purchaser.
//	@Tags			Carts
//	@Produce		json
//	@Param			cid	path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.PurchaseResult	"Every line fulfilled"
//	@Success		206	{object}	models.PurchaseResult	"Some lines could not be fulfilled"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/carts/{cid}/purchase [post]
func (h *CartHandler) FinalizePurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("cid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("cartId", cartID))

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized purchase attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}
		logger = logger.With(slog.String("userID", claims.UserID.String()))

		result, err := h.cartService.FinalizePurchase(r.Context(), cartID, claims.Email)
		if err != nil {
			logger.Error("Failed to finalize purchase", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		status := http.StatusOK
		if len(result.FailedProducts) > 0 {
			status = http.StatusPartialContent
		}

		logger.Info("Purchase processed",
			slog.String("total", result.TotalAmount.String()),
			slog.Int("failed", len(result.FailedProducts)),
		)
		response.Success(w, status, result)
	}
}
