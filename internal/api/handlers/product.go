package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	service "github.com/aaravmahajanofficial/cart-checkout-service/internal/services"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a new product
//	@Description	Adds a product to the catalogue with its price and initial stock.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product				"Successfully created product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Tags			Products
//	@Produce		json
//	@Param			pid	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Product			"Successfully retrieved product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{pid} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("pid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("productId", productID))

		product, err := h.productService.GetProductByID(r.Context(), productID)
		if err != nil {
			logger.Warn("Failed to get product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//	@Summary		Update a product
//	@Description	Updates only the fields present in the body.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			pid		path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to update"
//	@Success		200		{object}	models.Product				"Successfully updated product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or invalid ID"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/products/{pid} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("pid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("productId", productID))

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully")
		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//	@Summary		List products with pagination
//	@Tags			Products
//	@Produce		json
//	@Param			page	query		int												false	"Page number (default: 1)"					minimum(1)
//	@Param			size	query		int												false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200		{object}	models.PaginatedResponse{Data=[]models.Product}	"Successfully retrieved products"
//	@Failure		500		{object}	response.ErrorResponse							"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := utils.PageParams(r)

		products, total, err := h.productService.ListProducts(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to fetch products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.NewPaginatedResponse(products, total, page, size))
	}
}
