package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/cache"
	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, productID string) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID string, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, appErrors.InvalidArgumentError("Price must not be negative")
	}

	title := plainText(req.Title)
	if title == "" {
		return nil, appErrors.InvalidArgumentError("Title must contain text")
	}

	product := &models.Product{
		Title:       title,
		Description: plainText(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.StorageError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*models.Product, error) {

	id, err := utils.ParseID(productID, "product")
	if err != nil {
		return nil, err
	}

	products, err := resolveProducts(ctx, s.repo, s.cache, []uuid.UUID{id})
	if err != nil {
		return nil, appErrors.StorageError("Failed to fetch product").WithError(err)
	}

	product, ok := products[id]
	if !ok {
		return nil, productNotFound(id)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *models.UpdateProductRequest) (*models.Product, error) {

	id, err := utils.ParseID(productID, "product")
	if err != nil {
		return nil, err
	}

	if req.Price != nil && req.Price.IsNegative() {
		return nil, appErrors.InvalidArgumentError("Price must not be negative")
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, productNotFound(id)
		}
		return nil, appErrors.StorageError("Failed to fetch product").WithError(err)
	}

	if req.Title != nil {
		title := plainText(*req.Title)
		if title == "" {
			return nil, appErrors.InvalidArgumentError("Title must contain text")
		}
		product.Title = title
	}
	if req.Description != nil {
		product.Description = plainText(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, productNotFound(id)
		}
		return nil, appErrors.StorageError("Failed to update product").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache",
			slog.String("product_id", id.String()), slog.String("error", err.Error()))
	}

	return product, nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.StorageError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// resolveProducts looks ids up in the cache first and fetches the misses in
// one query. Ids that match no product are absent from the map. Cache
// failures are logged and treated as misses.
func resolveProducts(ctx context.Context, repo repository.ProductRepository, c cache.Cache, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {

	log := middleware.LoggerFromContext(ctx)
	found := make(map[uuid.UUID]*models.Product, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var misses []uuid.UUID

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		var product models.Product
		hit, err := c.Get(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), &product)
		if err != nil {
			log.Warn("Product cache read failed", slog.String("product_id", id.String()), slog.String("error", err.Error()))
		}

		if hit {
			found[id] = &product
			continue
		}

		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return found, nil
	}

	products, err := repo.GetProductsByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		found[product.ID] = product

		if err := c.Set(ctx, cache.Key(cache.ProductKeyPrefix, product.ID.String()), product, 0); err != nil {
			log.Warn("Product cache write failed", slog.String("product_id", product.ID.String()), slog.String("error", err.Error()))
		}
	}

	return found, nil
}
