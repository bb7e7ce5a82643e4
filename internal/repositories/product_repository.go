package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	// DecrementStock takes quantity units only if that many are in stock.
	// ok is false, with a nil error, when the product is missing or short.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (product *models.Product, ok bool, err error)
}

type productRepository struct {
	DB DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, title, description, price, stock, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	product := &models.Product{}

	err := row.Scan(&product.ID, &product.Title, &product.Description, &product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (title, description, price, stock) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.Title, product.Description, product.Price, product.Stock).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}

	return product, nil
}

// GetProductsByIDs returns the products that exist, in no particular order.
func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Product, error) {
	if len(ids) == 0 {
		return []*models.Product{}, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	rows, err := r.DB.QueryContext(dbCtx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	products := make([]*models.Product, 0, len(ids))

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET title = $1, description = $2, price = $3, stock = $4, updated_at = NOW() WHERE id = $5 RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.Title, product.Description, product.Price, product.Stock, product.ID).Scan(&product.UpdatedAt)

	return notFound(err)
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	rows, err := r.DB.QueryContext(dbCtx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, bool, error) {
	// stock is an INTEGER column, so a larger quantity can never be in stock
	if quantity > models.MaxQuantity {
		return nil, false, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1 RETURNING ` + productColumns

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, quantity, id))
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return product, true, nil
}
