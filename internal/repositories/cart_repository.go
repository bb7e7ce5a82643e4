package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// GetCartForUpdate row-locks the cart until the surrounding transaction ends.
	GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	ListCarts(ctx context.Context) ([]*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

const cartColumns = `id, items, created_at, updated_at`

func marshalItems(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return itemsJSON, nil
}

func scanCart(row interface{ Scan(dest ...any) error }) (*models.Cart, error) {
	cart := &models.Cart{}

	var itemsJSON []byte

	if err := row.Scan(&cart.ID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.LineItem{}
	}

	return cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (items, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, itemsJSON).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *cartRepository) GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1 FOR UPDATE`, id)
}

func (r *cartRepository) getCart(ctx context.Context, query string, id uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart, err := scanCart(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) ListCarts(ctx context.Context) ([]*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT `+cartColumns+` FROM carts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	carts := []*models.Cart{}

	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			return nil, err
		}

		carts = append(carts, cart)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return carts, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `UPDATE carts SET items = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`

	if err := r.DB.QueryRowContext(dbCtx, query, itemsJSON, cart.ID).Scan(&cart.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrNotFound
	}

	return nil
}
