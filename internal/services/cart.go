package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/cache"
	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/events"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/metrics"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/aaravmahajanofficial/cart-checkout-service/pkg/sendgrid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID string) (*models.CartView, error)
	ListCarts(ctx context.Context) ([]*models.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error
	EmptyCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddToCart(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error)
	DeleteProductFromCart(ctx context.Context, cartID, productID string) (*models.Cart, error)
	UpdateProductQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error)
	UpdateCartProducts(ctx context.Context, cartID string, items []models.LineItemInput) (*models.Cart, error)
	FinalizePurchase(ctx context.Context, cartID, purchaser string) (*models.PurchaseResult, error)
}

type cartService struct {
	store     repository.Store
	cache     cache.Cache
	publisher events.Publisher
	mailer    sendgrid.ReceiptMailer
	newCode   func() (string, error)
	now       func() time.Time
}

func NewCartService(store repository.Store, cache cache.Cache, publisher events.Publisher, mailer sendgrid.ReceiptMailer) CartService {
	return &cartService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		mailer:    mailer,
		newCode:   GenerateTicketCode,
		now:       time.Now,
	}
}

func (s *cartService) CreateCart(ctx context.Context) (*models.Cart, error) {

	cart := &models.Cart{Items: []models.LineItem{}}

	if err := s.store.Carts().CreateCart(ctx, cart); err != nil {
		return nil, appErrors.StorageError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, cartID string) (*models.CartView, error) {

	id, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Carts().GetCartByID(ctx, id)
	if err != nil {
		return nil, cartLookupError(id, err)
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := resolveProducts(ctx, s.store.Products(), s.cache, ids)
	if err != nil {
		return nil, appErrors.StorageError("Failed to fetch cart products").WithError(err)
	}

	view := &models.CartView{
		ID:        cart.ID,
		Items:     make([]models.CartItemView, 0, len(cart.Items)),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		view.Items = append(view.Items, models.CartItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   products[item.ProductID],
		})
	}

	return view, nil
}

func (s *cartService) ListCarts(ctx context.Context) ([]*models.Cart, error) {

	carts, err := s.store.Carts().ListCarts(ctx)
	if err != nil {
		return nil, appErrors.StorageError("Failed to fetch carts").WithError(err)
	}

	return carts, nil
}

func (s *cartService) DeleteCart(ctx context.Context, cartID string) error {

	id, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return err
	}

	if err := s.store.Carts().DeleteCart(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return cartNotFound(id)
		}
		return appErrors.StorageError("Failed to delete cart").WithError(err)
	}

	return nil
}

func (s *cartService) EmptyCart(ctx context.Context, cartID string) (*models.Cart, error) {

	id, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return nil, err
	}

	return s.mutateCart(ctx, id, func(_ repository.Store, cart *models.Cart) error {
		cart.Items = []models.LineItem{}
		return nil
	})
}

func (s *cartService) AddToCart(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {

	cid, pid, err := parseCartAndProduct(cartID, productID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return nil, appErrors.InvalidArgumentError("Quantity must be at least 1")
	}
	if quantity > models.MaxQuantity {
		return nil, quantityTooLarge()
	}

	return s.mutateCart(ctx, cid, func(tx repository.Store, cart *models.Cart) error {

		if _, err := tx.Products().GetProductByID(ctx, pid); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return productNotFound(pid)
			}
			return appErrors.StorageError("Failed to fetch product").WithError(err)
		}

		if idx := cart.IndexOf(pid); idx >= 0 {
			if cart.Items[idx].Quantity > models.MaxQuantity-quantity {
				return quantityTooLarge()
			}
			cart.Items[idx].Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.LineItem{ProductID: pid, Quantity: quantity})
		}

		return nil
	})
}

func (s *cartService) DeleteProductFromCart(ctx context.Context, cartID, productID string) (*models.Cart, error) {

	cid, pid, err := parseCartAndProduct(cartID, productID)
	if err != nil {
		return nil, err
	}

	return s.mutateCart(ctx, cid, func(_ repository.Store, cart *models.Cart) error {

		idx := cart.IndexOf(pid)
		if idx < 0 {
			return itemNotInCart(cid, pid)
		}

		if cart.Items[idx].Quantity > 1 {
			cart.Items[idx].Quantity--
		} else {
			cart.Items = slices.Delete(cart.Items, idx, idx+1)
		}

		return nil
	})
}

func (s *cartService) UpdateProductQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {

	cid, pid, err := parseCartAndProduct(cartID, productID)
	if err != nil {
		return nil, err
	}

	if quantity > models.MaxQuantity {
		return nil, quantityTooLarge()
	}

	return s.mutateCart(ctx, cid, func(_ repository.Store, cart *models.Cart) error {

		idx := cart.IndexOf(pid)
		if idx < 0 {
			return itemNotInCart(cid, pid)
		}

		if quantity <= 0 {
			cart.Items = slices.Delete(cart.Items, idx, idx+1)
		} else {
			cart.Items[idx].Quantity = quantity
		}

		return nil
	})
}

func (s *cartService) UpdateCartProducts(ctx context.Context, cartID string, items []models.LineItemInput) (*models.Cart, error) {

	cid, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return nil, err
	}

	// quantities of zero or less are dropped; duplicates are kept as sent
	replacement := make([]models.LineItem, 0, len(items))
	for _, input := range items {
		pid, err := utils.ParseID(input.ProductID, "product")
		if err != nil {
			return nil, err
		}

		if input.Quantity <= 0 {
			continue
		}
		if input.Quantity > models.MaxQuantity {
			return nil, quantityTooLarge()
		}

		replacement = append(replacement, models.LineItem{ProductID: pid, Quantity: int(input.Quantity)})
	}

	return s.mutateCart(ctx, cid, func(_ repository.Store, cart *models.Cart) error {
		cart.Items = replacement
		return nil
	})
}

func (s *cartService) FinalizePurchase(ctx context.Context, cartID, purchaser string) (*models.PurchaseResult, error) {

	purchaser = strings.TrimSpace(purchaser)
	if purchaser == "" {
		return nil, appErrors.InvalidArgumentError("Purchaser is required")
	}

	cid, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return nil, err
	}

	var (
		result    *models.PurchaseResult
		ticket    *models.Ticket
		fulfilled []models.FulfilledItem
	)

	err = s.store.WithTx(ctx, func(tx repository.Store) error {

		cart, err := tx.Carts().GetCartForUpdate(ctx, cid)
		if err != nil {
			return cartLookupError(cid, err)
		}

		total := decimal.Zero
		remaining := make([]models.LineItem, 0)
		failed := make([]models.FailedProduct, 0)
		fulfilled = fulfilled[:0]

		for _, item := range cart.Items {

			product, ok, err := tx.Products().DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return appErrors.StorageError(fmt.Sprintf("Failed to reserve stock for product %s", item.ProductID)).WithError(err)
			}

			if ok {
				total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
				fulfilled = append(fulfilled, models.FulfilledItem{
					ProductID: item.ProductID,
					Title:     product.Title,
					Quantity:  item.Quantity,
					UnitPrice: product.Price,
				})
				continue
			}

			title, err := productTitle(ctx, tx.Products(), item.ProductID)
			if err != nil {
				return appErrors.StorageError(fmt.Sprintf("Failed to fetch product %s", item.ProductID)).WithError(err)
			}

			failed = append(failed, models.FailedProduct{ID: item.ProductID, Title: title})
			remaining = append(remaining, item)
		}

		result = &models.PurchaseResult{TotalAmount: total, FailedProducts: failed}
		ticket = nil

		if total.IsPositive() {
			code, err := s.newCode()
			if err != nil {
				return appErrors.InternalError("Failed to generate ticket code").WithError(err)
			}

			ticket = &models.Ticket{
				Code:             code,
				PurchaseDatetime: s.now().UTC(),
				Amount:           total,
				Purchaser:        purchaser,
			}

			if err := tx.Tickets().CreateTicket(ctx, ticket); err != nil {
				return appErrors.StorageError("Failed to create ticket").WithError(err)
			}

			result.TicketID = &ticket.ID
			result.TicketCode = ticket.Code
		}

		cart.Items = remaining
		if err := tx.Carts().UpdateCart(ctx, cart); err != nil {
			return appErrors.StorageError("Failed to update cart").WithError(err)
		}

		return nil
	})

	if err != nil {
		metrics.RecordCheckout(metrics.OutcomeError, decimal.Zero)
		return nil, storageFallback(err, "Failed to finalize purchase")
	}

	metrics.RecordCheckout(checkoutOutcome(result), result.TotalAmount)
	metrics.RecordUnfulfilled(len(result.FailedProducts))

	if ticket != nil {
		s.afterPurchase(ctx, cid, ticket, fulfilled)
	}

	return result, nil
}

// afterPurchase runs once the checkout is committed; failures are logged only.
// It is detached from the request so a client disconnect does not drop the event.
func (s *cartService) afterPurchase(ctx context.Context, cartID uuid.UUID, ticket *models.Ticket, fulfilled []models.FulfilledItem) {

	log := middleware.LoggerFromContext(ctx)

	ctx, cancel := utils.WithDetachedTimeout(ctx, utils.SideEffectTimeout)
	defer cancel()

	keys := make([]string, 0, len(fulfilled))
	for _, item := range fulfilled {
		keys = append(keys, cache.Key(cache.ProductKeyPrefix, item.ProductID.String()))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn("Failed to invalidate product cache", slog.String("cart_id", cartID.String()), slog.String("error", err.Error()))
	}

	event := &models.PurchaseCompletedEvent{
		CartID:     cartID,
		TicketID:   ticket.ID,
		TicketCode: ticket.Code,
		Purchaser:  ticket.Purchaser,
		Amount:     ticket.Amount,
		Items:      fulfilled,
		OccurredAt: ticket.PurchaseDatetime,
	}

	if err := s.publisher.PublishPurchaseCompleted(ctx, event); err != nil {
		log.Error("Failed to publish purchase event", slog.String("ticket_code", ticket.Code), slog.String("error", err.Error()))
	}

	if err := s.mailer.SendReceipt(ctx, event); err != nil {
		log.Warn("Failed to send receipt", slog.String("ticket_code", ticket.Code), slog.String("error", err.Error()))
	}

	log.Info("Purchase finalized",
		slog.String("cart_id", cartID.String()),
		slog.String("ticket_code", ticket.Code),
		slog.String("amount", ticket.Amount.String()),
	)
}

// mutateCart locks the cart, applies fn and writes the result back in one transaction.
func (s *cartService) mutateCart(ctx context.Context, id uuid.UUID, fn func(tx repository.Store, cart *models.Cart) error) (*models.Cart, error) {

	var updated *models.Cart

	err := s.store.WithTx(ctx, func(tx repository.Store) error {

		cart, err := tx.Carts().GetCartForUpdate(ctx, id)
		if err != nil {
			return cartLookupError(id, err)
		}

		if err := fn(tx, cart); err != nil {
			return err
		}

		if err := tx.Carts().UpdateCart(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return cartNotFound(id)
			}
			return appErrors.StorageError("Failed to update cart").WithError(err)
		}

		updated = cart

		return nil
	})

	if err != nil {
		return nil, storageFallback(err, "Failed to update cart")
	}

	return updated, nil
}

func quantityTooLarge() *appErrors.AppError {
	return appErrors.InvalidArgumentError(fmt.Sprintf("Quantity must not exceed %d", models.MaxQuantity))
}

func checkoutOutcome(result *models.PurchaseResult) string {
	switch {
	case len(result.FailedProducts) == 0:
		return metrics.OutcomeComplete
	case result.TotalAmount.IsPositive():
		return metrics.OutcomePartial
	default:
		return metrics.OutcomeFailed
	}
}

// productTitle returns "" for a product that no longer exists.
func productTitle(ctx context.Context, products repository.ProductRepository, id uuid.UUID) (string, error) {

	product, err := products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	return product.Title, nil
}

func parseCartAndProduct(cartID, productID string) (uuid.UUID, uuid.UUID, error) {

	cid, err := utils.ParseID(cartID, "cart")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	pid, err := utils.ParseID(productID, "product")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return cid, pid, nil
}

func cartLookupError(id uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return cartNotFound(id)
	}

	return appErrors.StorageError("Failed to fetch cart").WithError(err)
}

func cartNotFound(id uuid.UUID) *appErrors.AppError {
	return appErrors.NotFoundError(fmt.Sprintf("Cart %s not found", id))
}

func productNotFound(id uuid.UUID) *appErrors.AppError {
	return appErrors.NotFoundError(fmt.Sprintf("Product %s not found", id))
}

func itemNotInCart(cartID, productID uuid.UUID) *appErrors.AppError {
	return appErrors.NotFoundError(fmt.Sprintf("Product %s not found in cart %s", productID, cartID))
}

// storageFallback keeps AppErrors as they are and classifies anything else,
// e.g. a failed begin or commit, as a storage failure.
func storageFallback(err error, message string) error {
	if _, ok := appErrors.IsAppError(err); ok {
		return err
	}

	return appErrors.StorageError(message).WithError(err)
}
