package repository

import (
	"context"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
	"github.com/google/uuid"
)

// Tickets are append-only; there is no update or delete.
type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicketByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
}

type ticketRepository struct {
	DB DBTX
}

func NewTicketRepo(db DBTX) TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO tickets (code, purchase_datetime, amount, purchaser) VALUES ($1, $2, $3, $4) RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, ticket.Code, ticket.PurchaseDatetime, ticket.Amount, ticket.Purchaser).Scan(&ticket.ID)
}

func (r *ticketRepository) GetTicketByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ticket := &models.Ticket{}

	query := `SELECT id, code, purchase_datetime, amount, purchaser FROM tickets WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&ticket.ID, &ticket.Code, &ticket.PurchaseDatetime, &ticket.Amount, &ticket.Purchaser)
	if err != nil {
		return nil, notFound(err)
	}

	return ticket, nil
}
