package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/cache"
	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils"
)

const (
	ticketCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	TicketCodeLength   = 9
)

// GenerateTicketCode returns TicketCodeLength random base-36 characters.
func GenerateTicketCode() (string, error) {

	code := make([]byte, TicketCodeLength)
	max := big.NewInt(int64(len(ticketCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		code[i] = ticketCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

type TicketService interface {
	GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error)
}

type ticketService struct {
	repo  repository.TicketRepository
	cache cache.Cache
}

func NewTicketService(repo repository.TicketRepository, cache cache.Cache) TicketService {
	return &ticketService{repo: repo, cache: cache}
}

// Tickets never change once written, so cached entries are never invalidated.
func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {

	id, err := utils.ParseID(ticketID, "ticket")
	if err != nil {
		return nil, err
	}

	log := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.TicketKeyPrefix, id.String())

	var cached models.Ticket
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("Ticket cache read failed", slog.String("ticket_id", id.String()), slog.String("error", err.Error()))
	}
	if hit {
		return &cached, nil
	}

	ticket, err := s.repo.GetTicketByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Ticket %s not found", id))
		}
		return nil, appErrors.StorageError("Failed to fetch ticket").WithError(err)
	}

	if err := s.cache.Set(ctx, key, ticket, 0); err != nil {
		log.Warn("Ticket cache write failed", slog.String("ticket_id", id.String()), slog.String("error", err.Error()))
	}

	return ticket, nil
}
