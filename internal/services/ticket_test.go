package service_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	cacheMocks "github.com/aaravmahajanofficial/cart-checkout-service/internal/cache/mocks"
	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/cart-checkout-service/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]{9}$`)
	seen := make(map[string]struct{})

	for range 200 {
		code, err := service.GenerateTicketCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 195)
}

func TestGetTicket(t *testing.T) {
	ticket := &models.Ticket{
		ID:               uuid.New(),
		Code:             "a1b2c3d4e",
		PurchaseDatetime: time.Now().UTC(),
		Amount:           decimal.NewFromInt(20),
		Purchaser:        "buyer@example.com",
	}
	key := "ticket:" + ticket.ID.String()

	t.Run("Success - Cache Hit", func(t *testing.T) {
		// Arrange
		repo := mocks.NewTicketRepository(t)
		cache := cacheMocks.NewCache(t)
		ticketService := service.NewTicketService(repo, cache)

		cache.On("Get", mock.Anything, key, mock.Anything).Run(func(args mock.Arguments) {
			*args.Get(2).(*models.Ticket) = *ticket
		}).Return(true, nil).Once()

		// Act
		result, err := ticketService.GetTicket(t.Context(), ticket.ID.String())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, ticket.Code, result.Code)
		repo.AssertNotCalled(t, "GetTicketByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Cache Miss Fills Cache", func(t *testing.T) {
		repo := mocks.NewTicketRepository(t)
		cache := cacheMocks.NewCache(t)
		ticketService := service.NewTicketService(repo, cache)

		cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		repo.On("GetTicketByID", mock.Anything, ticket.ID).Return(ticket, nil).Once()
		cache.On("Set", mock.Anything, key, ticket, time.Duration(0)).Return(errors.New("redis down")).Once()

		result, err := ticketService.GetTicket(t.Context(), ticket.ID.String())

		require.NoError(t, err)
		assert.Equal(t, ticket, result)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		repo := mocks.NewTicketRepository(t)
		cache := cacheMocks.NewCache(t)
		ticketService := service.NewTicketService(repo, cache)

		cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		repo.On("GetTicketByID", mock.Anything, ticket.ID).Return(nil, repository.ErrNotFound).Once()

		result, err := ticketService.GetTicket(t.Context(), ticket.ID.String())

		assert.Nil(t, result)
		assertCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		ticketService := service.NewTicketService(mocks.NewTicketRepository(t), cacheMocks.NewCache(t))

		result, err := ticketService.GetTicket(t.Context(), "xyz")

		assert.Nil(t, result)
		assertCode(t, err, appErrors.ErrCodeInvalidArgument)
	})
}
