package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewTicketRepo(db)
	ctx := t.Context()

	t.Run("CreateTicket", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO tickets (code, purchase_datetime, amount, purchaser) VALUES ($1, $2, $3, $4) RETURNING id`)
		ticket := &models.Ticket{
			Code:             "ABC123XYZ",
			PurchaseDatetime: time.Now().UTC(),
			Amount:           decimal.NewFromInt(20),
			Purchaser:        "buyer@example.com",
		}

		t.Run("Success", func(t *testing.T) {
			// Arrange
			ticketID := uuid.New()
			mock.ExpectQuery(expectedSQL).
				WithArgs(ticket.Code, ticket.PurchaseDatetime, ticket.Amount, ticket.Purchaser).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ticketID.String()))

			// Act
			err := repo.CreateTicket(ctx, ticket)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, ticketID, ticket.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Duplicate code", func(t *testing.T) {
			dbError := errors.New(`duplicate key value violates unique constraint "tickets_code_key"`)
			mock.ExpectQuery(expectedSQL).WillReturnError(dbError)

			require.ErrorIs(t, repo.CreateTicket(ctx, ticket), dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetTicketByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, code, purchase_datetime, amount, purchaser FROM tickets WHERE id = $1`)
		ticketID := uuid.New()

		t.Run("Success", func(t *testing.T) {
			now := time.Now().UTC()
			mock.ExpectQuery(expectedSQL).
				WithArgs(ticketID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "code", "purchase_datetime", "amount", "purchaser"}).
					AddRow(ticketID.String(), "ABC123XYZ", now, "20.00", "buyer@example.com"))

			ticket, err := repo.GetTicketByID(ctx, ticketID)

			require.NoError(t, err)
			assert.Equal(t, "ABC123XYZ", ticket.Code)
			assert.True(t, decimal.NewFromInt(20).Equal(ticket.Amount))
			assert.Equal(t, "buyer@example.com", ticket.Purchaser)
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			mock.ExpectQuery(expectedSQL).WithArgs(ticketID).WillReturnError(sql.ErrNoRows)

			ticket, err := repo.GetTicketByID(ctx, ticketID)

			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, ticket)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
