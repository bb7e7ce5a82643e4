package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	repository "github.com/aaravmahajanofficial/cart-checkout-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T) (repository.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewStore(db), mock
}

func TestStoreWithTx(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	decrementSQL := regexp.QuoteMeta(`UPDATE products SET stock = stock - $1`)

	t.Run("Success - Commits", func(t *testing.T) {
		// Arrange
		store, mock := setupStoreTest(t)
		productID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(decrementSQL).WithArgs(1, productID).WillReturnRows(
			sqlmock.NewRows(productRowColumns).AddRow(productID.String(), "A", "", "1", 0, now, now))
		mock.ExpectCommit()

		// Act
		err := store.WithTx(ctx, func(tx repository.Store) error {
			_, ok, err := tx.Products().DecrementStock(ctx, productID, 1)
			assert.True(t, ok)
			return err
		})

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Rolls back every write", func(t *testing.T) {
		// Arrange
		store, mock := setupStoreTest(t)
		productID := uuid.New()
		dbError := errors.New("insert ticket failed")

		mock.ExpectBegin()
		mock.ExpectQuery(decrementSQL).WithArgs(2, productID).WillReturnRows(
			sqlmock.NewRows(productRowColumns).AddRow(productID.String(), "A", "", "1", 3, now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets`)).WillReturnError(dbError)
		mock.ExpectRollback()

		// Act
		err := store.WithTx(ctx, func(tx repository.Store) error {
			if _, _, err := tx.Products().DecrementStock(ctx, productID, 2); err != nil {
				return err
			}
			return tx.Tickets().CreateTicket(ctx, &models.Ticket{Code: "X"})
		})

		// Assert
		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin", func(t *testing.T) {
		store, mock := setupStoreTest(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := store.WithTx(ctx, func(repository.Store) error {
			called = true
			return nil
		})

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.False(t, called)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Commit", func(t *testing.T) {
		store, mock := setupStoreTest(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := store.WithTx(ctx, func(repository.Store) error { return nil })

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to commit transaction")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Nested call reuses the transaction", func(t *testing.T) {
		store, mock := setupStoreTest(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := store.WithTx(ctx, func(tx repository.Store) error {
			return tx.WithTx(ctx, func(inner repository.Store) error {
				assert.Same(t, tx, inner)
				return nil
			})
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Panic - Rolls back and re-panics", func(t *testing.T) {
		store, mock := setupStoreTest(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = store.WithTx(ctx, func(repository.Store) error { panic("boom") })
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
