package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store groups the repositories so a unit of work can span all of them.
type Store interface {
	Carts() CartRepository
	Products() ProductRepository
	Tickets() TicketRepository
	// WithTx runs fn in one transaction, committing only if fn returns nil.
	// Calls made on a transactional Store reuse the open transaction.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type store struct {
	db       *sql.DB
	carts    CartRepository
	products ProductRepository
	tickets  TicketRepository
	inTx     bool
}

func NewStore(db *sql.DB) Store {
	return newStore(db, db, false)
}

func newStore(db *sql.DB, q DBTX, inTx bool) *store {
	return &store{
		db:       db,
		carts:    NewCartRepo(q),
		products: NewProductRepo(q),
		tickets:  NewTicketRepo(q),
		inTx:     inTx,
	}
}

func (s *store) Carts() CartRepository       { return s.carts }
func (s *store) Products() ProductRepository { return s.products }
func (s *store) Tickets() TicketRepository   { return s.tickets }

func (s *store) WithTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newStore(s.db, tx, true)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
