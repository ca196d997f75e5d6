package repository

import (
	"context"
	"fmt"

	"rentpay/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking       BookingRepository
	Match         MatchRepository
	Trip          TripRepository
	RentPayment   RentPaymentRepository
	PaymentRecord PaymentRecordRepository

	// Tx runs a function with every repository bound to one database
	// transaction. Confirmation and reconciliation both require it.
	Tx TxManager
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newWithQuerier(db, log)
	r.Tx = &pgxTxManager{db: db, log: log}
	return r
}

func newWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	r := &Repository{
		Booking:       NewBookingRepository(q, log),
		Match:         NewMatchRepository(q, log),
		Trip:          NewTripRepository(q, log),
		RentPayment:   NewRentPaymentRepository(q, log),
		PaymentRecord: NewPaymentRecordRepository(q, log),
	}
	// already inside a transaction: reuse the same binding
	r.Tx = passthroughTxManager{repos: r}
	return r
}

// TxManager scopes a unit of work to a single atomic transaction.
type TxManager interface {
	Atomic(ctx context.Context, fn func(r *Repository) error) error
}

type pgxTxManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func (m *pgxTxManager) Atomic(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := newWithQuerier(tx, m.log)

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			m.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type passthroughTxManager struct {
	repos *Repository
}

func (m passthroughTxManager) Atomic(ctx context.Context, fn func(r *Repository) error) error {
	return fn(m.repos)
}
