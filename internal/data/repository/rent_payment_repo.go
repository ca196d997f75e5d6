package repository

import (
	"context"
	"fmt"

	"rentpay/internal/data/entity"
	"rentpay/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RentPaymentRepository interface {
	CreateBatch(ctx context.Context, payments []*entity.RentPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RentPayment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.RentPayment, error)

	// FindReplaceableByBookingID returns the payments reconciliation may
	// replace: everything except security deposits, which are immune.
	FindReplaceableByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error)

	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error

	// Capture-event mutations. The scheduling engine itself never touches a
	// payment after creation outside reconciliation's delete-and-recreate.
	MarkPaid(ctx context.Context, paymentID uuid.UUID) error
	MarkFailed(ctx context.Context, paymentID uuid.UUID) error
}

type rentPaymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRentPaymentRepository(db database.Querier, log *zap.Logger) RentPaymentRepository {
	return &rentPaymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "rent_payment")),
	}
}

const rentPaymentColumns = `id, booking_id, amount, total_amount, due_date, is_paid,
	payment_method_id, authorized_at, retry_count, type, status, created_at, updated_at`

func (r *rentPaymentRepository) CreateBatch(ctx context.Context, payments []*entity.RentPayment) error {
	query := `
		INSERT INTO rent_payments (` + rentPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for _, p := range payments {
		_, err := r.db.Exec(ctx, query,
			p.ID,
			p.BookingID,
			p.Amount,
			p.TotalAmount,
			p.DueDate,
			p.IsPaid,
			p.PaymentMethodID,
			p.AuthorizedAt,
			p.RetryCount,
			p.Type,
			p.Status,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create rent payment",
				zap.Error(err),
				zap.String("booking_id", p.BookingID.String()),
				zap.Time("due_date", p.DueDate),
			)
			return fmt.Errorf("create rent payment for booking %s due %s: %w",
				p.BookingID.String(), p.DueDate.Format("2006-01-02"), err)
		}
	}

	return nil
}

func (r *rentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RentPayment, error) {
	query := `SELECT ` + rentPaymentColumns + ` FROM rent_payments WHERE id = $1`

	var p entity.RentPayment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.TotalAmount,
		&p.DueDate,
		&p.IsPaid,
		&p.PaymentMethodID,
		&p.AuthorizedAt,
		&p.RetryCount,
		&p.Type,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rent payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find rent payment by ID %s: %w", id.String(), err)
	}

	return &p, nil
}

func (r *rentPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error) {
	query := `
		SELECT ` + rentPaymentColumns + `
		FROM rent_payments
		WHERE booking_id = $1
		ORDER BY due_date, type
	`
	return r.scanMany(ctx, query, bookingID, "find rent payments by booking ID")
}

func (r *rentPaymentRepository) FindReplaceableByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error) {
	query := `
		SELECT ` + rentPaymentColumns + `
		FROM rent_payments
		WHERE booking_id = $1 AND type != $2
		ORDER BY due_date
	`

	rows, err := r.db.Query(ctx, query, bookingID, entity.PaymentTypeSecurityDeposit)
	if err != nil {
		r.log.Error("Failed to find replaceable rent payments",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find replaceable rent payments for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *rentPaymentRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.RentPayment, error) {
	query := `
		SELECT p.id, p.booking_id, p.amount, p.total_amount, p.due_date, p.is_paid,
		       p.payment_method_id, p.authorized_at, p.retry_count, p.type, p.status,
		       p.created_at, p.updated_at
		FROM rent_payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.listing_id = $1
		ORDER BY p.due_date
	`
	return r.scanMany(ctx, query, listingID, "find rent payments by listing ID")
}

func (r *rentPaymentRepository) scanMany(ctx context.Context, query string, arg any, op string) ([]*entity.RentPayment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *rentPaymentRepository) collect(rows pgx.Rows) ([]*entity.RentPayment, error) {
	var payments []*entity.RentPayment
	for rows.Next() {
		var p entity.RentPayment
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Amount,
			&p.TotalAmount,
			&p.DueDate,
			&p.IsPaid,
			&p.PaymentMethodID,
			&p.AuthorizedAt,
			&p.RetryCount,
			&p.Type,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rent payment row", zap.Error(err))
			return nil, fmt.Errorf("scan rent payment row: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, nil
}

func (r *rentPaymentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM rent_payments WHERE id = ANY($1)`

	result, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to delete rent payments",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return fmt.Errorf("delete %d rent payments: %w", len(ids), err)
	}

	if int(result.RowsAffected()) != len(ids) {
		return fmt.Errorf("delete rent payments: expected %d rows, deleted %d", len(ids), result.RowsAffected())
	}

	return nil
}

func (r *rentPaymentRepository) MarkPaid(ctx context.Context, paymentID uuid.UUID) error {
	query := `
		UPDATE rent_payments
		SET is_paid = TRUE, status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, entity.PaymentStatusPaid)
	if err != nil {
		r.log.Error("Failed to mark rent payment paid",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return fmt.Errorf("mark rent payment %s paid: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rent payment %s not found", paymentID.String())
	}

	return nil
}

func (r *rentPaymentRepository) MarkFailed(ctx context.Context, paymentID uuid.UUID) error {
	query := `
		UPDATE rent_payments
		SET status = $2, retry_count = retry_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, entity.PaymentStatusFailed)
	if err != nil {
		r.log.Error("Failed to mark rent payment failed",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return fmt.Errorf("mark rent payment %s failed: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rent payment %s not found", paymentID.String())
	}

	return nil
}
