package repository

import (
	"context"
	"fmt"

	"rentpay/internal/data/entity"
	"rentpay/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentRecordRepository manages the append-only audit trails hanging off a
// rent payment: charges, modifications, failures. Deletion happens only
// during schedule replacement, in dependency order.
type PaymentRecordRepository interface {
	CreateCharge(ctx context.Context, charge *entity.PaymentCharge) error
	CreateModification(ctx context.Context, mod *entity.PaymentModification) error
	CreateFailure(ctx context.Context, failure *entity.PaymentFailure) error

	FindFailuresByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentFailure, error)

	DeleteModificationsByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error
	DeleteChargesByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error
	DeleteFailuresByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error
}

type paymentRecordRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRecordRepository(db database.Querier, log *zap.Logger) PaymentRecordRepository {
	return &paymentRecordRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_record")),
	}
}

func (r *paymentRecordRepository) CreateCharge(ctx context.Context, charge *entity.PaymentCharge) error {
	query := `
		INSERT INTO payment_charges (id, rent_payment_id, amount, provider_charge_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		charge.ID,
		charge.RentPaymentID,
		charge.Amount,
		charge.ProviderChargeID,
		charge.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment charge",
			zap.Error(err),
			zap.String("rent_payment_id", charge.RentPaymentID.String()),
		)
		return fmt.Errorf("create charge for rent payment %s: %w", charge.RentPaymentID.String(), err)
	}

	return nil
}

func (r *paymentRecordRepository) CreateModification(ctx context.Context, mod *entity.PaymentModification) error {
	query := `
		INSERT INTO payment_modifications (id, rent_payment_id, field, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		mod.ID,
		mod.RentPaymentID,
		mod.Field,
		mod.OldValue,
		mod.NewValue,
		mod.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment modification",
			zap.Error(err),
			zap.String("rent_payment_id", mod.RentPaymentID.String()),
		)
		return fmt.Errorf("create modification for rent payment %s: %w", mod.RentPaymentID.String(), err)
	}

	return nil
}

func (r *paymentRecordRepository) CreateFailure(ctx context.Context, failure *entity.PaymentFailure) error {
	query := `
		INSERT INTO payment_failures (id, rent_payment_id, reason, provider_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		failure.ID,
		failure.RentPaymentID,
		failure.Reason,
		failure.ProviderCode,
		failure.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment failure",
			zap.Error(err),
			zap.String("rent_payment_id", failure.RentPaymentID.String()),
		)
		return fmt.Errorf("create failure for rent payment %s: %w", failure.RentPaymentID.String(), err)
	}

	return nil
}

func (r *paymentRecordRepository) FindFailuresByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentFailure, error) {
	query := `
		SELECT id, rent_payment_id, reason, provider_code, created_at
		FROM payment_failures
		WHERE rent_payment_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, paymentID)
	if err != nil {
		r.log.Error("Failed to find payment failures",
			zap.Error(err),
			zap.String("rent_payment_id", paymentID.String()),
		)
		return nil, fmt.Errorf("find failures for rent payment %s: %w", paymentID.String(), err)
	}
	defer rows.Close()

	var failures []*entity.PaymentFailure
	for rows.Next() {
		var f entity.PaymentFailure
		err := rows.Scan(&f.ID, &f.RentPaymentID, &f.Reason, &f.ProviderCode, &f.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan payment failure row", zap.Error(err))
			return nil, fmt.Errorf("scan payment failure row: %w", err)
		}
		failures = append(failures, &f)
	}

	return failures, nil
}

func (r *paymentRecordRepository) DeleteModificationsByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	return r.deleteByPaymentIDs(ctx, "payment_modifications", paymentIDs)
}

func (r *paymentRecordRepository) DeleteChargesByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	return r.deleteByPaymentIDs(ctx, "payment_charges", paymentIDs)
}

func (r *paymentRecordRepository) DeleteFailuresByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	return r.deleteByPaymentIDs(ctx, "payment_failures", paymentIDs)
}

func (r *paymentRecordRepository) deleteByPaymentIDs(ctx context.Context, table string, paymentIDs []uuid.UUID) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE rent_payment_id = ANY($1)`, table)

	_, err := r.db.Exec(ctx, query, paymentIDs)
	if err != nil {
		r.log.Error("Failed to delete payment records",
			zap.Error(err),
			zap.String("table", table),
			zap.Int("payment_count", len(paymentIDs)),
		)
		return fmt.Errorf("delete from %s for %d payments: %w", table, len(paymentIDs), err)
	}

	return nil
}
