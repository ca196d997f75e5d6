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

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error)
	UpdateMonthlyRent(ctx context.Context, matchID uuid.UUID, monthlyRent int64) error
	MarkPaymentCaptured(ctx context.Context, matchID uuid.UUID) error
}

type matchRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMatchRepository(db database.Querier, log *zap.Logger) MatchRepository {
	return &matchRepository{
		db:  db,
		log: log.With(zap.String("repository", "match")),
	}
}

const matchColumns = `id, tenant_id, listing_id, start_date, end_date, monthly_rent, security_deposit, pet_deposit,
	payment_method_id, payment_intent_id, customer_id, payment_captured_at,
	tenant_signed_at, landlord_signed_at, created_at, updated_at`

func (r *matchRepository) Create(ctx context.Context, match *entity.Match) error {
	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		match.ID,
		match.TenantID,
		match.ListingID,
		match.StartDate,
		match.EndDate,
		match.MonthlyRent,
		match.SecurityDeposit,
		match.PetDeposit,
		match.PaymentMethodID,
		match.PaymentIntentID,
		match.CustomerID,
		match.PaymentCapturedAt,
		match.TenantSignedAt,
		match.LandlordSignedAt,
		match.CreatedAt,
		match.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create match",
			zap.Error(err),
			zap.String("tenant_id", match.TenantID.String()),
			zap.String("listing_id", match.ListingID.String()),
		)
		return fmt.Errorf("create match for tenant %s: %w", match.TenantID.String(), err)
	}

	return nil
}

func (r *matchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	var match entity.Match
	err := r.db.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.TenantID,
		&match.ListingID,
		&match.StartDate,
		&match.EndDate,
		&match.MonthlyRent,
		&match.SecurityDeposit,
		&match.PetDeposit,
		&match.PaymentMethodID,
		&match.PaymentIntentID,
		&match.CustomerID,
		&match.PaymentCapturedAt,
		&match.TenantSignedAt,
		&match.LandlordSignedAt,
		&match.CreatedAt,
		&match.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find match by ID",
			zap.Error(err),
			zap.String("match_id", id.String()),
		)
		return nil, fmt.Errorf("find match by ID %s: %w", id.String(), err)
	}

	return &match, nil
}

func (r *matchRepository) UpdateMonthlyRent(ctx context.Context, matchID uuid.UUID, monthlyRent int64) error {
	query := `UPDATE matches SET monthly_rent = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, matchID, monthlyRent)
	if err != nil {
		r.log.Error("Failed to update match monthly rent",
			zap.Error(err),
			zap.String("match_id", matchID.String()),
		)
		return fmt.Errorf("update match %s monthly rent: %w", matchID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %s not found", matchID.String())
	}

	return nil
}

func (r *matchRepository) MarkPaymentCaptured(ctx context.Context, matchID uuid.UUID) error {
	query := `UPDATE matches SET payment_captured_at = NOW(), updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, matchID)
	if err != nil {
		r.log.Error("Failed to mark match payment captured",
			zap.Error(err),
			zap.String("match_id", matchID.String()),
		)
		return fmt.Errorf("mark match %s payment captured: %w", matchID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %s not found", matchID.String())
	}

	return nil
}
