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

type TripRepository interface {
	FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Trip, error)

	// MarkBookedByMatch flips the trip that produced the match to booked.
	// Not every match has a trip, so zero rows affected is not an error.
	MarkBookedByMatch(ctx context.Context, matchID uuid.UUID) error
}

type tripRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTripRepository(db database.Querier, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

func (r *tripRepository) FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Trip, error) {
	query := `
		SELECT id, tenant_id, match_id, status, created_at, updated_at
		FROM trips
		WHERE match_id = $1
	`

	var trip entity.Trip
	err := r.db.QueryRow(ctx, query, matchID).Scan(
		&trip.ID,
		&trip.TenantID,
		&trip.MatchID,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by match ID",
			zap.Error(err),
			zap.String("match_id", matchID.String()),
		)
		return nil, fmt.Errorf("find trip by match ID %s: %w", matchID.String(), err)
	}

	return &trip, nil
}

func (r *tripRepository) MarkBookedByMatch(ctx context.Context, matchID uuid.UUID) error {
	query := `UPDATE trips SET status = $2, updated_at = NOW() WHERE match_id = $1`

	_, err := r.db.Exec(ctx, query, matchID, entity.TripStatusBooked)
	if err != nil {
		r.log.Error("Failed to mark trip booked",
			zap.Error(err),
			zap.String("match_id", matchID.String()),
		)
		return fmt.Errorf("mark trip booked for match %s: %w", matchID.String(), err)
	}

	return nil
}
