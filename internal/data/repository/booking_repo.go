package repository

import (
	"context"
	"fmt"
	"time"

	"rentpay/internal/data/entity"
	"rentpay/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Booking, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// FindByIDForUpdate takes a row-level lock so concurrent reconciliation
	// attempts for the same booking serialize. Only valid inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// UpdateLease rewrites dates, rent and total price during reconciliation.
	UpdateLease(ctx context.Context, bookingID uuid.UUID, start, end time.Time, monthlyRent, totalPrice int64) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, tenant_id, listing_id, match_id, start_date, end_date, monthly_rent, total_price, status, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TenantID,
		booking.ListingID,
		booking.MatchID,
		booking.StartDate,
		booking.EndDate,
		booking.MonthlyRent,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		// unique violation on match_id is an expected race, let the caller decide
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("match_id", booking.MatchID.String()),
				zap.String("tenant_id", booking.TenantID.String()),
			)
		}
		return fmt.Errorf("create booking for match %s: %w", booking.MatchID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(ctx, query, id, "find booking by ID")
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id, "lock booking by ID")
}

func (r *bookingRepository) FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE match_id = $1`
	return r.scanOne(ctx, query, matchID, "find booking by match ID")
}

func (r *bookingRepository) scanOne(ctx context.Context, query string, arg any, op string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.ListingID,
		&booking.MatchID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.MonthlyRent,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE listing_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, listingID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find bookings by listing ID %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.TenantID,
			&booking.ListingID,
			&booking.MatchID,
			&booking.StartDate,
			&booking.EndDate,
			&booking.MonthlyRent,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE listing_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, listingID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return 0, fmt.Errorf("count bookings by listing ID %s: %w", listingID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateLease(ctx context.Context, bookingID uuid.UUID, start, end time.Time, monthlyRent, totalPrice int64) error {
	query := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, monthly_rent = $4, total_price = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, start, end, monthlyRent, totalPrice)
	if err != nil {
		r.log.Error("Failed to update booking lease",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("update booking %s lease: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
