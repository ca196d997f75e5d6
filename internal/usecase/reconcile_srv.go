package usecase

import (
	"context"
	"fmt"
	"time"

	"rentpay/internal/data/entity"
	"rentpay/internal/data/repository"
	"rentpay/internal/dto/request"
	"rentpay/internal/dto/response"
	"rentpay/internal/schedule"
	"rentpay/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService is the only sanctioned path for lease-date or rent
// corrections after a schedule exists. It tears down the replaceable
// installments and regenerates, all inside one transaction.
type ReconciliationService interface {
	ReplaceSchedule(ctx context.Context, bookingID string, req *request.ReplaceScheduleRequest) (*response.BookingScheduleResponse, error)
}

type reconciliationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReconciliationService(repo *repository.Repository, log *zap.Logger) ReconciliationService {
	return &reconciliationService{
		repo: repo,
		log:  log.With(zap.String("service", "reconciliation")),
	}
}

func (s *reconciliationService) ReplaceSchedule(ctx context.Context, bookingID string, req *request.ReplaceScheduleRequest) (*response.BookingScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Replace schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	newStart, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
	}
	newEnd, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, err)
	}

	var booking *entity.Booking
	var payments []*entity.RentPayment

	err = s.repo.Tx.Atomic(ctx, func(r *repository.Repository) error {
		// row lock serializes concurrent corrections for the same booking
		b, err := r.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		}
		booking = b

		methodRef := req.PaymentMethodID
		if methodRef == nil {
			match, err := r.Match.FindByID(ctx, b.MatchID)
			if err != nil {
				return err
			}
			if match != nil {
				methodRef = match.PaymentMethodID
			}
		}

		// Security deposits are immune: FindReplaceable excludes them, so
		// they survive every replacement no matter how often it runs.
		replaceable, err := r.RentPayment.FindReplaceableByBookingID(ctx, id)
		if err != nil {
			return err
		}

		oldIDs := make([]uuid.UUID, len(replaceable))
		for i, p := range replaceable {
			oldIDs[i] = p.ID
		}

		// dependent records first, referential-integrity order
		if err := r.PaymentRecord.DeleteModificationsByPaymentIDs(ctx, oldIDs); err != nil {
			return err
		}
		if err := r.PaymentRecord.DeleteChargesByPaymentIDs(ctx, oldIDs); err != nil {
			return err
		}
		if err := r.PaymentRecord.DeleteFailuresByPaymentIDs(ctx, oldIDs); err != nil {
			return err
		}
		if err := r.RentPayment.DeleteByIDs(ctx, oldIDs); err != nil {
			return err
		}

		now := time.Now()
		var methodID string
		if methodRef != nil {
			methodID = *methodRef
		}

		// The first installment is NOT marked authorized here: the tenant's
		// completed payment belongs to confirmation, not to a correction.
		plan, err := schedule.Generate(schedule.GenerateInput{
			BookingID:         id,
			MonthlyRent:       req.MonthlyRent,
			Start:             newStart,
			End:               newEnd,
			PaymentMethodID:   methodID,
			ZeroRentConfirmed: req.ZeroRentConfirmed,
			Now:               now,
		})
		if err != nil {
			// rolls back the deletes above; the old schedule survives intact
			return fmt.Errorf("regenerate schedule for booking %s: %w", bookingID, err)
		}

		oldInterval := fmt.Sprintf("%s..%s@%d",
			b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"), b.MonthlyRent)
		newInterval := fmt.Sprintf("%s..%s@%d",
			req.StartDate, req.EndDate, req.MonthlyRent)

		totalPrice := sumMonthlyRent(plan)
		if err := r.Booking.UpdateLease(ctx, id, newStart, newEnd, req.MonthlyRent, totalPrice); err != nil {
			return err
		}
		if err := r.Match.UpdateMonthlyRent(ctx, b.MatchID, req.MonthlyRent); err != nil {
			return err
		}

		if err := r.RentPayment.CreateBatch(ctx, plan); err != nil {
			return err
		}

		// audit trail: every regenerated installment records the correction
		for _, p := range plan {
			mod := &entity.PaymentModification{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				RentPaymentID: p.ID,
				Field:         "lease_interval",
				OldValue:      oldInterval,
				NewValue:      newInterval,
			}
			if err := r.PaymentRecord.CreateModification(ctx, mod); err != nil {
				return err
			}
		}

		booking.StartDate = newStart
		booking.EndDate = newEnd
		booking.MonthlyRent = req.MonthlyRent
		booking.TotalPrice = totalPrice

		payments, err = r.RentPayment.FindByBookingID(ctx, id)
		return err
	})
	if err != nil {
		s.log.Error("Failed to replace schedule",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, err
	}

	s.log.Info("Schedule replaced",
		zap.String("booking_id", bookingID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int64("monthly_rent", req.MonthlyRent),
		zap.Int("payments", len(payments)),
	)

	return &response.BookingScheduleResponse{
		Booking:  response.BookingToResponse(booking),
		Payments: response.RentPaymentsToResponse(payments, time.Now()),
	}, nil
}
