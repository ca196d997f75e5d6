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
	"rentpay/pkg/database"
	"rentpay/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmationService is the booking confirmation state machine: verified
// capture -> booking created -> schedule generated, exactly once per match.
type ConfirmationService interface {
	ConfirmBooking(ctx context.Context, req *request.ConfirmBookingRequest) (*response.BookingScheduleResponse, error)
}

type confirmationService struct {
	repo     *repository.Repository
	provider PaymentProvider
	policy   CapturePolicy
	log      *zap.Logger
}

func NewConfirmationService(repo *repository.Repository, provider PaymentProvider, policy CapturePolicy, log *zap.Logger) ConfirmationService {
	return &confirmationService{
		repo:     repo,
		provider: provider,
		policy:   policy,
		log:      log.With(zap.String("service", "confirmation")),
	}
}

func (s *confirmationService) ConfirmBooking(ctx context.Context, req *request.ConfirmBookingRequest) (*response.BookingScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		return nil, fmt.Errorf("invalid match ID format %s: %w", req.MatchID, err)
	}

	match, err := s.repo.Match.FindByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", req.MatchID, err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %s: %w", req.MatchID, ErrMatchNotFound)
	}

	// Idempotency guard: a booking already exists for this match, return it
	// instead of erroring or duplicating (duplicate webhook delivery, client
	// retries).
	if existing, err := s.repo.Booking.FindByMatchID(ctx, matchID); err != nil {
		return nil, fmt.Errorf("check existing booking for match %s: %w", req.MatchID, err)
	} else if existing != nil {
		s.log.Info("Booking already exists for match, returning existing",
			zap.String("match_id", req.MatchID),
			zap.String("booking_id", existing.ID.String()),
		)
		return s.buildResponse(ctx, s.repo, existing)
	}

	if match.PaymentIntentID == nil || match.PaymentMethodID == nil {
		return nil, fmt.Errorf("match %s: %w", req.MatchID, ErrMatchIncomplete)
	}

	if err := s.verifyCapture(ctx, match); err != nil {
		return nil, err
	}

	// Pin the payment method to the customer so later installments can be
	// captured off-session. Verification succeeded already, so a provider
	// hiccup here should not lose the booking.
	if match.CustomerID != nil {
		if err := s.provider.AttachPaymentMethod(ctx, *match.PaymentMethodID, *match.CustomerID); err != nil {
			s.log.Warn("Failed to attach payment method, continuing",
				zap.Error(err),
				zap.String("match_id", req.MatchID),
			)
		}
	}

	var booking *entity.Booking
	var payments []*entity.RentPayment

	err = s.repo.Tx.Atomic(ctx, func(r *repository.Repository) error {
		// re-check inside the transaction; a concurrent confirm may have won
		if existing, err := r.Booking.FindByMatchID(ctx, matchID); err != nil {
			return err
		} else if existing != nil {
			booking = existing
			payments, err = r.RentPayment.FindByBookingID(ctx, existing.ID)
			return err
		}

		now := time.Now()
		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			TenantID:    match.TenantID,
			ListingID:   match.ListingID,
			MatchID:     match.ID,
			StartDate:   match.StartDate,
			EndDate:     match.EndDate,
			MonthlyRent: match.MonthlyRent,
			Status:      entity.BookingStatusConfirmed,
		}

		plan, err := schedule.Generate(schedule.GenerateInput{
			BookingID:           booking.ID,
			MonthlyRent:         match.MonthlyRent,
			Start:               match.StartDate,
			End:                 match.EndDate,
			PaymentMethodID:     *match.PaymentMethodID,
			SecurityDeposit:     match.SecurityDeposit,
			PetDeposit:          match.PetDeposit,
			ZeroRentConfirmed:   req.ZeroRentConfirmed,
			MarkFirstAuthorized: true,
			Now:                 now,
		})
		if err != nil {
			return fmt.Errorf("generate schedule for match %s: %w", req.MatchID, err)
		}
		booking.TotalPrice = sumMonthlyRent(plan)

		if err := r.Booking.Create(ctx, booking); err != nil {
			// lost the race on the unique match_id constraint: the winner's
			// booking is the result, not a hard failure
			if database.IsUniqueViolation(err) {
				winner, findErr := r.Booking.FindByMatchID(ctx, matchID)
				if findErr != nil || winner == nil {
					return fmt.Errorf("resolve concurrent confirmation for match %s: %w", req.MatchID, err)
				}
				s.log.Info("Concurrent confirmation resolved to existing booking",
					zap.String("match_id", req.MatchID),
					zap.String("booking_id", winner.ID.String()),
				)
				booking = winner
				payments, findErr = r.RentPayment.FindByBookingID(ctx, winner.ID)
				return findErr
			}
			return err
		}

		if err := r.RentPayment.CreateBatch(ctx, plan); err != nil {
			return err
		}

		if err := r.Trip.MarkBookedByMatch(ctx, matchID); err != nil {
			return err
		}

		payments = plan
		return nil
	})
	if err != nil {
		s.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("match_id", req.MatchID),
		)
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("match_id", req.MatchID),
		zap.Int("installments", len(payments)),
		zap.Int64("total_price", booking.TotalPrice),
	)

	bookingResp := response.BookingToResponse(booking)
	return &response.BookingScheduleResponse{
		Booking:  bookingResp,
		Payments: response.RentPaymentsToResponse(payments, time.Now()),
	}, nil
}

// verifyCapture re-checks the payment intent with the provider. Verification
// is best-effort: when the provider is unreachable and the match already
// carries a recorded capture, the engine proceeds on that prior state rather
// than blocking the confirmation.
func (s *confirmationService) verifyCapture(ctx context.Context, match *entity.Match) error {
	status, err := s.provider.RetrievePaymentIntent(ctx, *match.PaymentIntentID)
	if err != nil {
		if match.PaymentCapturedAt != nil {
			s.log.Warn("Provider unreachable, proceeding on recorded capture state",
				zap.Error(err),
				zap.String("match_id", match.ID.String()),
				zap.Time("payment_captured_at", *match.PaymentCapturedAt),
			)
			return nil
		}
		return fmt.Errorf("verify capture for match %s: %w: %v", match.ID.String(), ErrProviderUnavailable, err)
	}

	if !s.policy.Accepts(status) {
		s.log.Warn("Payment capture not confirmed",
			zap.String("match_id", match.ID.String()),
			zap.String("intent_status", status),
		)
		return fmt.Errorf("match %s intent status %s: %w", match.ID.String(), status, ErrPaymentNotConfirmed)
	}

	if match.PaymentCapturedAt == nil {
		if err := s.repo.Match.MarkPaymentCaptured(ctx, match.ID); err != nil {
			s.log.Warn("Failed to record capture state on match", zap.Error(err))
		}
	}

	return nil
}

func (s *confirmationService) buildResponse(ctx context.Context, r *repository.Repository, booking *entity.Booking) (*response.BookingScheduleResponse, error) {
	payments, err := r.RentPayment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("load payments for booking %s: %w", booking.ID.String(), err)
	}

	return &response.BookingScheduleResponse{
		Booking:  response.BookingToResponse(booking),
		Payments: response.RentPaymentsToResponse(payments, time.Now()),
	}, nil
}

func sumMonthlyRent(payments []*entity.RentPayment) int64 {
	var total int64
	for _, p := range payments {
		if p.Type == entity.PaymentTypeMonthlyRent {
			total += p.Amount
		}
	}
	return total
}
