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

// PaymentService is the read side over the schedule plus the capture-event
// ingestion that marks installments paid or failed.
type PaymentService interface {
	GetBookingPayments(ctx context.Context, bookingID string) (*response.BookingScheduleResponse, error)
	GetListingPayments(ctx context.Context, listingID string) (*response.ListingPaymentsResponse, error)
	GetListingBookings(ctx context.Context, listingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	HandleCaptureEvent(ctx context.Context, req *request.CaptureEventRequest) (*response.RentPaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) GetBookingPayments(ctx context.Context, bookingID string) (*response.BookingScheduleResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	payments, err := s.repo.RentPayment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load payments for booking %s: %w", bookingID, err)
	}

	return &response.BookingScheduleResponse{
		Booking:  response.BookingToResponse(booking),
		Payments: response.RentPaymentsToResponse(payments, time.Now()),
	}, nil
}

func (s *paymentService) GetListingPayments(ctx context.Context, listingID string) (*response.ListingPaymentsResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", listingID, err)
	}

	payments, err := s.repo.RentPayment.FindByListingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load payments for listing %s: %w", listingID, err)
	}

	now := time.Now()
	resp := &response.ListingPaymentsResponse{
		ListingID: listingID,
		Payments:  response.RentPaymentsToResponse(payments, now),
	}

	for _, p := range payments {
		resp.TotalScheduled += p.Amount
		switch schedule.Status(p, now) {
		case schedule.ViewStatusCompleted:
			resp.TotalCollected += p.Amount
		case schedule.ViewStatusOverdue:
			resp.TotalOverdue += p.Amount
		}
	}

	s.log.Info("Listing payments retrieved",
		zap.String("listing_id", listingID),
		zap.Int("count", len(payments)),
		zap.Int64("total_scheduled", resp.TotalScheduled),
	)

	return resp, nil
}

func (s *paymentService) GetListingBookings(ctx context.Context, listingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", listingID, err)
	}

	bookings, err := s.repo.Booking.FindByListingID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("load bookings for listing %s: %w", listingID, err)
	}

	total, err := s.repo.Booking.CountByListingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count bookings for listing %s: %w", listingID, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *paymentService) HandleCaptureEvent(ctx context.Context, req *request.CaptureEventRequest) (*response.RentPaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Capture event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(req.RentPaymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid rent payment ID format %s: %w", req.RentPaymentID, err)
	}

	var payment *entity.RentPayment

	err = s.repo.Tx.Atomic(ctx, func(r *repository.Repository) error {
		p, err := r.RentPayment.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("rent payment %s: %w", req.RentPaymentID, ErrPaymentNotFound)
		}
		payment = p

		now := time.Now()

		if req.Outcome == "succeeded" {
			// duplicate delivery of a success event is a no-op
			if p.IsPaid {
				return nil
			}

			if err := r.RentPayment.MarkPaid(ctx, id); err != nil {
				return err
			}

			amount := p.Amount
			if p.TotalAmount != nil {
				amount = *p.TotalAmount
			}
			charge := &entity.PaymentCharge{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				RentPaymentID:    id,
				Amount:           amount,
				ProviderChargeID: req.ProviderChargeID,
			}
			if err := r.PaymentRecord.CreateCharge(ctx, charge); err != nil {
				return err
			}

			payment.IsPaid = true
			payment.Status = entity.PaymentStatusPaid
			return nil
		}

		if err := r.RentPayment.MarkFailed(ctx, id); err != nil {
			return err
		}

		failure := &entity.PaymentFailure{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			RentPaymentID: id,
			Reason:        req.FailureReason,
			ProviderCode:  req.FailureCode,
		}
		if err := r.PaymentRecord.CreateFailure(ctx, failure); err != nil {
			return err
		}

		payment.Status = entity.PaymentStatusFailed
		payment.RetryCount++
		return nil
	})
	if err != nil {
		s.log.Error("Failed to handle capture event",
			zap.Error(err),
			zap.String("rent_payment_id", req.RentPaymentID),
			zap.String("outcome", req.Outcome),
		)
		return nil, err
	}

	s.log.Info("Capture event handled",
		zap.String("rent_payment_id", req.RentPaymentID),
		zap.String("outcome", req.Outcome),
		zap.String("booking_id", payment.BookingID.String()),
	)

	resp := response.RentPaymentToResponse(payment, time.Now())
	return &resp, nil
}
