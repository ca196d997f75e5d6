package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"rentpay/internal/data/entity"
	"rentpay/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeStore backs the repository fakes with in-memory maps so the services
// can be exercised without postgres.
type fakeStore struct {
	matches  map[uuid.UUID]*entity.Match
	bookings map[uuid.UUID]*entity.Booking
	trips    map[uuid.UUID]*entity.Trip
	payments map[uuid.UUID]*entity.RentPayment

	charges       []*entity.PaymentCharge
	modifications []*entity.PaymentModification
	failures      []*entity.PaymentFailure

	// onBookingCreate runs before Create's uniqueness check; tests use it to
	// slip a concurrent winner in.
	onBookingCreate func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		matches:  make(map[uuid.UUID]*entity.Match),
		bookings: make(map[uuid.UUID]*entity.Booking),
		trips:    make(map[uuid.UUID]*entity.Trip),
		payments: make(map[uuid.UUID]*entity.RentPayment),
	}
}

func newFakeRepository(store *fakeStore) *repository.Repository {
	r := &repository.Repository{
		Booking:       fakeBookingRepo{store},
		Match:         fakeMatchRepo{store},
		Trip:          fakeTripRepo{store},
		RentPayment:   fakeRentPaymentRepo{store},
		PaymentRecord: fakePaymentRecordRepo{store},
	}
	r.Tx = &fakeTxManager{store: store, repos: r}
	return r
}

// fakeTxManager snapshots the store before fn and restores it when fn fails,
// mimicking a rolled-back transaction.
type fakeTxManager struct {
	store *fakeStore
	repos *repository.Repository
}

func (m *fakeTxManager) Atomic(ctx context.Context, fn func(r *repository.Repository) error) error {
	snapshot := m.store.clone()
	if err := fn(m.repos); err != nil {
		m.store.restore(snapshot)
		return err
	}
	return nil
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, m := range s.matches {
		v := *m
		c.matches[id] = &v
	}
	for id, b := range s.bookings {
		v := *b
		c.bookings[id] = &v
	}
	for id, t := range s.trips {
		v := *t
		c.trips[id] = &v
	}
	for id, p := range s.payments {
		v := *p
		c.payments[id] = &v
	}
	c.charges = append([]*entity.PaymentCharge(nil), s.charges...)
	c.modifications = append([]*entity.PaymentModification(nil), s.modifications...)
	c.failures = append([]*entity.PaymentFailure(nil), s.failures...)
	return c
}

func (s *fakeStore) restore(snapshot *fakeStore) {
	s.matches = snapshot.matches
	s.bookings = snapshot.bookings
	s.trips = snapshot.trips
	s.payments = snapshot.payments
	s.charges = snapshot.charges
	s.modifications = snapshot.modifications
	s.failures = snapshot.failures
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "bookings_match_id_key"}
}

type fakeBookingRepo struct{ s *fakeStore }

func (r fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if r.s.onBookingCreate != nil {
		r.s.onBookingCreate()
	}
	for _, b := range r.s.bookings {
		if b.MatchID == booking.MatchID {
			return fmt.Errorf("insert booking: %w", uniqueViolation())
		}
	}
	v := *booking
	r.s.bookings[booking.ID] = &v
	return nil
}

func (r fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	v := *b
	return &v, nil
}

func (r fakeBookingRepo) FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.s.bookings {
		if b.MatchID == matchID {
			v := *b
			return &v, nil
		}
	}
	return nil, nil
}

func (r fakeBookingRepo) FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.ListingID == listingID {
			v := *b
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeBookingRepo) CountByListingID(ctx context.Context, listingID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.s.bookings {
		if b.ListingID == listingID {
			n++
		}
	}
	return n, nil
}

func (r fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (r fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r fakeBookingRepo) UpdateLease(ctx context.Context, bookingID uuid.UUID, start, end time.Time, monthlyRent, totalPrice int64) error {
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	b.StartDate = start
	b.EndDate = end
	b.MonthlyRent = monthlyRent
	b.TotalPrice = totalPrice
	return nil
}

type fakeMatchRepo struct{ s *fakeStore }

func (r fakeMatchRepo) Create(ctx context.Context, match *entity.Match) error {
	v := *match
	r.s.matches[match.ID] = &v
	return nil
}

func (r fakeMatchRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error) {
	m, ok := r.s.matches[id]
	if !ok {
		return nil, nil
	}
	v := *m
	return &v, nil
}

func (r fakeMatchRepo) UpdateMonthlyRent(ctx context.Context, matchID uuid.UUID, monthlyRent int64) error {
	m, ok := r.s.matches[matchID]
	if !ok {
		return errors.New("match not found")
	}
	m.MonthlyRent = monthlyRent
	return nil
}

func (r fakeMatchRepo) MarkPaymentCaptured(ctx context.Context, matchID uuid.UUID) error {
	m, ok := r.s.matches[matchID]
	if !ok {
		return errors.New("match not found")
	}
	now := time.Now()
	m.PaymentCapturedAt = &now
	return nil
}

type fakeTripRepo struct{ s *fakeStore }

func (r fakeTripRepo) FindByMatchID(ctx context.Context, matchID uuid.UUID) (*entity.Trip, error) {
	for _, t := range r.s.trips {
		if t.MatchID != nil && *t.MatchID == matchID {
			v := *t
			return &v, nil
		}
	}
	return nil, nil
}

func (r fakeTripRepo) MarkBookedByMatch(ctx context.Context, matchID uuid.UUID) error {
	for _, t := range r.s.trips {
		if t.MatchID != nil && *t.MatchID == matchID {
			t.Status = entity.TripStatusBooked
		}
	}
	return nil
}

type fakeRentPaymentRepo struct{ s *fakeStore }

func (r fakeRentPaymentRepo) CreateBatch(ctx context.Context, payments []*entity.RentPayment) error {
	for _, p := range payments {
		v := *p
		r.s.payments[p.ID] = &v
	}
	return nil
}

func (r fakeRentPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RentPayment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r fakeRentPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error) {
	var out []*entity.RentPayment
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			v := *p
			out = append(out, &v)
		}
	}
	sortPayments(out)
	return out, nil
}

func (r fakeRentPaymentRepo) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.RentPayment, error) {
	var out []*entity.RentPayment
	for _, p := range r.s.payments {
		b, ok := r.s.bookings[p.BookingID]
		if ok && b.ListingID == listingID {
			v := *p
			out = append(out, &v)
		}
	}
	sortPayments(out)
	return out, nil
}

func (r fakeRentPaymentRepo) FindReplaceableByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RentPayment, error) {
	var out []*entity.RentPayment
	for _, p := range r.s.payments {
		if p.BookingID == bookingID && p.Type != entity.PaymentTypeSecurityDeposit {
			v := *p
			out = append(out, &v)
		}
	}
	sortPayments(out)
	return out, nil
}

func (r fakeRentPaymentRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := r.s.payments[id]; !ok {
			return fmt.Errorf("rent payment %s not found", id)
		}
		delete(r.s.payments, id)
	}
	return nil
}

func (r fakeRentPaymentRepo) MarkPaid(ctx context.Context, paymentID uuid.UUID) error {
	p, ok := r.s.payments[paymentID]
	if !ok {
		return errors.New("rent payment not found")
	}
	p.IsPaid = true
	p.Status = entity.PaymentStatusPaid
	return nil
}

func (r fakeRentPaymentRepo) MarkFailed(ctx context.Context, paymentID uuid.UUID) error {
	p, ok := r.s.payments[paymentID]
	if !ok {
		return errors.New("rent payment not found")
	}
	p.Status = entity.PaymentStatusFailed
	p.RetryCount++
	return nil
}

type fakePaymentRecordRepo struct{ s *fakeStore }

func (r fakePaymentRecordRepo) CreateCharge(ctx context.Context, charge *entity.PaymentCharge) error {
	v := *charge
	r.s.charges = append(r.s.charges, &v)
	return nil
}

func (r fakePaymentRecordRepo) CreateModification(ctx context.Context, mod *entity.PaymentModification) error {
	v := *mod
	r.s.modifications = append(r.s.modifications, &v)
	return nil
}

func (r fakePaymentRecordRepo) CreateFailure(ctx context.Context, failure *entity.PaymentFailure) error {
	v := *failure
	r.s.failures = append(r.s.failures, &v)
	return nil
}

func (r fakePaymentRecordRepo) FindFailuresByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentFailure, error) {
	var out []*entity.PaymentFailure
	for _, f := range r.s.failures {
		if f.RentPaymentID == paymentID {
			v := *f
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r fakePaymentRecordRepo) DeleteModificationsByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	r.s.modifications = filterRecords(r.s.modifications, paymentIDs, func(m *entity.PaymentModification) uuid.UUID { return m.RentPaymentID })
	return nil
}

func (r fakePaymentRecordRepo) DeleteChargesByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	r.s.charges = filterRecords(r.s.charges, paymentIDs, func(c *entity.PaymentCharge) uuid.UUID { return c.RentPaymentID })
	return nil
}

func (r fakePaymentRecordRepo) DeleteFailuresByPaymentIDs(ctx context.Context, paymentIDs []uuid.UUID) error {
	r.s.failures = filterRecords(r.s.failures, paymentIDs, func(f *entity.PaymentFailure) uuid.UUID { return f.RentPaymentID })
	return nil
}

func filterRecords[T any](records []*T, paymentIDs []uuid.UUID, key func(*T) uuid.UUID) []*T {
	drop := make(map[uuid.UUID]bool, len(paymentIDs))
	for _, id := range paymentIDs {
		drop[id] = true
	}
	var kept []*T
	for _, r := range records {
		if !drop[key(r)] {
			kept = append(kept, r)
		}
	}
	return kept
}

func sortPayments(payments []*entity.RentPayment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.Before(payments[j].DueDate)
		}
		return payments[i].Type < payments[j].Type
	})
}

// fakeProvider scripts the capture provider's answers.
type fakeProvider struct {
	status string
	err    error

	retrieveCalls int
	attachCalls   []string
}

func (p *fakeProvider) RetrievePaymentIntent(ctx context.Context, intentID string) (string, error) {
	p.retrieveCalls++
	if p.err != nil {
		return "", p.err
	}
	return p.status, nil
}

func (p *fakeProvider) AttachPaymentMethod(ctx context.Context, methodRef, customerRef string) error {
	p.attachCalls = append(p.attachCalls, methodRef+":"+customerRef)
	return nil
}
