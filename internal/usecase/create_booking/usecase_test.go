package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

const (
	serviceID   = int64(1)
	therapistID = int64(7)
)

var now = time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
	err    error
}

func (n *fakeNotifier) Publish(_ context.Context, event notifier.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type fakeObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *fakeObserver) ObserveBooking(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

type failingTxManager struct {
	err error
}

func (m failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

type fixture struct {
	uc       *UseCase
	store    *memstore.Store
	notifier *fakeNotifier
	observer *fakeObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	store.Now = func() time.Time { return now }
	store.AddService(domain.Service{ID: serviceID, Name: "Thai massage", DurationMinutes: 60, BasePrice: decimal.NewFromInt(100), IsActive: true})
	store.AddTherapist(domain.Therapist{ID: therapistID, Name: "Mali", IsActive: true})
	store.AddBlock(therapistID, at(2, 9, 0), at(2, 18, 0))

	f := &fixture{store: store, notifier: &fakeNotifier{}, observer: &fakeObserver{}}
	f.uc = f.build(&memstore.TxManager{})
	return f
}

func (f *fixture) build(tx TransactionManager) *UseCase {
	engine := availability.NewEngine(f.store, f.store, time.UTC, memstore.Logger{})
	priceSvc := pricing.NewService(f.store, f.store, time.UTC, memstore.Logger{})
	return NewUseCase(
		f.store,
		f.store,
		engine,
		priceSvc,
		f.notifier,
		tx,
		f.observer,
		domain.DefaultBookingPolicy(time.UTC),
		memstore.Logger{},
	).WithTimeProvider(memstore.Clock{T: now})
}

func validRequest(start time.Time) *Request {
	return &Request{
		CustomerName:  "Somchai",
		CustomerPhone: "0812345678",
		ServiceID:     serviceID,
		TherapistID:   therapistID,
		BookingTime:   start,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "BK-250301-1", resp.Reference)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "100.00", resp.Price.StringFixed(2))
	assert.Equal(t, at(2, 11, 0), resp.EndTime)
	assert.Nil(t, resp.PromotionID)
	assert.Equal(t, 1, f.store.BookingCount())

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, f.notifier.events[0].Type)
	assert.Equal(t, "BK-250301-1", f.notifier.events[0].Reference)
	assert.Equal(t, []string{outcomeCreated}, f.observer.outcomes)
}

func TestExecute_TrimsCustomerName(t *testing.T) {
	f := newFixture(t)
	req := validRequest(at(2, 10, 0))
	req.CustomerName = "  Somchai  "

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Somchai", resp.CustomerName)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"short name", func(r *Request) { r.CustomerName = "A" }},
		{"phone with letters", func(r *Request) { r.CustomerPhone = "08123abcde" }},
		{"short phone", func(r *Request) { r.CustomerPhone = "12345" }},
		{"no service", func(r *Request) { r.ServiceID = 0 }},
		{"no therapist", func(r *Request) { r.TherapistID = -1 }},
		{"no time", func(r *Request) { r.BookingTime = time.Time{} }},
		{"bad promotion id", func(r *Request) { r.PromotionID = ptr.Ptr(int64(0)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest(at(2, 10, 0))
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.store.BookingCount())
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest(at(2, 10, 0))
	req.ServiceID = 42
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = validRequest(at(2, 10, 0))
	req.TherapistID = 42
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	assert.Equal(t, []string{outcomeNotFound, outcomeNotFound}, f.observer.outcomes)
}

func TestExecute_InactiveResources(t *testing.T) {
	f := newFixture(t)
	f.store.AddService(domain.Service{ID: 2, DurationMinutes: 60, BasePrice: decimal.NewFromInt(50), IsActive: false})
	f.store.AddTherapist(domain.Therapist{ID: 8, IsActive: false})

	req := validRequest(at(2, 10, 0))
	req.ServiceID = 2
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceInactive)
	assert.ErrorIs(t, err, ErrInactiveResource)

	req = validRequest(at(2, 10, 0))
	req.TherapistID = 8
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTherapistInactive)
	assert.ErrorIs(t, err, ErrInactiveResource)
}

func TestExecute_BookingWindow(t *testing.T) {
	f := newFixture(t)
	// block crossing the end of the horizon
	f.store.AddBlock(therapistID, at(15, 23, 0), time.Date(2025, 3, 16, 1, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), validRequest(at(1, 16, 0)))
	assert.ErrorIs(t, err, ErrOutOfWindow, "today is before the lead time")

	_, err = f.uc.Execute(context.Background(), validRequest(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrOutOfWindow, "one second after the horizon")

	resp, err := f.uc.Execute(context.Background(), validRequest(time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC)))
	require.NoError(t, err, "last second of the horizon")
	assert.NotZero(t, resp.BookingID)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest(at(2, 10, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// back to back is fine
	_, err = f.uc.Execute(context.Background(), validRequest(at(2, 11, 0)))
	assert.NoError(t, err)

	// outside the schedule
	_, err = f.uc.Execute(context.Background(), validRequest(at(2, 17, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DayOff(t *testing.T) {
	f := newFixture(t)
	f.store.AddDayOff(therapistID, at(2, 0, 0))

	_, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ActivePromotion(t *testing.T) {
	f := newFixture(t)
	f.store.AddPromotion(domain.Promotion{
		ID: 4, Title: "Spring", DiscountType: domain.DiscountPercent, DiscountValue: decimal.NewFromInt(10),
		StartDate: at(1, 0, 0), EndDate: at(31, 0, 0), IsActive: true,
	})

	resp, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	require.NoError(t, err)
	assert.Equal(t, "90.00", resp.Price.StringFixed(2))
	assert.Equal(t, "100.00", resp.BasePrice.StringFixed(2))
	require.NotNil(t, resp.PromotionID)
	assert.Equal(t, int64(4), *resp.PromotionID)
}

func TestExecute_UnknownPromotion(t *testing.T) {
	f := newFixture(t)
	req := validRequest(at(2, 10, 0))
	req.PromotionID = ptr.Ptr(int64(99))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
	assert.Equal(t, 0, f.store.BookingCount())
}

func TestExecute_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("kafka unavailable")

	resp, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	require.NoError(t, err)
	assert.NotZero(t, resp.BookingID)
	assert.Len(t, f.notifier.events, 1)
}

func TestExecute_StorageError(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{outcomeError}, f.observer.outcomes)
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture(t)
	uc := f.build(failingTxManager{err: fmt.Errorf("%w: commit: could not serialize access", txmanager.ErrSerializationFailure)})

	_, err := uc.Execute(context.Background(), validRequest(at(2, 10, 0)))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, []string{outcomeConflict}, f.observer.outcomes)
}

func TestExecute_ConcurrentAttemptsOnlyOneSucceeds(t *testing.T) {
	f := newFixture(t)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// overlapping starts 10:00, 10:15, 10:30 ...
			start := at(2, 10, 0).Add(time.Duration(i%3) * 15 * time.Minute)
			_, err := f.uc.Execute(context.Background(), validRequest(start))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			failures = append(failures, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.BookingCount())
	for _, err := range failures {
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeCreated, outcomeOf(nil))
	assert.Equal(t, outcomeInactive, outcomeOf(ErrTherapistInactive))
	assert.Equal(t, outcomeOutOfWindow, outcomeOf(fmt.Errorf("%w: x", ErrOutOfWindow)))
	assert.Equal(t, outcomeSlotUnavailable, outcomeOf(ErrSlotNotAvailable))
	assert.Equal(t, outcomeError, outcomeOf(errors.New("boom")))
}
