// Package memstore in-memory implementation of the storage repositories
// for unit tests of services, usecases and handlers.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	pricingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/pricing"
)

// Store keeps all entities in memory. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	Services   map[int64]*domain.Service
	Therapists map[int64]*domain.Therapist
	Blocks     []domain.ScheduleBlock
	DaysOff    []domain.DayOff
	Prices     []domain.PriceHistoryEntry
	Promotions []domain.Promotion
	Bookings   []*domain.Booking

	// Err returned by every read when set
	Err error
	// Now used as created_at of inserted bookings
	Now func() time.Time

	nextBookingID int64
}

func New() *Store {
	return &Store{
		Services:      make(map[int64]*domain.Service),
		Therapists:    make(map[int64]*domain.Therapist),
		Now:           time.Now,
		nextBookingID: 1,
	}
}

func (s *Store) AddService(service domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Services[service.ID] = &service
}

func (s *Store) AddTherapist(therapist domain.Therapist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Therapists[therapist.ID] = &therapist
}

func (s *Store) AddBlock(therapistID int64, start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Blocks = append(s.Blocks, domain.ScheduleBlock{
		ID:          int64(len(s.Blocks) + 1),
		TherapistID: therapistID,
		Start:       start,
		End:         end,
	})
}

func (s *Store) AddDayOff(therapistID int64, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DaysOff = append(s.DaysOff, domain.DayOff{
		ID:          int64(len(s.DaysOff) + 1),
		TherapistID: therapistID,
		Date:        date,
	})
}

func (s *Store) AddPrice(entry domain.PriceHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prices = append(s.Prices, entry)
}

func (s *Store) AddPromotion(promo domain.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Promotions = append(s.Promotions, promo)
}

// AddBooking stores b as is and returns its id.
func (s *Store) AddBooking(b domain.Booking) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextBookingID
	}
	if b.ID >= s.nextBookingID {
		s.nextBookingID = b.ID + 1
	}
	s.Bookings = append(s.Bookings, &b)
	return b.ID
}

// BookingCount number of stored bookings
func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Bookings)
}

// Catalog

func (s *Store) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	service, ok := s.Services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *service
	return &copied, nil
}

func (s *Store) GetTherapistByID(_ context.Context, id int64) (*domain.Therapist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	therapist, ok := s.Therapists[id]
	if !ok {
		return nil, catalogRepo.ErrTherapistNotFound
	}
	copied := *therapist
	return &copied, nil
}

// Schedule

func (s *Store) GetContaining(_ context.Context, therapistID int64, start, end time.Time) ([]domain.ScheduleBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	blocks := make([]domain.ScheduleBlock, 0)
	for _, b := range s.Blocks {
		if b.TherapistID == therapistID && !b.Start.After(start) && !b.End.Before(end) {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func (s *Store) GetIntersecting(_ context.Context, therapistID int64, from, to time.Time) ([]domain.ScheduleBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	blocks := make([]domain.ScheduleBlock, 0)
	for _, b := range s.Blocks {
		if b.TherapistID == therapistID && b.Start.Before(to) && b.End.After(from) {
			blocks = append(blocks, b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })
	return blocks, nil
}

func (s *Store) HasDayOff(_ context.Context, therapistID int64, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, d := range s.DaysOff {
		if d.TherapistID == therapistID && d.Date.Format(domain.DateFormat) == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetDaysOff(_ context.Context, therapistID int64, from, to string) ([]domain.DayOff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	daysOff := make([]domain.DayOff, 0)
	for _, d := range s.DaysOff {
		date := d.Date.Format(domain.DateFormat)
		if d.TherapistID == therapistID && date >= from && date <= to {
			daysOff = append(daysOff, d)
		}
	}
	return daysOff, nil
}

// Bookings

func (s *Store) GetActiveIntervalsBefore(_ context.Context, therapistID int64, before time.Time, excludeBookingID *int64) ([]domain.BookedInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	intervals := make([]domain.BookedInterval, 0)
	for _, b := range s.Bookings {
		if b.TherapistID != therapistID || !b.IsActive() || !b.BookingTime.Before(before) {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		service, ok := s.Services[b.ServiceID]
		if !ok {
			continue
		}
		intervals = append(intervals, domain.BookedInterval{
			BookingID:       b.ID,
			Start:           b.BookingTime,
			DurationMinutes: service.DurationMinutes,
		})
	}
	return intervals, nil
}

func (s *Store) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.ID = s.nextBookingID
	s.nextBookingID++
	booking.CreatedAt = s.Now()
	copied := *booking
	s.Bookings = append(s.Bookings, &copied)
	return booking, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, b := range s.Bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *Store) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	bookings := make([]*domain.Booking, 0)
	for _, b := range s.Bookings {
		if filter.TherapistID != nil && b.TherapistID != *filter.TherapistID {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.From != nil && b.BookingTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.BookingTime.Before(*filter.To) {
			continue
		}
		copied := *b
		bookings = append(bookings, &copied)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].BookingTime.Before(bookings[j].BookingTime) })
	return bookings, nil
}

func (s *Store) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.Bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// Pricing

func (s *Store) GetPriceAt(_ context.Context, serviceID int64, at time.Time) (*domain.PriceHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var found *domain.PriceHistoryEntry
	for i := range s.Prices {
		p := s.Prices[i]
		if p.ServiceID != serviceID || p.StartedAt.After(at) {
			continue
		}
		if p.EndedAt != nil && !p.EndedAt.After(at) {
			continue
		}
		if found == nil || p.StartedAt.After(found.StartedAt) {
			found = &p
		}
	}
	if found == nil {
		return nil, pricingRepo.ErrPriceNotFound
	}
	return found, nil
}

func (s *Store) GetActivePromotion(_ context.Context, date string) (*domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var found *domain.Promotion
	for i := range s.Promotions {
		p := s.Promotions[i]
		if !p.IsActive || p.StartDate.Format(domain.DateFormat) > date || p.EndDate.Format(domain.DateFormat) < date {
			continue
		}
		if found == nil || p.ID < found.ID {
			found = &p
		}
	}
	if found == nil {
		return nil, pricingRepo.ErrPromotionNotFound
	}
	return found, nil
}

func (s *Store) GetPromotionByID(_ context.Context, id int64) (*domain.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Promotions {
		if s.Promotions[i].ID == id {
			p := s.Promotions[i]
			return &p, nil
		}
	}
	return nil, pricingRepo.ErrPromotionNotFound
}
