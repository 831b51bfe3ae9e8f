package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
)

// BookingRepository bookings storage
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// CatalogRepository service duration and therapist row lock
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetTherapistByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// AvailabilityChecker decides whether a therapist window is free
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, therapistID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// TransactionManager runs fn in a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier publishes booking events
type Notifier interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
