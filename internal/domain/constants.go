package domain

// Default booking policy values
const (
	DefaultLeadDays        = 1
	DefaultHorizonDays     = 14
	DefaultSlotStepMinutes = 30
	DefaultTimezone        = "Asia/Bangkok"
)

// Business validation constants
const (
	MinSlotStepMinutes    = 5
	MaxSlotStepMinutes    = 240
	MaxHorizonDays        = 365
	MinCustomerNameLength = 2
	MaxCustomerNameLength = 100
	PriceDecimalPlaces    = 2
)

// Booking reference format: BK-<YYMMDD>-<id>
const (
	ReferencePrefix     = "BK"
	ReferenceDateFormat = "060102"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses every status a booking can be in
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusDone,
	StatusCancelled,
}
