package booking

import "errors"

var (
	// ErrBookingNotFound returned when no booking has the requested id
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBuildQuery returned when the SQL query could not be built
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery returned when the SQL query failed
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow returned when a result row could not be scanned
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
