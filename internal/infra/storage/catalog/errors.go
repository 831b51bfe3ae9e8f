package catalog

import "errors"

var (
	// ErrServiceNotFound returned when no service has the requested id
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrTherapistNotFound returned when no therapist has the requested id
	ErrTherapistNotFound = errors.New("catalog.repository: therapist not found")

	// ErrBuildQuery returned when the SQL query could not be built
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow returned when a result row could not be scanned
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
