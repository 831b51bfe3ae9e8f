package pricing

import "errors"

var (
	// ErrPriceNotFound returned when no price history entry covers the instant
	ErrPriceNotFound = errors.New("pricing.repository: price not found")

	// ErrPromotionNotFound returned when no promotion matches
	ErrPromotionNotFound = errors.New("pricing.repository: promotion not found")

	// ErrBuildQuery returned when the SQL query could not be built
	ErrBuildQuery = errors.New("pricing.repository: failed to build query")

	// ErrScanRow returned when a result row could not be scanned
	ErrScanRow = errors.New("pricing.repository: failed to scan row")
)
