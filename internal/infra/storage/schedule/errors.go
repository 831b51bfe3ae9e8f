package schedule

import "errors"

var (
	// ErrBuildQuery returned when the SQL query could not be built
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery returned when the SQL query failed
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow returned when a result row could not be scanned
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
