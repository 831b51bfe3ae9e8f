package get_available_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается, когда не удалось прочитать расписание или брони
	ErrInternal = errors.New("get_available_dates: internal error")
)
