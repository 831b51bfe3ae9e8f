package availability

import "errors"

var (
	// ErrInvalidWindow возвращается, когда конец интервала не позже начала
	ErrInvalidWindow = errors.New("availability: window end must be after start")

	// ErrInternal возвращается, когда не удалось прочитать расписание или брони
	ErrInternal = errors.New("availability: internal error")
)
