package pricing

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("pricing: service not found")

	// ErrPromotionNotFound возвращается, когда явно запрошенная акция не найдена
	ErrPromotionNotFound = errors.New("pricing: promotion not found")

	// ErrInternal возвращается, когда не удалось прочитать цены
	ErrInternal = errors.New("pricing: internal error")
)
