package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	pricingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/pricing"
)

var hundred = decimal.NewFromInt(100)

// Service считает цену услуги для клиента на момент времени
type Service struct {
	serviceRepo ServiceRepository
	priceRepo   PriceRepository
	location    *time.Location
	logger      Logger
}

func NewService(serviceRepo ServiceRepository, priceRepo PriceRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		serviceRepo: serviceRepo,
		priceRepo:   priceRepo,
		location:    location,
		logger:      logger,
	}
}

// CurrentServicePrice цена, действующая на момент at. Если ни одна запись
// истории не покрывает момент, берется базовая цена услуги.
func (s *Service) CurrentServicePrice(ctx context.Context, serviceID int64, at time.Time) (decimal.Decimal, error) {
	entry, err := s.priceRepo.GetPriceAt(ctx, serviceID, at)
	if err == nil {
		return entry.Price, nil
	}
	if !errors.Is(err, pricingRepo.ErrPriceNotFound) {
		s.logger.Error("CurrentServicePrice: service=%d failed to get price history: %v", serviceID, err)
		return decimal.Zero, fmt.Errorf("%w: CurrentServicePrice - get price history: %w", ErrInternal, err)
	}

	service, err := s.serviceRepo.GetServiceByID(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return decimal.Zero, ErrServiceNotFound
	}
	if err != nil {
		s.logger.Error("CurrentServicePrice: service=%d failed to get service: %v", serviceID, err)
		return decimal.Zero, fmt.Errorf("%w: CurrentServicePrice - get service: %w", ErrInternal, err)
	}

	return service.BasePrice, nil
}

// ActivePromotion акция, действующая в календарную дату, nil если нет
func (s *Service) ActivePromotion(ctx context.Context, date time.Time) (*domain.Promotion, error) {
	day := date.In(s.location).Format(domain.DateFormat)

	promo, err := s.priceRepo.GetActivePromotion(ctx, day)
	if errors.Is(err, pricingRepo.ErrPromotionNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("ActivePromotion: date=%s failed to get promotion: %v", day, err)
		return nil, fmt.Errorf("%w: ActivePromotion - get promotion: %w", ErrInternal, err)
	}

	return promo, nil
}

// ApplyDiscount применяет акцию к base.
// Percent: base * (1 - v/100), без ограничения снизу. Amount: max(0, base - v).
func ApplyDiscount(base decimal.Decimal, promo *domain.Promotion) decimal.Decimal {
	if promo == nil {
		return base
	}

	switch promo.DiscountType {
	case domain.DiscountPercent:
		return base.Mul(hundred.Sub(promo.DiscountValue)).Div(hundred)
	case domain.DiscountAmount:
		discounted := base.Sub(promo.DiscountValue)
		if discounted.IsNegative() {
			return decimal.Zero
		}
		return discounted
	default:
		return base
	}
}

// CalculateBookingPrice итоговая цена брони, начинающейся в at.
// Явно переданная акция применяется как есть, без проверки флага активности
// и дат. Иначе берется акция, активная в локальную дату at.
// Результат округляется до 2 знаков, половина от нуля.
func (s *Service) CalculateBookingPrice(ctx context.Context, serviceID int64, at time.Time, promotionID *int64) (*domain.PriceQuote, error) {
	base, err := s.CurrentServicePrice(ctx, serviceID, at)
	if err != nil {
		return nil, err
	}

	var promo *domain.Promotion
	if promotionID != nil {
		promo, err = s.priceRepo.GetPromotionByID(ctx, *promotionID)
		if errors.Is(err, pricingRepo.ErrPromotionNotFound) {
			s.logger.Warn("CalculateBookingPrice: promotion id=%d not found", *promotionID)
			return nil, ErrPromotionNotFound
		}
		if err != nil {
			s.logger.Error("CalculateBookingPrice: failed to get promotion id=%d: %v", *promotionID, err)
			return nil, fmt.Errorf("%w: CalculateBookingPrice - get promotion: %w", ErrInternal, err)
		}
	} else {
		promo, err = s.ActivePromotion(ctx, at)
		if err != nil {
			return nil, err
		}
	}

	return &domain.PriceQuote{
		Price:     ApplyDiscount(base, promo).Round(domain.PriceDecimalPlaces),
		BasePrice: base,
		Promotion: promo,
	}, nil
}
