package duration

import (
	"context"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// TravelEstimator интерфейс оценки travel-буфера
type TravelEstimator interface {
	BufferMinutes(ctx context.Context, address string, arrival *time.Time) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// QuoteInputs входные данные для расчёта длительности съёмки
type QuoteInputs struct {
	SquareFootage *int     // Площадь объекта (кв. футы)
	PropertyPrice *float64 // Цена объекта
	ServiceType   string   // Тип услуги - fallback, когда площадь не указана
	Address       string   // Адрес объекта; пусто = без выезда
	BookingTime   *time.Time
}

// Policy вычисляет полную длительность записи:
// база по площади + надбавка за цену + 2 x travel-буфер.
type Policy struct {
	travel TravelEstimator
	log    Logger
}

// NewPolicy создает новую политику длительности
func NewPolicy(travel TravelEstimator, log Logger) *Policy {
	return &Policy{
		travel: travel,
		log:    log,
	}
}

// Quote вычисляет длительность записи по атрибутам объекта.
// Правила применяются по порядку: база, надбавка за цену, travel.
func (p *Policy) Quote(ctx context.Context, inputs QuoteInputs) domain.DurationQuote {
	base := baseMinutes(inputs)
	surcharge := priceSurchargeMinutes(inputs.PropertyPrice)

	buffer := 0
	if inputs.Address != "" {
		buffer = p.travel.BufferMinutes(ctx, inputs.Address, inputs.BookingTime)
	}

	return domain.DurationQuote{
		BaseMinutes:           base,
		PriceSurchargeMinutes: surcharge,
		TravelBufferMinutes:   buffer,
		TotalMinutes:          base + surcharge + 2*buffer,
	}
}

// baseMinutes база по площади; без площади - по таблице типов услуг
func baseMinutes(inputs QuoteInputs) int {
	if inputs.SquareFootage == nil || *inputs.SquareFootage <= 0 {
		return serviceTypeMinutes(inputs.ServiceType)
	}

	sqft := *inputs.SquareFootage
	switch {
	case sqft < domain.SmallPropertyMaxSqft:
		return domain.DurationSmallPropertyMinutes
	case sqft < domain.MediumPropertyMaxSqft:
		return domain.DurationMediumPropertyMinutes
	default:
		return domain.DurationLargePropertyMinutes
	}
}

func serviceTypeMinutes(serviceType string) int {
	switch serviceType {
	case domain.ServiceTypeStandard:
		return domain.DurationServiceStandardMinutes
	case domain.ServiceTypeExtended:
		return domain.DurationServiceExtendedMinutes
	case "":
		// Ни площади, ни типа услуги - максимальная база
		return domain.DurationLargePropertyMinutes
	default:
		return domain.DurationServiceDefaultMinutes
	}
}

func priceSurchargeMinutes(price *float64) int {
	if price == nil {
		return 0
	}
	switch {
	case *price >= domain.PriceSurchargeHighThreshold:
		return domain.PriceSurchargeHighMinutes
	case *price >= domain.PriceSurchargeMidThreshold:
		return domain.PriceSurchargeMidMinutes
	default:
		return 0
	}
}
