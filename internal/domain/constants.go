package domain

// Slot and policy defaults
const (
	// SlotStepMinutes фиксированный шаг сетки слотов
	SlotStepMinutes = 30

	// TravelBufferGranularityMinutes гранулярность travel-буфера:
	// время в пути округляется вверх до кратного этому значению
	TravelBufferGranularityMinutes = 30

	// DefaultTravelBufferMinutes буфер по умолчанию при недоступности карт
	DefaultTravelBufferMinutes = 30

	// DefaultCutoffHour час (локальное время), после которого закрывается
	// запись на завтра
	DefaultCutoffHour = 17
)

// Duration policy constants
const (
	DurationSmallPropertyMinutes  = 60  // < 3000 sqft
	DurationMediumPropertyMinutes = 90  // 3000-3999 sqft
	DurationLargePropertyMinutes  = 120 // >= 4000 sqft или площадь не указана

	SmallPropertyMaxSqft  = 3000
	MediumPropertyMaxSqft = 4000

	PriceSurchargeHighMinutes = 60 // цена >= 5 000 000
	PriceSurchargeMidMinutes  = 30 // 1 000 000 <= цена < 5 000 000

	PriceSurchargeHighThreshold = 5_000_000
	PriceSurchargeMidThreshold  = 1_000_000
)

// Service type fallback durations, used when square footage is not given
const (
	ServiceTypeStandard = "standard"
	ServiceTypeExtended = "extended"

	DurationServiceStandardMinutes = 120
	DurationServiceExtendedMinutes = 180
	DurationServiceDefaultMinutes  = 60
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDateRangeDays            = 62 // максимальный диапазон для листингов доступности
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Calendar event subject prefixes
const (
	SubjectAppointment = "Photo Session"
	SubjectTravelTo    = "Travel to session"
	SubjectTravelFrom  = "Travel from session"
)
