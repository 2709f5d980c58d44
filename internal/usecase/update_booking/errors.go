package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrCannotModify возвращается, когда бронирование нельзя переносить
	// (например, оно уже отменено)
	ErrCannotModify = errors.New("update_booking: booking cannot be modified")

	// ErrDateNotBookable возвращается, когда на новую дату нельзя записаться
	ErrDateNotBookable = errors.New("update_booking: date is not bookable")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен
	ErrSlotNotAvailable = errors.New("update_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
