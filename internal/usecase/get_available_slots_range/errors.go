package get_available_slots_range

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots_range: invalid input data")

	// ErrRangeTooWide возвращается, когда период превышает максимальный
	ErrRangeTooWide = errors.New("get_available_slots_range: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots_range: internal error")
)
