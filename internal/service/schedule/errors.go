package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBookable базовая ошибка: на дату нельзя записаться.
	// Все конкретные причины ниже матчатся через errors.Is с ней.
	ErrNotBookable = errors.New("schedule: date is not bookable")

	// ErrDateInPast дата раньше сегодняшнего дня
	ErrDateInPast = fmt.Errorf("%w: date is in the past", ErrNotBookable)

	// ErrSameDay запись день в день запрещена всегда
	ErrSameDay = fmt.Errorf("%w: same-day booking is not allowed", ErrNotBookable)

	// ErrAfterCutoff запись на завтра после часа отсечки
	ErrAfterCutoff = fmt.Errorf("%w: next-day cutoff has passed", ErrNotBookable)

	// ErrHoliday дата является выходным днём студии
	ErrHoliday = fmt.Errorf("%w: holiday", ErrNotBookable)

	// ErrClosed на этот день недели нет активных рабочих часов
	ErrClosed = fmt.Errorf("%w: no active operating window", ErrNotBookable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
