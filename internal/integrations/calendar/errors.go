package calendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено в календаре
	ErrEventNotFound = errors.New("calendar client: event not found")

	// ErrResourceNotFound возвращается, когда календарь ресурса не найден
	ErrResourceNotFound = errors.New("calendar client: resource calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календаря
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrAllResourcesFailed возвращается, когда занятость не удалось
	// получить ни для одного ресурса
	ErrAllResourcesFailed = errors.New("calendar client: busy lookup failed for all resources")
)
