package maps

import "errors"

var (
	// ErrNoRoute возвращается, когда маршрут до адреса не найден
	ErrNoRoute = errors.New("maps client: no route found")

	// ErrGeocodeFailed возвращается, когда адрес не удалось геокодировать
	// и для него нет записи в таблице fallback-координат
	ErrGeocodeFailed = errors.New("maps client: geocoding failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("maps client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса карт
	ErrInvalidResponse = errors.New("maps client: invalid response")
)
