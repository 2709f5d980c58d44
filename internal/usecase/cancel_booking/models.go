package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	ID     int64  // ID бронирования
	Reason string // Причина отмены (опционально)
}

// Response модель ответа на отмену
type Response struct {
	ID     int64
	Status string
}
