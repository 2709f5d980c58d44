package get_available_dates

// Request модель запроса доступных дат за период
type Request struct {
	StartDate     string   // Начало периода в формате YYYY-MM-DD
	EndDate       string   // Конец периода в формате YYYY-MM-DD (включительно)
	SquareFootage *int     // Площадь объекта (опционально)
	PropertyPrice *float64 // Цена объекта (опционально)
	ServiceType   string   // Тип услуги (опционально)
	Address       string   // Адрес объекта; пусто = съёмка без выезда
}

// Response модель ответа со списком доступных дат
type Response struct {
	Dates []string // Даты в формате YYYY-MM-DD, по возрастанию
}
