package export_calendar

// Request модель запроса выгрузки календаря
type Request struct {
	PropertyID string
}

// Response календарь в формате iCalendar
type Response struct {
	Filename string // Например "casa-azul.ics"
	Body     string
	Events   int
}
