package sync_avito

// Request модель запроса на синхронизацию площадки с Авито.
// Пустые границы окна означают год вперед от сегодняшней даты.
type Request struct {
	OwnerID    int64
	PropertyID int64
	From       string // Начало окна "2026-08-01" (опционально)
	To         string // Конец окна, не включается (опционально)
}

// Response результат синхронизации
type Response struct {
	PropertyID int64
	ListingID  int64
	From       string
	To         string
	PricesDays int // Количество выгруженных цен по дням
	BusyRanges int // Количество выгруженных занятых интервалов
}
