package create_reservation

import "time"

// Request модель запроса на создание заявки
type Request struct {
	CustomerID int64     // ID заказчика (берется из аутентификации)
	ServiceID  int64     // ID услуги из каталога
	TargetDate time.Time // Желаемая дата выполнения работ (без времени)
	Comment    *string   // Комментарий заказчика (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID         int64   // ID созданной заявки
	CustomerID int64   // ID заказчика
	ServiceID  int64   // ID услуги
	TargetDate string  // Дата выполнения в формате YYYY-MM-DD
	Comment    *string // Комментарий заказчика
	IsAccepted bool    // Признак подтверждения (новая заявка всегда ожидает)
	TeamIDs    []int64 // Назначенные бригады (у новой заявки пусто)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
