package manage_reservation

import "time"

// Request модель запроса на обновление заявки персоналом.
// Запрос описывает полное целевое состояние заявки: переданный набор
// бригад замещает текущий целиком.
type Request struct {
	StaffID       int64     // ID сотрудника, выполняющего операцию
	ReservationID int64     // ID обновляемой заявки
	CustomerID    int64     // ID заказчика
	ServiceID     int64     // ID услуги из каталога
	TargetDate    time.Time // Дата выполнения работ (без времени)
	Comment       *string   // Комментарий (опционально)
	IsAccepted    bool      // Признак подтверждения заявки
	TeamIDs       []int64   // Полный набор назначаемых бригад
}

// Response модель ответа с обновленной заявкой
type Response struct {
	ID         int64   // ID заявки
	CustomerID int64   // ID заказчика
	ServiceID  int64   // ID услуги
	TargetDate string  // Дата выполнения в формате YYYY-MM-DD
	Comment    *string // Комментарий
	IsAccepted bool    // Признак подтверждения
	TeamIDs    []int64 // Назначенные бригады

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
