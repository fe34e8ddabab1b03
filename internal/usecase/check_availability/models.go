package check_availability

import "time"

// Request модель запроса на проверку занятости даты
type Request struct {
	ServiceID  int64     // ID услуги из каталога
	TargetDate time.Time // Проверяемая дата (без времени)
}

// Response модель ответа с результатом проверки.
// Результат носит справочный характер: дата считается занятой, если
// на нее уже есть хотя бы одна заявка по этой услуге, независимо от
// статуса подтверждения.
type Response struct {
	ServiceID   int64  // ID услуги
	TargetDate  string // Проверенная дата в формате YYYY-MM-DD
	IsAvailable bool   // true, если на дату нет ни одной заявки по услуге
}
