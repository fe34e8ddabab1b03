package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrPermissionDenied возвращается, когда у вызывающего нет прав персонала
	ErrPermissionDenied = errors.New("staff permission required")

	// ErrAccessDenied возвращается, когда заказчик запрашивает чужие данные
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
