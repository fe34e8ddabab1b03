package manage_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда заявка не найдена
	ErrReservationNotFound = errors.New("manage_reservation: reservation not found")

	// ErrCustomerNotFound возвращается, когда заказчик не найден
	ErrCustomerNotFound = errors.New("manage_reservation: customer not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("manage_reservation: service not found")

	// ErrTeamNotFound возвращается, когда одна из назначаемых бригад не существует
	ErrTeamNotFound = errors.New("manage_reservation: team not found")

	// ErrPermissionDenied возвращается, когда у вызывающего нет прав персонала
	ErrPermissionDenied = errors.New("manage_reservation: staff permission required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_reservation: internal error")
)
