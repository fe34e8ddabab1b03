package customers

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда заказчик не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrPermissionDenied возвращается, когда у вызывающего нет прав персонала
	ErrPermissionDenied = errors.New("staff permission required")

	// ErrAccessDenied возвращается, когда заказчик запрашивает чужие данные
	ErrAccessDenied = errors.New("access denied")

	// ErrEmailTaken возвращается, когда email уже занят другим заказчиком
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
