package employees

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrPermissionDenied возвращается, когда у вызывающего нет прав персонала
	ErrPermissionDenied = errors.New("staff permission required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
