package teams

import "errors"

var (
	// ErrTeamNotFound возвращается, когда бригада не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrEmployeeNotFound возвращается при ссылке на несуществующего сотрудника
	ErrEmployeeNotFound = errors.New("referenced employee not found")

	// ErrPermissionDenied возвращается, когда у вызывающего нет прав персонала
	ErrPermissionDenied = errors.New("staff permission required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
