package children

import "errors"

var (
	// ErrChildNotFound возвращается, когда профиль не найден
	ErrChildNotFound = errors.New("child not found")

	// ErrAccessDenied возвращается, когда профиль принадлежит другому родителю
	ErrAccessDenied = errors.New("access denied")

	// ErrChildHasBookings возвращается при удалении ребёнка с запланированными сессиями
	ErrChildHasBookings = errors.New("child has scheduled bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
