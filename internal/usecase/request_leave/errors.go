package request_leave

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда пользователь не является терапевтом
	ErrTherapistNotFound = errors.New("request_leave: therapist not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("request_leave: leave date is in the past")

	// ErrLeaveAlreadyExists возвращается, когда на дату уже есть заявка
	ErrLeaveAlreadyExists = errors.New("request_leave: leave already requested for this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_leave: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_leave: internal error")
)
