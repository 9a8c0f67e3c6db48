package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTherapistNotFound возвращается, когда пользователь не является терапевтом
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не в статусе SCHEDULED
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование не в статусе SCHEDULED
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
