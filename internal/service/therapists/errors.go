package therapists

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrTimesAlreadyActivated возвращается при повторной активации времени приёма
	ErrTimesAlreadyActivated = errors.New("activated times are already set")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
