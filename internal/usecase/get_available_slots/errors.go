package get_available_slots

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrNoActivatedTimes возвращается, когда терапевт ещё не активировал время приёма
	ErrNoActivatedTimes = errors.New("therapist has no activated times")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
