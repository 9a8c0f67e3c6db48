package check_availability

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("check_availability: therapist not found")

	// ErrNoActivatedTimes возвращается, когда у терапевта нет активированного времени
	ErrNoActivatedTimes = errors.New("check_availability: therapist has no activated times")

	// ErrTimeNotActivated возвращается, когда время не входит в активированные времена терапевта
	ErrTimeNotActivated = errors.New("check_availability: time is not activated by therapist")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("check_availability: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
