package create_recurring_bookings

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("create_recurring_bookings: therapist not found")

	// ErrNoActivatedTimes возвращается, когда у терапевта нет активированного времени
	ErrNoActivatedTimes = errors.New("create_recurring_bookings: therapist has no activated times")

	// ErrTherapistInactive возвращается, когда терапевт не принимает записи
	ErrTherapistInactive = errors.New("create_recurring_bookings: therapist is not active")

	// ErrTimeNotActivated возвращается, когда время не входит в активированные времена терапевта
	ErrTimeNotActivated = errors.New("create_recurring_bookings: time is not activated by therapist")

	// ErrChildNotFound возвращается, когда профиль ребёнка не найден
	ErrChildNotFound = errors.New("create_recurring_bookings: child not found")

	// ErrChildNotOwned возвращается, когда ребёнок принадлежит другому родителю
	ErrChildNotOwned = errors.New("create_recurring_bookings: child does not belong to parent")

	// ErrInvalidDate возвращается, когда дата начала в прошлом
	ErrInvalidDate = errors.New("create_recurring_bookings: start date is in the past")

	// ErrWeekendStart возвращается, когда дата начала приходится на выходной
	ErrWeekendStart = errors.New("create_recurring_bookings: start date is a weekend")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_bookings: internal error")
)
