package create_booking

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("create_booking: therapist not found")

	// ErrNoActivatedTimes возвращается, когда у терапевта нет активированного времени
	ErrNoActivatedTimes = errors.New("create_booking: therapist has no activated times")

	// ErrTherapistInactive возвращается, когда терапевт не принимает записи (статус не active)
	ErrTherapistInactive = errors.New("create_booking: therapist is not active")

	// ErrChildNotFound возвращается, когда профиль ребёнка не найден
	ErrChildNotFound = errors.New("create_booking: child not found")

	// ErrChildNotOwned возвращается, когда ребёнок принадлежит другому родителю
	ErrChildNotOwned = errors.New("create_booking: child does not belong to parent")

	// ErrInvalidDate возвращается при дате (или времени сегодняшнего слота) в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrNotWorkingDay возвращается для субботы и воскресенья
	ErrNotWorkingDay = errors.New("create_booking: date is a weekend")

	// ErrTimeNotActivated возвращается, когда время не входит в активированные времена терапевта
	ErrTimeNotActivated = errors.New("create_booking: time is not activated by therapist")

	// ErrTherapistOnLeave возвращается, когда у терапевта одобрен выходной на эту дату
	ErrTherapistOnLeave = errors.New("create_booking: therapist is on leave")

	// ErrSlotConflict возвращается, когда слот уже занят (в том числе проигранная гонка)
	ErrSlotConflict = errors.New("create_booking: slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
