package therapist

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist.repository: therapist not found")

	// ErrTimesAlreadySet время приёма уже активировано и не может быть изменено
	ErrTimesAlreadySet = errors.New("therapist.repository: activated times already set")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("therapist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("therapist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("therapist.repository: failed to scan row")
)
