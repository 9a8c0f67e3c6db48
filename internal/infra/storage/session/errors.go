package session

import "errors"

var (
	// ErrReportNotFound возвращается, когда отчёт по сессии не найден
	ErrReportNotFound = errors.New("session.repository: report not found")

	// ErrReportAlreadyExists по бронированию уже есть отчёт
	ErrReportAlreadyExists = errors.New("session.repository: report already exists")

	// ErrFeedbackNotFound возвращается, когда отзыв по сессии не найден
	ErrFeedbackNotFound = errors.New("session.repository: feedback not found")

	// ErrFeedbackAlreadyExists по бронированию уже есть отзыв
	ErrFeedbackAlreadyExists = errors.New("session.repository: feedback already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
