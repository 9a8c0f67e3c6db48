package sessions

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrSessionNotCompleted отчёт и отзыв принимаются только по завершённой сессии
	ErrSessionNotCompleted = errors.New("session is not completed")

	// ErrReportNotFound возвращается, когда отчёт по сессии ещё не написан
	ErrReportNotFound = errors.New("session report not found")

	// ErrReportAlreadyExists по сессии уже есть отчёт
	ErrReportAlreadyExists = errors.New("session report already exists")

	// ErrFeedbackNotFound возвращается, когда отзыва по сессии нет
	ErrFeedbackNotFound = errors.New("session feedback not found")

	// ErrFeedbackAlreadyExists по сессии уже есть отзыв
	ErrFeedbackAlreadyExists = errors.New("session feedback already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
