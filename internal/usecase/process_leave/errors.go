package process_leave

import "errors"

var (
	// ErrLeaveNotFound возвращается, когда заявка не найдена
	ErrLeaveNotFound = errors.New("process_leave: leave not found")

	// ErrLeaveAlreadyProcessed возвращается при повторном решении по заявке
	ErrLeaveAlreadyProcessed = errors.New("process_leave: leave already processed")

	// ErrConcurrentUpdate возвращается, когда заявку одновременно изменяла другая транзакция
	// и решение не было применено
	ErrConcurrentUpdate = errors.New("process_leave: leave is being updated concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_leave: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_leave: internal error")
)
