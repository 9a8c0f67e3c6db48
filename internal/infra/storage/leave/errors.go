package leave

import "errors"

var (
	// ErrLeaveNotFound возвращается, когда заявка на отпуск не найдена
	ErrLeaveNotFound = errors.New("leave.repository: leave not found")

	// ErrLeaveAlreadyExists на дату уже есть заявка не в статусе REJECTED
	ErrLeaveAlreadyExists = errors.New("leave.repository: leave already exists for date")

	// ErrLeaveNotPending заявка уже обработана
	ErrLeaveNotPending = errors.New("leave.repository: leave is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("leave.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("leave.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("leave.repository: failed to scan row")
)
