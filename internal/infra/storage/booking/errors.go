package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotAlreadyBooked нарушение уникального индекса активного слота
	ErrSlotAlreadyBooked = errors.New("booking.repository: slot already booked")

	// ErrInvalidReference бронирование ссылается на несуществующего ребёнка/терапевта/родителя
	ErrInvalidReference = errors.New("booking.repository: invalid reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatusTransition бронирование не в статусе SCHEDULED
	ErrInvalidStatusTransition = errors.New("booking.repository: invalid status transition")
)
