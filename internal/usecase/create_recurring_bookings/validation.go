package create_recurring_bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ParentID <= 0 {
		return fmt.Errorf("%w: parentID must be positive", ErrInvalidInput)
	}

	if req.ChildID <= 0 {
		return fmt.Errorf("%w: childID must be positive", ErrInvalidInput)
	}

	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateTherapist проверяет терапевта до начала генерации,
// чтобы не делать заведомо неуспешные попытки на каждую дату
func validateTherapist(therapist *domain.Therapist, req *Request) error {
	if !therapist.HasActivatedTimes() {
		return ErrNoActivatedTimes
	}

	if !therapist.IsActive() {
		return ErrTherapistInactive
	}

	if !therapist.OffersTime(req.StartTime) {
		return ErrTimeNotActivated
	}

	return nil
}

// skipReason причина пропуска даты по ошибке одиночного бронирования
func skipReason(err error) string {
	switch {
	case errors.Is(err, create_booking.ErrSlotConflict):
		return ReasonSlotConflict
	case errors.Is(err, create_booking.ErrTherapistOnLeave):
		return ReasonOnLeave
	case errors.Is(err, create_booking.ErrInvalidDate):
		return ReasonAlreadyPassed
	default:
		return ReasonFailed
	}
}
