package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
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

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет дату и время сессии относительно текущего момента
func validateDate(date time.Time, req *Request, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	if domain.IsWeekend(date) {
		return ErrNotWorkingDay
	}

	startsAt, err := req.StartTime.On(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !startsAt.After(now) {
		return fmt.Errorf("%w: slot %s has already started", ErrInvalidDate, req.StartTime)
	}

	return nil
}

// validateTherapist проверяет, что терапевт принимает записи на это время
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

// bookingKind метка для метрики bookings_created_total
func bookingKind(req *Request) string {
	if req.RecurrenceGroupID != nil {
		return "recurring"
	}
	return "single"
}
