package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// toSlots переводит каталог дня в ответ
// Для сегодняшней даты слоты, начало которых уже прошло, не возвращаются
func toSlots(daySlots []domain.Slot, now time.Time) []Slot {
	slots := make([]Slot, 0, len(daySlots))
	for _, s := range daySlots {
		if domain.IsSameDay(s.Date, now) {
			startsAt, err := s.StartTime.On(s.Date)
			if err != nil || !startsAt.After(now) {
				continue
			}
		}
		slots = append(slots, Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Available:       s.IsAvailable(),
		})
	}
	return slots
}
