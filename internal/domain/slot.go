package domain

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Slot represents a one-hour interval of a therapist on a specific date
// Слот не хранится в БД: он выводится из (therapist, date, activated time)
type Slot struct {
	TherapistID     int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	IsBooked        bool
}

// IsAvailable returns true if the slot can be booked
func (s *Slot) IsAvailable() bool {
	return !s.IsBooked
}

// BuildDaySlots строит каталог слотов терапевта на дату
// bookedTimes - время уже занятых (не отменённых) слотов
func BuildDaySlots(therapist *Therapist, date time.Time, bookedTimes []types.TimeString) []Slot {
	booked := make(map[types.TimeString]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots := make([]Slot, 0, len(therapist.ActivatedTimes))
	for _, t := range therapist.ActivatedTimes {
		_, isBooked := booked[t]
		slots = append(slots, Slot{
			TherapistID:     therapist.ID,
			Date:            DateOnly(date),
			StartTime:       t,
			DurationMinutes: SlotDurationMinutes,
			IsBooked:        isBooked,
		})
	}
	return slots
}
