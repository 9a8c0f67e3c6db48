package domain

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// TherapistStatus represents the lifecycle status of a therapist account
type TherapistStatus string

const (
	TherapistPending   TherapistStatus = "pending"
	TherapistActive    TherapistStatus = "active"
	TherapistInactive  TherapistStatus = "inactive"
	TherapistSuspended TherapistStatus = "suspended"
)

// Therapist represents a therapist offering one-hour sessions
type Therapist struct {
	ID             int64
	UserID         int64
	FullName       string
	Specialization string
	BaseCost       float64
	Status         TherapistStatus
	ActivatedTimes []types.TimeString // до 10 значений, одинаковых для каждого будущего будного дня

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the therapist accepts bookings
func (t *Therapist) IsActive() bool {
	return t.Status == TherapistActive
}

// HasActivatedTimes returns true if the therapist has configured daily slots
func (t *Therapist) HasActivatedTimes() bool {
	return len(t.ActivatedTimes) > 0
}

// OffersTime returns true if the time is one of the therapist's activated times
func (t *Therapist) OffersTime(tm types.TimeString) bool {
	for _, at := range t.ActivatedTimes {
		if at == tm {
			return true
		}
	}
	return false
}

// TherapistsFilter фильтр для поиска терапевтов
type TherapistsFilter struct {
	Specialization *string
	Status         *TherapistStatus
}

// IsValidTherapistStatus проверяет, что статус входит в допустимый набор
func IsValidTherapistStatus(s TherapistStatus) bool {
	switch s {
	case TherapistPending, TherapistActive, TherapistInactive, TherapistSuspended:
		return true
	}
	return false
}
