package domain

import "time"

// SessionReport therapist's report on a completed session
// Один отчёт на бронирование
type SessionReport struct {
	ID              int64
	BookingID       int64
	TherapistID     int64
	Summary         string
	Progress        *string
	Recommendations *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionFeedback parent's rating of a completed session
// Один отзыв на бронирование
type SessionFeedback struct {
	ID        int64
	BookingID int64
	ParentID  int64
	Rating    int
	Comment   *string

	CreatedAt time.Time
}

// IsValidRating проверяет, что оценка в диапазоне [MinRating, MaxRating]
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// AcceptsSessionNotes returns true if a report or feedback may be attached to the booking
func (b *Booking) AcceptsSessionNotes() bool {
	return b.Status == StatusCompleted
}
