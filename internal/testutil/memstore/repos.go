package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	childRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/child"
	leaveRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/leave"
	sessionRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/session"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Bookings in-memory аналог booking.Repository
type Bookings struct{ s *Store }

func (s *Store) Bookings() *Bookings { return &Bookings{s: s} }

// Create вставляет бронирование, соблюдая уникальность активного слота
func (r *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.CreateHook != nil {
		if err := r.s.CreateHook(b); err != nil {
			return nil, err
		}
	}

	for _, existing := range r.s.bookings {
		if existing.IsActive() &&
			existing.TherapistID == b.TherapistID &&
			sameDay(existing.SlotDate, b.SlotDate) &&
			existing.StartTime == b.StartTime {
			return nil, bookingRepo.ErrSlotAlreadyBooked
		}
	}

	now := time.Now()
	stored := cloneBooking(b)
	stored.ID = r.s.id()
	stored.SlotDate = domain.DateOnly(b.SlotDate)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.bookings[stored.ID] = stored

	return cloneBooking(stored), nil
}

func (r *Bookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *Bookings) GetActiveBySlot(_ context.Context, therapistID int64, date time.Time, startTime types.TimeString) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.IsActive() && b.TherapistID == therapistID && sameDay(b.SlotDate, date) && b.StartTime == startTime {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *Bookings) GetBookedTimes(_ context.Context, therapistID int64, date time.Time) ([]types.TimeString, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	times := make([]types.TimeString, 0)
	for _, b := range r.s.bookings {
		if b.IsActive() && b.TherapistID == therapistID && sameDay(b.SlotDate, date) {
			times = append(times, b.StartTime)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times, nil
}

func (r *Bookings) List(_ context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedBookings(r.s.bookings, func(b *domain.Booking) bool {
		switch {
		case f.ParentID != nil && b.ParentID != *f.ParentID:
			return false
		case f.TherapistID != nil && b.TherapistID != *f.TherapistID:
			return false
		case f.ChildID != nil && b.ChildID != *f.ChildID:
			return false
		case f.RecurrenceGroupID != nil && !sameGroup(b.RecurrenceGroupID, *f.RecurrenceGroupID):
			return false
		case f.StartDate != nil && b.SlotDate.Before(domain.DateOnly(*f.StartDate)):
			return false
		case f.EndDate != nil && b.SlotDate.After(domain.DateOnly(*f.EndDate)):
			return false
		case f.Status != nil:
			return b.Status == *f.Status
		case !f.IncludeCancelled && b.Status == domain.StatusCancelled:
			return false
		}
		return true
	}), nil
}

func (r *Bookings) CountScheduledByChild(_ context.Context, childID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.bookings {
		if b.ChildID == childID && b.Status == domain.StatusScheduled {
			n++
		}
	}
	return n, nil
}

func (r *Bookings) CountByStatus(_ context.Context) (map[domain.BookingStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[domain.BookingStatus]int)
	for _, b := range r.s.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *Bookings) Cancel(_ context.Context, id int64, reason string) (*domain.Booking, error) {
	cancelled := r.cancelWhere(reason, func(b *domain.Booking) bool { return b.ID == id })
	if len(cancelled) == 0 {
		return nil, bookingRepo.ErrInvalidStatusTransition
	}
	return cancelled[0], nil
}

func (r *Bookings) CancelScheduledByTherapistAndDate(_ context.Context, therapistID int64, date time.Time, reason string) ([]*domain.Booking, error) {
	return r.cancelWhere(reason, func(b *domain.Booking) bool {
		return b.TherapistID == therapistID && sameDay(b.SlotDate, date)
	}), nil
}

func (r *Bookings) CancelByRecurrenceGroup(_ context.Context, groupID uuid.UUID, fromDate time.Time, reason string) ([]*domain.Booking, error) {
	from := domain.DateOnly(fromDate)
	return r.cancelWhere(reason, func(b *domain.Booking) bool {
		return sameGroup(b.RecurrenceGroupID, groupID) && !b.SlotDate.Before(from)
	}), nil
}

func (r *Bookings) Complete(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status != domain.StatusScheduled {
		return nil, bookingRepo.ErrInvalidStatusTransition
	}
	b.Status = domain.StatusCompleted
	b.UpdatedAt = time.Now()
	return cloneBooking(b), nil
}

func (r *Bookings) cancelWhere(reason string, match func(b *domain.Booking) bool) []*domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	cancelled := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.Status != domain.StatusScheduled || !match(b) {
			continue
		}
		reasonCopy := reason
		b.Status = domain.StatusCancelled
		b.CancellationReason = &reasonCopy
		b.CancelledAt = &now
		b.UpdatedAt = now
		cancelled = append(cancelled, cloneBooking(b))
	}
	sort.Slice(cancelled, func(i, j int) bool { return cancelled[i].ID < cancelled[j].ID })
	return cancelled
}

func sortedBookings(all map[int64]*domain.Booking, keep func(*domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range all {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SlotDate.Equal(out[j].SlotDate) {
			return out[i].SlotDate.Before(out[j].SlotDate)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Therapists in-memory аналог therapist.Repository
type Therapists struct{ s *Store }

func (s *Store) Therapists() *Therapists { return &Therapists{s: s} }

func (r *Therapists) GetByID(_ context.Context, id int64) (*domain.Therapist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.therapists[id]
	if !ok {
		return nil, therapistRepo.ErrTherapistNotFound
	}
	return cloneTherapist(t), nil
}

func (r *Therapists) GetByUserID(_ context.Context, userID int64) (*domain.Therapist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.therapists {
		if t.UserID == userID {
			return cloneTherapist(t), nil
		}
	}
	return nil, therapistRepo.ErrTherapistNotFound
}

func (r *Therapists) List(_ context.Context, f domain.TherapistsFilter) ([]*domain.Therapist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Therapist, 0)
	for _, t := range r.s.therapists {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Specialization != nil && !strings.Contains(strings.ToLower(t.Specialization), strings.ToLower(*f.Specialization)) {
			continue
		}
		out = append(out, cloneTherapist(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Therapists) ActivateTimes(_ context.Context, therapistID int64, times []types.TimeString) (*domain.Therapist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.therapists[therapistID]
	if !ok || len(t.ActivatedTimes) > 0 {
		return nil, therapistRepo.ErrTimesAlreadySet
	}
	t.ActivatedTimes = append([]types.TimeString(nil), times...)
	return cloneTherapist(t), nil
}

func (r *Therapists) CountByStatus(_ context.Context) (map[domain.TherapistStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[domain.TherapistStatus]int)
	for _, t := range r.s.therapists {
		counts[t.Status]++
	}
	return counts, nil
}

// Children in-memory аналог child.Repository
type Children struct{ s *Store }

func (s *Store) Children() *Children { return &Children{s: s} }

func (r *Children) Create(_ context.Context, c *domain.Child) (*domain.Child, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *c
	stored.ID = r.s.id()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.children[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *Children) GetByID(_ context.Context, id int64) (*domain.Child, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.children[id]
	if !ok {
		return nil, childRepo.ErrChildNotFound
	}
	out := *c
	return &out, nil
}

func (r *Children) ListByParent(_ context.Context, parentID int64) ([]*domain.Child, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Child, 0)
	for _, c := range r.s.children {
		if c.ParentID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Children) Update(_ context.Context, c *domain.Child) (*domain.Child, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.children[c.ID]; !ok {
		return nil, childRepo.ErrChildNotFound
	}
	stored := *c
	stored.UpdatedAt = time.Now()
	r.s.children[c.ID] = &stored
	out := stored
	return &out, nil
}

func (r *Children) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.children[id]; !ok {
		return childRepo.ErrChildNotFound
	}
	delete(r.s.children, id)
	return nil
}

func (r *Children) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.children), nil
}

// Leaves in-memory аналог leave.Repository
type Leaves struct{ s *Store }

func (s *Store) Leaves() *Leaves { return &Leaves{s: s} }

func (r *Leaves) Create(_ context.Context, l *domain.Leave) (*domain.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.leaves {
		if existing.TherapistID == l.TherapistID && sameDay(existing.LeaveDate, l.LeaveDate) && existing.Status != domain.LeaveRejected {
			return nil, leaveRepo.ErrLeaveAlreadyExists
		}
	}
	stored := *l
	stored.ID = r.s.id()
	stored.LeaveDate = domain.DateOnly(l.LeaveDate)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.leaves[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *Leaves) GetByID(_ context.Context, id int64) (*domain.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, leaveRepo.ErrLeaveNotFound
	}
	out := *l
	return &out, nil
}

func (r *Leaves) HasApprovedOn(_ context.Context, therapistID int64, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leaves {
		if l.TherapistID == therapistID && sameDay(l.LeaveDate, date) && l.Status == domain.LeaveApproved {
			return true, nil
		}
	}
	return false, nil
}

func (r *Leaves) UpdateStatus(_ context.Context, id int64, status domain.LeaveStatus, adminNotes *string) (*domain.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok || l.Status != domain.LeavePending {
		return nil, leaveRepo.ErrLeaveNotPending
	}
	now := time.Now()
	l.Status = status
	l.AdminNotes = adminNotes
	l.ProcessedAt = &now
	l.UpdatedAt = now
	out := *l
	return &out, nil
}

func (r *Leaves) List(_ context.Context, f domain.LeavesFilter) ([]*domain.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Leave, 0)
	for _, l := range r.s.leaves {
		if f.TherapistID != nil && l.TherapistID != *f.TherapistID {
			continue
		}
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.Date != nil && !sameDay(l.LeaveDate, *f.Date) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LeaveDate.Equal(out[j].LeaveDate) {
			return out[i].LeaveDate.Before(out[j].LeaveDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Leaves) CountPending(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, l := range r.s.leaves {
		if l.Status == domain.LeavePending {
			n++
		}
	}
	return n, nil
}

// Sessions in-memory аналог session.Repository
type Sessions struct{ s *Store }

func (s *Store) Sessions() *Sessions { return &Sessions{s: s} }

func (r *Sessions) CreateReport(_ context.Context, rep *domain.SessionReport) (*domain.SessionReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[rep.BookingID]; ok {
		return nil, sessionRepo.ErrReportAlreadyExists
	}
	stored := *rep
	stored.ID = r.s.id()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.reports[stored.BookingID] = &stored
	out := stored
	return &out, nil
}

func (r *Sessions) GetReportByBooking(_ context.Context, bookingID int64) (*domain.SessionReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[bookingID]
	if !ok {
		return nil, sessionRepo.ErrReportNotFound
	}
	out := *rep
	return &out, nil
}

func (r *Sessions) CreateFeedback(_ context.Context, fb *domain.SessionFeedback) (*domain.SessionFeedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[fb.BookingID]; ok {
		return nil, sessionRepo.ErrFeedbackAlreadyExists
	}
	stored := *fb
	stored.ID = r.s.id()
	stored.CreatedAt = time.Now()
	r.s.feedback[stored.BookingID] = &stored
	out := stored
	return &out, nil
}

func (r *Sessions) GetFeedbackByBooking(_ context.Context, bookingID int64) (*domain.SessionFeedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fb, ok := r.s.feedback[bookingID]
	if !ok {
		return nil, sessionRepo.ErrFeedbackNotFound
	}
	out := *fb
	return &out, nil
}

func (r *Sessions) RatingSummary(_ context.Context) (int, float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.feedback) == 0 {
		return 0, 0, nil
	}
	total := 0
	for _, fb := range r.s.feedback {
		total += fb.Rating
	}
	return len(r.s.feedback), float64(total) / float64(len(r.s.feedback)), nil
}
