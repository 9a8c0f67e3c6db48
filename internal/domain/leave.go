package domain

import "time"

// LeaveStatus represents the status of a leave request
// PENDING -> APPROVED | REJECTED, оба конечные
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// LeaveAction admin decision on a pending leave
type LeaveAction string

const (
	LeaveActionApprove LeaveAction = "APPROVE"
	LeaveActionReject  LeaveAction = "REJECT"
)

// Leave represents a therapist day off
type Leave struct {
	ID          int64
	TherapistID int64
	LeaveDate   time.Time
	Reason      *string
	Status      LeaveStatus
	AdminNotes  *string
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the leave has not been decided yet
func (l *Leave) IsPending() bool {
	return l.Status == LeavePending
}

// ResultingStatus returns the status the action moves a pending leave to
func (a LeaveAction) ResultingStatus() (LeaveStatus, bool) {
	switch a {
	case LeaveActionApprove:
		return LeaveApproved, true
	case LeaveActionReject:
		return LeaveRejected, true
	}
	return "", false
}

// LeavesFilter фильтр для выборки отпусков
type LeavesFilter struct {
	TherapistID *int64
	Status      *LeaveStatus
	Date        *time.Time
}

// IsValidLeaveStatus проверяет, что статус входит в допустимый набор
func IsValidLeaveStatus(s LeaveStatus) bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}
