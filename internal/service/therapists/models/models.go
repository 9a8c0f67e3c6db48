package models

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// ListTherapistsRequest фильтры поиска терапевтов
type ListTherapistsRequest struct {
	Specialization *string
	Status         *string
}

// ActivateTimesRequest тело запроса на активацию времени приёма
type ActivateTimesRequest struct {
	Times []string `json:"times"` // ["09:00", "10:00"]
}

// TherapistResponse публичный профиль терапевта
type TherapistResponse struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"userId"`
	FullName       string   `json:"fullName"`
	Specialization string   `json:"specialization"`
	BaseCost       float64  `json:"baseCost"`
	Status         string   `json:"status"`
	ActivatedTimes []string `json:"activatedTimes"`
}

// TherapistListResponse список терапевтов
type TherapistListResponse struct {
	Therapists []TherapistResponse `json:"therapists"`
}

// LeaveResponse выходной терапевта
type LeaveResponse struct {
	ID          int64      `json:"id"`
	TherapistID int64      `json:"therapistId"`
	LeaveDate   string     `json:"leaveDate"`
	Reason      *string    `json:"reason,omitempty"`
	Status      string     `json:"status"`
	AdminNotes  *string    `json:"adminNotes,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LeaveListResponse список выходных
type LeaveListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

// FromDomainTherapist конвертирует domain модель в DTO
func FromDomainTherapist(t *domain.Therapist) *TherapistResponse {
	if t == nil {
		return nil
	}
	times := make([]string, 0, len(t.ActivatedTimes))
	for _, at := range t.ActivatedTimes {
		times = append(times, at.String())
	}
	return &TherapistResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		FullName:       t.FullName,
		Specialization: t.Specialization,
		BaseCost:       t.BaseCost,
		Status:         string(t.Status),
		ActivatedTimes: times,
	}
}

// FromDomainTherapistList конвертирует список domain моделей в DTO
func FromDomainTherapistList(therapists []*domain.Therapist) *TherapistListResponse {
	resp := &TherapistListResponse{Therapists: make([]TherapistResponse, 0, len(therapists))}
	for _, t := range therapists {
		resp.Therapists = append(resp.Therapists, *FromDomainTherapist(t))
	}
	return resp
}

// FromDomainLeaveList конвертирует список выходных в DTO
func FromDomainLeaveList(leaves []*domain.Leave) *LeaveListResponse {
	resp := &LeaveListResponse{Leaves: make([]LeaveResponse, 0, len(leaves))}
	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, LeaveResponse{
			ID:          l.ID,
			TherapistID: l.TherapistID,
			LeaveDate:   l.LeaveDate.Format(domain.DateFormat),
			Reason:      l.Reason,
			Status:      string(l.Status),
			AdminNotes:  l.AdminNotes,
			ProcessedAt: l.ProcessedAt,
			CreatedAt:   l.CreatedAt,
		})
	}
	return resp
}
