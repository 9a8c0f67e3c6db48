package models

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Request модели

// CreateReportRequest отчёт терапевта о сессии
type CreateReportRequest struct {
	Summary         string  `json:"summary"`
	Progress        *string `json:"progress,omitempty"`
	Recommendations *string `json:"recommendations,omitempty"`
}

// CreateFeedbackRequest отзыв родителя о сессии
type CreateFeedbackRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// Response модели

// ReportResponse ответ с отчётом по сессии
type ReportResponse struct {
	ID              int64   `json:"id"`
	BookingID       int64   `json:"bookingId"`
	TherapistID     int64   `json:"therapistId"`
	Summary         string  `json:"summary"`
	Progress        *string `json:"progress,omitempty"`
	Recommendations *string `json:"recommendations,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeedbackResponse ответ с отзывом по сессии
type FeedbackResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	ParentID  int64     `json:"parentId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainReport конвертирует domain модель в DTO
func FromDomainReport(r *domain.SessionReport) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:              r.ID,
		BookingID:       r.BookingID,
		TherapistID:     r.TherapistID,
		Summary:         r.Summary,
		Progress:        r.Progress,
		Recommendations: r.Recommendations,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainFeedback конвертирует domain модель в DTO
func FromDomainFeedback(f *domain.SessionFeedback) *FeedbackResponse {
	if f == nil {
		return nil
	}
	return &FeedbackResponse{
		ID:        f.ID,
		BookingID: f.BookingID,
		ParentID:  f.ParentID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
