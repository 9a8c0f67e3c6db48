package analytics

import (
	"context"
	"fmt"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Summary сводка для администратора
type Summary struct {
	BookingsByStatus   map[string]int `json:"bookingsByStatus"`
	TherapistsByStatus map[string]int `json:"therapistsByStatus"`
	Children           int            `json:"children"`
	PendingLeaves      int            `json:"pendingLeaves"`
	FeedbackCount      int            `json:"feedbackCount"`
	AverageRating      float64        `json:"averageRating"`
}

// Service агрегаты по бронированиям, терапевтам, детям, выходным и отзывам
type Service struct {
	bookings   BookingCounter
	therapists TherapistCounter
	children   ChildCounter
	leaves     LeaveCounter
	feedback   FeedbackSummarizer
	txManager  TransactionManager
	logger     Logger
}

func NewService(
	bookings BookingCounter,
	therapists TherapistCounter,
	children ChildCounter,
	leaves LeaveCounter,
	feedback FeedbackSummarizer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookings:   bookings,
		therapists: therapists,
		children:   children,
		leaves:     leaves,
		feedback:   feedback,
		txManager:  txManager,
		logger:     logger,
	}
}

// Summary все счётчики читаются из одного снимка
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		BookingsByStatus: map[string]int{
			string(domain.StatusScheduled): 0,
			string(domain.StatusCompleted): 0,
			string(domain.StatusCancelled): 0,
		},
		TherapistsByStatus: make(map[string]int),
	}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookings.CountByStatus(txCtx)
		if err != nil {
			return fmt.Errorf("bookings: %v", err)
		}
		for status, n := range bookings {
			summary.BookingsByStatus[string(status)] = n
		}

		therapists, err := s.therapists.CountByStatus(txCtx)
		if err != nil {
			return fmt.Errorf("therapists: %v", err)
		}
		for status, n := range therapists {
			summary.TherapistsByStatus[string(status)] = n
		}

		if summary.Children, err = s.children.Count(txCtx); err != nil {
			return fmt.Errorf("children: %v", err)
		}
		if summary.PendingLeaves, err = s.leaves.CountPending(txCtx); err != nil {
			return fmt.Errorf("leaves: %v", err)
		}
		if summary.FeedbackCount, summary.AverageRating, err = s.feedback.RatingSummary(txCtx); err != nil {
			return fmt.Errorf("feedback: %v", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Summary: %v", err)
		return nil, fmt.Errorf("%w: Summary - %v", ErrInternal, err)
	}

	return summary, nil
}
