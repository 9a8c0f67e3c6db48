package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	sessionRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/session"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

// Service отчёты терапевтов и отзывы родителей по завершённым сессиям
type Service struct {
	sessionRepo   SessionRepository
	bookingRepo   BookingRepository
	therapistRepo TherapistRepository
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	therapistRepo TherapistRepository,
	notifier Notifier,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:   sessionRepo,
		bookingRepo:   bookingRepo,
		therapistRepo: therapistRepo,
		notifier:      notifier,
		timeProvider:  realTimeProvider{loc: loc},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// CreateReport сохраняет отчёт терапевта о завершённой сессии
// Доступ: только терапевт этой сессии
func (s *Service) CreateReport(ctx context.Context, bookingID int64, userID int64, req *models.CreateReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("CreateReport: booking id=%d by therapist user=%d", bookingID, userID)

	if err := validateReport(req); err != nil {
		s.logger.Warn("CreateReport: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.getBooking(ctx, "CreateReport", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTherapist(ctx, booking, userID); err != nil {
		s.logger.Warn("CreateReport: user=%d is not the therapist of booking id=%d", userID, bookingID)
		return nil, err
	}

	if !booking.AcceptsSessionNotes() {
		s.logger.Warn("CreateReport: booking id=%d is %s", bookingID, booking.Status)
		return nil, ErrSessionNotCompleted
	}

	report, err := s.sessionRepo.CreateReport(ctx, &domain.SessionReport{
		BookingID:       booking.ID,
		TherapistID:     booking.TherapistID,
		Summary:         strings.TrimSpace(req.Summary),
		Progress:        req.Progress,
		Recommendations: req.Recommendations,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrReportAlreadyExists) {
			s.logger.Warn("CreateReport: booking id=%d already has a report", bookingID)
			return nil, ErrReportAlreadyExists
		}
		s.logger.Error("CreateReport: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreateReport - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateReport: report id=%d saved for booking id=%d", report.ID, bookingID)
	s.notifier.Notify(ctx, booking.ParentID,
		fmt.Sprintf("The therapist's report for the session on %s at %s is available",
			booking.SlotDate.Format(domain.DateFormat), booking.StartTime),
		s.timeProvider.Now())

	return models.FromDomainReport(report), nil
}

// GetReport отчёт по сессии
// Доступ: родитель-владелец, терапевт сессии или администратор
func (s *Service) GetReport(ctx context.Context, bookingID int64, userID int64, role string) (*models.ReportResponse, error) {
	booking, err := s.getBooking(ctx, "GetReport", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking, userID, role); err != nil {
		s.logger.Warn("GetReport: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	report, err := s.sessionRepo.GetReportByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("GetReport: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetReport - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReport(report), nil
}

// CreateFeedback сохраняет отзыв родителя о завершённой сессии
// Доступ: только родитель-владелец бронирования
func (s *Service) CreateFeedback(ctx context.Context, bookingID int64, parentID int64, req *models.CreateFeedbackRequest) (*models.FeedbackResponse, error) {
	s.logger.Info("CreateFeedback: booking id=%d by parent=%d", bookingID, parentID)

	if err := validateFeedback(req); err != nil {
		s.logger.Warn("CreateFeedback: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.getBooking(ctx, "CreateFeedback", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ParentID != parentID {
		s.logger.Warn("CreateFeedback: parent=%d does not own booking id=%d", parentID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.AcceptsSessionNotes() {
		s.logger.Warn("CreateFeedback: booking id=%d is %s", bookingID, booking.Status)
		return nil, ErrSessionNotCompleted
	}

	feedback, err := s.sessionRepo.CreateFeedback(ctx, &domain.SessionFeedback{
		BookingID: booking.ID,
		ParentID:  parentID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrFeedbackAlreadyExists) {
			s.logger.Warn("CreateFeedback: booking id=%d already has feedback", bookingID)
			return nil, ErrFeedbackAlreadyExists
		}
		s.logger.Error("CreateFeedback: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreateFeedback - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateFeedback: feedback id=%d saved for booking id=%d", feedback.ID, bookingID)
	s.notifyTherapist(ctx, booking.TherapistID,
		fmt.Sprintf("New feedback (%d/%d) for the session on %s at %s",
			feedback.Rating, domain.MaxRating, booking.SlotDate.Format(domain.DateFormat), booking.StartTime))

	return models.FromDomainFeedback(feedback), nil
}

// GetFeedback отзыв по сессии
// Доступ: родитель-владелец, терапевт сессии или администратор
func (s *Service) GetFeedback(ctx context.Context, bookingID int64, userID int64, role string) (*models.FeedbackResponse, error) {
	booking, err := s.getBooking(ctx, "GetFeedback", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking, userID, role); err != nil {
		s.logger.Warn("GetFeedback: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	feedback, err := s.sessionRepo.GetFeedbackByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrFeedbackNotFound) {
			return nil, ErrFeedbackNotFound
		}
		s.logger.Error("GetFeedback: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetFeedback - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFeedback(feedback), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkTherapist пользователь - терапевт этой сессии
func (s *Service) checkTherapist(ctx context.Context, booking *domain.Booking, userID int64) error {
	therapist, err := s.therapistRepo.GetByID(ctx, booking.TherapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkTherapist - therapist: %v", ErrInternal, err)
	}
	if therapist.UserID != userID {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, userID int64, role string) error {
	switch role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleParent:
		if booking.ParentID == userID {
			return nil
		}
	case domain.RoleTherapist:
		return s.checkTherapist(ctx, booking, userID)
	}
	return ErrAccessDenied
}

func (s *Service) notifyTherapist(ctx context.Context, therapistID int64, message string) {
	therapist, err := s.therapistRepo.GetByID(ctx, therapistID)
	if err != nil {
		s.logger.Warn("failed to get therapist id=%d for notification: %v", therapistID, err)
		return
	}
	s.notifier.Notify(ctx, therapist.UserID, message, s.timeProvider.Now())
}

func validateReport(req *models.CreateReportRequest) error {
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		return fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	if len([]rune(summary)) > domain.MaxReportSummaryLength {
		return fmt.Errorf("%w: summary must be at most %d characters", ErrInvalidInput, domain.MaxReportSummaryLength)
	}
	if req.Progress != nil && len([]rune(*req.Progress)) > domain.MaxReportFieldLength {
		return fmt.Errorf("%w: progress must be at most %d characters", ErrInvalidInput, domain.MaxReportFieldLength)
	}
	if req.Recommendations != nil && len([]rune(*req.Recommendations)) > domain.MaxReportFieldLength {
		return fmt.Errorf("%w: recommendations must be at most %d characters", ErrInvalidInput, domain.MaxReportFieldLength)
	}
	return nil
}

func validateFeedback(req *models.CreateFeedbackRequest) error {
	if !domain.IsValidRating(req.Rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && len([]rune(*req.Comment)) > domain.MaxFeedbackCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxFeedbackCommentLength)
	}
	return nil
}
