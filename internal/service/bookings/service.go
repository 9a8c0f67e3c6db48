package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
)

const defaultCancellationReason = "cancelled by parent"

// Service сервис для чтения, отмены и завершения бронирований
type Service struct {
	bookingRepo   BookingRepository
	therapistRepo TherapistRepository
	cache         SlotsCache
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	therapistRepo TherapistRepository,
	cache SlotsCache,
	notifier Notifier,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		therapistRepo: therapistRepo,
		cache:         cache,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  realTimeProvider{loc: loc},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Доступ: родитель-владелец, терапевт бронирования или администратор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, userID, role)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking, userID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetParentBookings бронирования родителя, опционально по статусу
func (s *Service) GetParentBookings(ctx context.Context, req *models.GetParentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetParentBookings: fetching bookings for parent=%d, status=%v", req.ParentID, req.Status)

	filter := domain.BookingsFilter{ParentID: &req.ParentID, IncludeCancelled: true}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("GetParentBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetParentBookings: repository error for parent=%d: %v", req.ParentID, err)
		return nil, fmt.Errorf("%w: GetParentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetParentBookings: fetched %d bookings for parent=%d", len(bookings), req.ParentID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTherapistBookings расписание текущего терапевта за период
// Без статуса возвращаются только не отменённые бронирования
func (s *Service) GetTherapistBookings(ctx context.Context, req *models.GetTherapistBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTherapistBookings: fetching bookings for therapist user=%d", req.UserID)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	therapist, err := s.therapistRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("GetTherapistBookings: user=%d is not a therapist", req.UserID)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("GetTherapistBookings: failed to get therapist: %v", err)
		return nil, fmt.Errorf("%w: GetTherapistBookings - therapist: %v", ErrInternal, err)
	}

	filter := domain.BookingsFilter{
		TherapistID: &therapist.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("GetTherapistBookings: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetTherapistBookings: repository error for therapist=%d: %v", therapist.ID, err)
		return nil, fmt.Errorf("%w: GetTherapistBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование родителя (SCHEDULED -> CANCELLED)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by parent=%d", bookingID, req.ParentID)

	reason, err := cancellationReason(req.CancellationReason)
	if err != nil {
		return nil, err
	}

	var cancelled *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.ParentID != req.ParentID {
			s.logger.Warn("Cancel: parent=%d does not own booking id=%d", req.ParentID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		cancelled, err = s.bookingRepo.Cancel(txCtx, bookingID, reason)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidStatusTransition) {
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)

	s.invalidate(ctx, cancelled.TherapistID, cancelled.SlotDate)
	s.notifyTherapist(ctx, cancelled.TherapistID,
		fmt.Sprintf("Session on %s at %s was cancelled by the parent",
			cancelled.SlotDate.Format(domain.DateFormat), cancelled.StartTime))

	return models.FromDomainBooking(cancelled), nil
}

// CancelGroup отменяет все будущие SCHEDULED бронирования группы повторений
func (s *Service) CancelGroup(ctx context.Context, groupID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingListResponse, error) {
	s.logger.Info("CancelGroup: cancelling group=%s by parent=%d", groupID, req.ParentID)

	reason, err := cancellationReason(req.CancellationReason)
	if err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.timeProvider.Now())

	var cancelled []*domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		group, err := s.bookingRepo.List(txCtx, domain.BookingsFilter{RecurrenceGroupID: &groupID, IncludeCancelled: true})
		if err != nil {
			s.logger.Error("CancelGroup: repository error for group=%s: %v", groupID, err)
			return fmt.Errorf("%w: CancelGroup - list: %v", ErrInternal, err)
		}
		if len(group) == 0 {
			s.logger.Warn("CancelGroup: group=%s not found", groupID)
			return ErrBookingNotFound
		}
		for _, b := range group {
			if b.ParentID != req.ParentID {
				s.logger.Warn("CancelGroup: parent=%d does not own group=%s", req.ParentID, groupID)
				return ErrAccessDenied
			}
		}

		cancelled, err = s.bookingRepo.CancelByRecurrenceGroup(txCtx, groupID, today, reason)
		if err != nil {
			s.logger.Error("CancelGroup: repository error for group=%s: %v", groupID, err)
			return fmt.Errorf("%w: CancelGroup - cancel: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelGroup: cancelled %d bookings of group=%s", len(cancelled), groupID)

	if len(cancelled) > 0 {
		dates := make([]time.Time, 0, len(cancelled))
		for _, b := range cancelled {
			dates = append(dates, b.SlotDate)
		}
		s.invalidate(ctx, cancelled[0].TherapistID, dates...)
		s.notifyTherapist(ctx, cancelled[0].TherapistID,
			fmt.Sprintf("%d recurring sessions from %s were cancelled by the parent",
				len(cancelled), cancelled[0].SlotDate.Format(domain.DateFormat)))
	}

	return models.FromDomainBookingList(cancelled), nil
}

// Complete переводит бронирование в COMPLETED по сигналу завершения видеосессии
// Доступ: терапевт бронирования или администратор
func (s *Service) Complete(ctx context.Context, bookingID int64, userID int64, role string) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d by user=%d role=%s", bookingID, userID, role)

	if role != domain.RoleTherapist && role != domain.RoleAdmin {
		return nil, ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking, userID, role); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d is %s", bookingID, booking.Status)
		return nil, ErrCannotComplete
	}

	completed, err := s.bookingRepo.Complete(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidStatusTransition) {
			return nil, ErrCannotComplete
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, completed.TherapistID, completed.SlotDate)
	s.logger.Info("Complete: booking id=%d completed", bookingID)
	return models.FromDomainBooking(completed), nil
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

// checkAccess родитель видит свои бронирования, терапевт - свои сессии, администратор - всё
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, userID int64, role string) error {
	switch role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleParent:
		if booking.ParentID == userID {
			return nil
		}
	case domain.RoleTherapist:
		therapist, err := s.therapistRepo.GetByID(ctx, booking.TherapistID)
		if err != nil {
			if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
				return ErrAccessDenied
			}
			return fmt.Errorf("%w: checkAccess - therapist: %v", ErrInternal, err)
		}
		if therapist.UserID == userID {
			return nil
		}
	}
	return ErrAccessDenied
}

func (s *Service) invalidate(ctx context.Context, therapistID int64, dates ...time.Time) {
	if err := s.cache.Invalidate(ctx, therapistID, dates...); err != nil {
		s.logger.Warn("failed to invalidate slots cache for therapist=%d: %v", therapistID, err)
	}
}

func (s *Service) notifyTherapist(ctx context.Context, therapistID int64, message string) {
	therapist, err := s.therapistRepo.GetByID(ctx, therapistID)
	if err != nil {
		s.logger.Warn("failed to get therapist id=%d for notification: %v", therapistID, err)
		return
	}
	s.notifier.Notify(ctx, therapist.UserID, message, s.timeProvider.Now())
}

func applyStatus(filter *domain.BookingsFilter, status *string) error {
	if status == nil {
		return nil
	}
	st, err := models.ToDomainBookingStatus(*status)
	if err != nil {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
	}
	filter.Status = &st
	return nil
}

func cancellationReason(reason string) (string, error) {
	if reason == "" {
		return defaultCancellationReason, nil
	}
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return reason, nil
}
