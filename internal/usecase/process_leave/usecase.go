package process_leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	leaveRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/leave"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
)

// UseCase решение администратора по заявке на выходной
//
// Одобрение и отмена всех SCHEDULED бронирований терапевта на эту дату
// выполняются в одной транзакции
type UseCase struct {
	leaveRepo     LeaveRepository
	bookingRepo   BookingRepository
	therapistRepo TherapistRepository
	cache         SlotsCache
	notifier      Notifier
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	leaveRepo LeaveRepository,
	bookingRepo BookingRepository,
	therapistRepo TherapistRepository,
	cache SlotsCache,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		leaveRepo:     leaveRepo,
		bookingRepo:   bookingRepo,
		therapistRepo: therapistRepo,
		cache:         cache,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{Location: loc},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessLeave: leave=%d, action=%s", req.LeaveID, req.Action)

	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ProcessLeave: validation failed: %v", err)
		return nil, err
	}

	var (
		processed *domain.Leave
		cancelled []*domain.Booking
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Заявка под блокировкой
		leave, err := uc.leaveRepo.GetByID(txCtx, req.LeaveID)
		if err != nil {
			if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
				uc.logger.Warn("ProcessLeave: leave id=%d not found", req.LeaveID)
				return ErrLeaveNotFound
			}
			if errors.Is(err, txmanager.ErrSerialization) {
				return err
			}
			uc.logger.Error("ProcessLeave: failed to get leave id=%d: %v", req.LeaveID, err)
			return fmt.Errorf("%w: failed to get leave: %v", ErrInternal, err)
		}

		if !leave.IsPending() {
			uc.logger.Warn("ProcessLeave: leave id=%d is already %s", leave.ID, leave.Status)
			return ErrLeaveAlreadyProcessed
		}

		// 2. При одобрении отменяем все SCHEDULED бронирования (T, D)
		if status == domain.LeaveApproved {
			cancelled, err = uc.bookingRepo.CancelScheduledByTherapistAndDate(txCtx, leave.TherapistID, leave.LeaveDate, CancellationReason)
			if err != nil {
				if errors.Is(err, txmanager.ErrSerialization) {
					return err
				}
				uc.logger.Error("ProcessLeave: failed to cancel bookings: %v", err)
				return fmt.Errorf("%w: failed to cancel bookings: %v", ErrInternal, err)
			}
		}

		// 3. Переводим заявку в конечный статус
		processed, err = uc.leaveRepo.UpdateStatus(txCtx, leave.ID, status, req.AdminNotes)
		if err != nil {
			if errors.Is(err, leaveRepo.ErrLeaveNotPending) {
				uc.logger.Warn("ProcessLeave: leave id=%d was processed concurrently", leave.ID)
				return ErrLeaveAlreadyProcessed
			}
			if errors.Is(err, txmanager.ErrSerialization) {
				return err
			}
			uc.logger.Error("ProcessLeave: failed to update leave id=%d: %v", leave.ID, err)
			return fmt.Errorf("%w: failed to update leave: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("ProcessLeave: serialization failure on leave id=%d: %v", req.LeaveID, err)
			return nil, uc.resolveConflict(ctx, req.LeaveID)
		}
		return nil, err
	}

	uc.logger.Info("ProcessLeave: leave id=%d is %s, cancelled %d bookings", processed.ID, processed.Status, len(cancelled))

	uc.metrics.ObserveLeaveProcessed(string(req.Action))
	uc.afterCommit(ctx, processed, cancelled)

	ids := make([]int64, 0, len(cancelled))
	for _, b := range cancelled {
		ids = append(ids, b.ID)
	}

	return &Response{
		ID:                  processed.ID,
		TherapistID:         processed.TherapistID,
		LeaveDate:           processed.LeaveDate,
		Reason:              processed.Reason,
		Status:              string(processed.Status),
		AdminNotes:          processed.AdminNotes,
		ProcessedAt:         processed.ProcessedAt,
		CancelledBookingIDs: ids,
	}, nil
}

// resolveConflict определяет исход проигранной сериализуемой транзакции.
// Если заявку уже решил другой администратор, это повторная обработка;
// иначе решение не применено и запрос можно повторить
func (uc *UseCase) resolveConflict(ctx context.Context, leaveID int64) error {
	leave, err := uc.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		uc.logger.Error("ProcessLeave: failed to re-read leave id=%d: %v", leaveID, err)
		return ErrConcurrentUpdate
	}
	if !leave.IsPending() {
		uc.logger.Warn("ProcessLeave: leave id=%d was processed concurrently, now %s", leaveID, leave.Status)
		return ErrLeaveAlreadyProcessed
	}
	return ErrConcurrentUpdate
}

// afterCommit инвалидирует кэш и рассылает уведомления; ошибки только логируются
func (uc *UseCase) afterCommit(ctx context.Context, leave *domain.Leave, cancelled []*domain.Booking) {
	now := uc.timeProvider.Now()
	day := leave.LeaveDate.Format(domain.DateFormat)

	if len(cancelled) > 0 {
		if err := uc.cache.Invalidate(ctx, leave.TherapistID, leave.LeaveDate); err != nil {
			uc.logger.Warn("ProcessLeave: failed to invalidate slots cache: %v", err)
		}
	}

	for _, b := range cancelled {
		uc.notifier.Notify(ctx, b.ParentID,
			fmt.Sprintf("Your session on %s at %s was cancelled: the therapist is on leave", day, b.StartTime), now)
	}

	therapist, err := uc.therapistRepo.GetByID(ctx, leave.TherapistID)
	if err != nil {
		uc.logger.Warn("ProcessLeave: failed to get therapist id=%d for notification: %v", leave.TherapistID, err)
		return
	}
	uc.notifier.Notify(ctx, therapist.UserID,
		fmt.Sprintf("Your leave on %s was %s", day, leave.Status), now)
}
