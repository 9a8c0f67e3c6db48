package request_leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	leaveRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/leave"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
)

// UseCase создание заявки терапевта на выходной (статус PENDING)
type UseCase struct {
	therapistRepo TherapistRepository
	leaveRepo     LeaveRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	therapistRepo TherapistRepository,
	leaveRepo LeaveRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		therapistRepo: therapistRepo,
		leaveRepo:     leaveRepo,
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
	uc.logger.Info("RequestLeave: user=%d, date=%s", req.UserID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestLeave: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())

	if domain.IsDateInPast(date, now) {
		uc.logger.Warn("RequestLeave: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	therapist, err := uc.therapistRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			uc.logger.Warn("RequestLeave: user id=%d is not a therapist", req.UserID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("RequestLeave: failed to get therapist by user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	created, err := uc.leaveRepo.Create(ctx, &domain.Leave{
		TherapistID: therapist.ID,
		LeaveDate:   date,
		Reason:      normalizeReason(req.Reason),
		Status:      domain.LeavePending,
	})
	if err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveAlreadyExists) {
			uc.logger.Warn("RequestLeave: therapist id=%d already has a leave on %s", therapist.ID, date.Format(domain.DateFormat))
			return nil, ErrLeaveAlreadyExists
		}
		uc.logger.Error("RequestLeave: failed to create leave: %v", err)
		return nil, fmt.Errorf("%w: failed to create leave: %v", ErrInternal, err)
	}

	uc.logger.Info("RequestLeave: created leave id=%d for therapist id=%d", created.ID, therapist.ID)

	return &Response{
		ID:          created.ID,
		TherapistID: created.TherapistID,
		LeaveDate:   created.LeaveDate,
		Reason:      created.Reason,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}
