package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
)

// UseCase проверяет, свободен ли конкретный слот терапевта
// Результат читается из БД, кэш не используется
type UseCase struct {
	therapistRepo TherapistRepository
	bookingRepo   BookingRepository
	leaveRepo     LeaveRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	therapistRepo TherapistRepository,
	bookingRepo BookingRepository,
	leaveRepo LeaveRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		therapistRepo: therapistRepo,
		bookingRepo:   bookingRepo,
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

// Execute выполняет проверку доступности слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: therapist=%d, date=%s, time=%s",
		req.TherapistID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())

	if domain.IsDateInPast(date, now) {
		uc.logger.Warn("CheckAvailability: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	therapist, err := uc.therapistRepo.GetByID(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			uc.logger.Warn("CheckAvailability: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	if !therapist.HasActivatedTimes() {
		uc.logger.Warn("CheckAvailability: therapist id=%d has no activated times", req.TherapistID)
		return nil, ErrNoActivatedTimes
	}

	if !therapist.OffersTime(req.StartTime) {
		uc.logger.Warn("CheckAvailability: time %s is not activated by therapist id=%d", req.StartTime, req.TherapistID)
		return nil, ErrTimeNotActivated
	}

	resp := &Response{
		TherapistID: therapist.ID,
		Date:        date,
		StartTime:   req.StartTime,
	}

	available, err := uc.isBookable(ctx, therapist, date, now, req)
	if err != nil {
		return nil, err
	}
	resp.Available = available

	uc.logger.Info("CheckAvailability: therapist=%d, date=%s, time=%s, available=%t",
		therapist.ID, date.Format(domain.DateFormat), req.StartTime, available)

	return resp, nil
}

func (uc *UseCase) isBookable(ctx context.Context, therapist *domain.Therapist, date, now time.Time, req *Request) (bool, error) {
	if !therapist.IsActive() || domain.IsWeekend(date) {
		return false, nil
	}

	// Сегодняшний слот, который уже начался
	startsAt, err := req.StartTime.On(date)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !startsAt.After(now) {
		return false, nil
	}

	onLeave, err := uc.leaveRepo.HasApprovedOn(ctx, therapist.ID, date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check leave: %v", err)
		return false, fmt.Errorf("%w: failed to check leave: %v", ErrInternal, err)
	}
	if onLeave {
		return false, nil
	}

	_, err = uc.bookingRepo.GetActiveBySlot(ctx, therapist.ID, date, req.StartTime)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return true, nil
	default:
		uc.logger.Error("CheckAvailability: failed to get booking: %v", err)
		return false, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
}
