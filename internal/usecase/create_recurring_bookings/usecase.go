package create_recurring_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	childRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/child"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
)

// UseCase генератор ежемесячных бронирований
//
// Диапазон: [startDate, startDate + 1 месяц - 1 день], конец месяца ограничивается
// последним днём следующего месяца. Каждый будний день бронируется отдельной
// атомарной операцией; конфликт на одной дате не отменяет остальные
type UseCase struct {
	creator       BookingCreator
	therapistRepo TherapistRepository
	childRepo     ChildRepository
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	creator BookingCreator,
	therapistRepo TherapistRepository,
	childRepo ChildRepository,
	notifier Notifier,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		creator:       creator,
		therapistRepo: therapistRepo,
		childRepo:     childRepo,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{Location: loc},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет генерацию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBookings: parent=%d, child=%d, therapist=%d, start=%s, time=%s",
		req.ParentID, req.ChildID, req.TherapistID, req.StartDate.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringBookings: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	start := time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0, 0, now.Location())

	// 2. Дата начала: не в прошлом и будний день
	if domain.IsDateInPast(start, now) {
		uc.logger.Warn("CreateRecurringBookings: start date %s is in the past", start.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	if domain.IsWeekend(start) {
		uc.logger.Warn("CreateRecurringBookings: start date %s is a weekend", start.Format(domain.DateFormat))
		return nil, ErrWeekendStart
	}

	// 3. Терапевт и ребёнок проверяются один раз на весь диапазон
	therapist, err := uc.therapistRepo.GetByID(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			uc.logger.Warn("CreateRecurringBookings: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("CreateRecurringBookings: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}
	if err := validateTherapist(therapist, req); err != nil {
		uc.logger.Warn("CreateRecurringBookings: therapist id=%d rejected: %v", therapist.ID, err)
		return nil, err
	}

	child, err := uc.childRepo.GetByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			uc.logger.Warn("CreateRecurringBookings: child id=%d not found", req.ChildID)
			return nil, ErrChildNotFound
		}
		uc.logger.Error("CreateRecurringBookings: failed to get child id=%d: %v", req.ChildID, err)
		return nil, fmt.Errorf("%w: failed to get child: %v", ErrInternal, err)
	}
	if !child.IsOwnedBy(req.ParentID) {
		uc.logger.Warn("CreateRecurringBookings: child id=%d does not belong to parent id=%d", req.ChildID, req.ParentID)
		return nil, ErrChildNotOwned
	}

	// 4. Перебираем даты диапазона
	groupID := uuid.New()
	end := domain.MonthlyEndDate(start)

	resp := &Response{
		RecurrenceGroupID: groupID,
		StartDate:         start,
		EndDate:           end,
		StartTime:         req.StartTime,
		Created:           make([]*create_booking.Response, 0),
		Skipped:           make([]Skipped, 0),
	}

	for _, date := range domain.DaysBetween(start, end) {
		// Выходные не бронируются и не считаются пропуском
		if domain.IsWeekend(date) {
			continue
		}

		created, err := uc.creator.Execute(ctx, &create_booking.Request{
			ParentID:          req.ParentID,
			ChildID:           req.ChildID,
			TherapistID:       req.TherapistID,
			Date:              date,
			StartTime:         req.StartTime,
			RecurrenceGroupID: &groupID,
		})
		if err != nil {
			uc.logger.Warn("CreateRecurringBookings: skipped %s: %v", date.Format(domain.DateFormat), err)
			resp.Skipped = append(resp.Skipped, Skipped{Date: date, Reason: skipReason(err)})
			continue
		}
		resp.Created = append(resp.Created, created)
	}

	uc.logger.Info("CreateRecurringBookings: group=%s, %s..%s, created=%d, skipped=%d",
		groupID, start.Format(domain.DateFormat), end.Format(domain.DateFormat), len(resp.Created), len(resp.Skipped))

	// 5. Одно сводное уведомление вместо подтверждения на каждую дату
	if len(resp.Created) > 0 {
		summary := fmt.Sprintf("Monthly booking %s..%s at %s: %d sessions booked, %d dates unavailable",
			start.Format(domain.DateFormat), end.Format(domain.DateFormat), req.StartTime, len(resp.Created), len(resp.Skipped))
		uc.notifier.Notify(ctx, req.ParentID, summary, now)
		uc.notifier.Notify(ctx, therapist.UserID, summary, now)
	}

	return resp, nil
}
