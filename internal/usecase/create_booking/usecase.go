package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/booking"
	childRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/child"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	therapistRepo  TherapistRepository
	childRepo      ChildRepository
	leaveRepo      LeaveRepository
	cache          SlotsCache
	notifier       Notifier
	metrics        Metrics
	txManager      TransactionManager
	reminderBefore time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	therapistRepo TherapistRepository,
	childRepo ChildRepository,
	leaveRepo LeaveRepository,
	cache SlotsCache,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	reminderBefore time.Duration,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		therapistRepo:  therapistRepo,
		childRepo:      childRepo,
		leaveRepo:      leaveRepo,
		cache:          cache,
		notifier:       notifier,
		metrics:        metrics,
		txManager:      txManager,
		reminderBefore: reminderBefore,
		timeProvider:   &RealTimeProvider{Location: loc},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции,
// уникальный индекс по активным слотам гарантирует единственного победителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: parent=%d, child=%d, therapist=%d, date=%s, time=%s",
		req.ParentID, req.ChildID, req.TherapistID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время относительно текущего момента
	now := uc.timeProvider.Now()
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())

	if err := validateDate(date, req, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Ребёнок должен принадлежать родителю
	child, err := uc.childRepo.GetByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			uc.logger.Warn("CreateBooking: child id=%d not found", req.ChildID)
			return nil, ErrChildNotFound
		}
		uc.logger.Error("CreateBooking: failed to get child id=%d: %v", req.ChildID, err)
		return nil, fmt.Errorf("%w: failed to get child: %v", ErrInternal, err)
	}

	if !child.IsOwnedBy(req.ParentID) {
		uc.logger.Warn("CreateBooking: child id=%d does not belong to parent id=%d", req.ChildID, req.ParentID)
		return nil, ErrChildNotOwned
	}

	var (
		result    *domain.Booking
		therapist *domain.Therapist
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Терапевт и его активированные времена
		t, err := uc.therapistRepo.GetByID(txCtx, req.TherapistID)
		if err != nil {
			if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
				uc.logger.Warn("CreateBooking: therapist id=%d not found", req.TherapistID)
				return ErrTherapistNotFound
			}
			if errors.Is(err, txmanager.ErrSerialization) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to get therapist id=%d: %v", req.TherapistID, err)
			return fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
		}

		if err := validateTherapist(t, req); err != nil {
			uc.logger.Warn("CreateBooking: therapist id=%d rejected: %v", t.ID, err)
			return err
		}
		therapist = t

		// 4.2. Одобренный выходной закрывает весь день
		onLeave, err := uc.leaveRepo.HasApprovedOn(txCtx, t.ID, date)
		if err != nil {
			if errors.Is(err, txmanager.ErrSerialization) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to check leave: %v", err)
			return fmt.Errorf("%w: failed to check leave: %v", ErrInternal, err)
		}
		if onLeave {
			uc.logger.Warn("CreateBooking: therapist id=%d is on leave %s", t.ID, date.Format(domain.DateFormat))
			return ErrTherapistOnLeave
		}

		// 4.3. Проверяем слот с блокировкой (FOR UPDATE)
		_, err = uc.bookingRepo.GetActiveBySlot(txCtx, t.ID, date, req.StartTime)
		if err == nil {
			uc.logger.Warn("CreateBooking: slot therapist=%d %s %s already booked",
				t.ID, date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotConflict
		}
		if errors.Is(err, txmanager.ErrSerialization) {
			return err
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		// 4.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ParentID:          req.ParentID,
			ChildID:           req.ChildID,
			TherapistID:       t.ID,
			SlotDate:          date,
			StartTime:         req.StartTime,
			DurationMinutes:   domain.SlotDurationMinutes,
			Status:            domain.StatusScheduled,
			RecurrenceGroupID: req.RecurrenceGroupID,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateBooking: lost race for slot therapist=%d %s %s",
					t.ID, date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotConflict
			}
			if errors.Is(err, txmanager.ErrSerialization) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации - та же проигранная гонка
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization failure: %v", err)
			err = ErrSlotConflict
		}
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.ObserveBookingConflict()
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Действия после коммита: кэш, метрики, уведомления
	if err := uc.cache.Invalidate(ctx, result.TherapistID, result.SlotDate); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache: %v", err)
	}
	uc.metrics.ObserveBookingCreated(bookingKind(req), 1)
	uc.notify(ctx, result, therapist, now)

	return toResponse(result), nil
}

// notify подтверждения родителю и терапевту и напоминание перед сессией
func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, therapist *domain.Therapist, now time.Time) {
	when := fmt.Sprintf("%s %s", b.SlotDate.Format(domain.DateFormat), b.StartTime)

	if !b.IsRecurring() {
		uc.notifier.Notify(ctx, b.ParentID,
			fmt.Sprintf("Session with %s booked for %s", therapist.FullName, when), now)
		uc.notifier.Notify(ctx, therapist.UserID,
			fmt.Sprintf("New session booked for %s", when), now)
	}

	if uc.reminderBefore <= 0 {
		return
	}
	startsAt, err := b.StartsAt()
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to compute start of booking id=%d: %v", b.ID, err)
		return
	}
	if remindAt := startsAt.Add(-uc.reminderBefore); remindAt.After(now) {
		uc.notifier.Notify(ctx, b.ParentID,
			fmt.Sprintf("Reminder: session with %s at %s", therapist.FullName, when), remindAt)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                b.ID,
		ParentID:          b.ParentID,
		ChildID:           b.ChildID,
		TherapistID:       b.TherapistID,
		SlotDate:          b.SlotDate,
		StartTime:         b.StartTime,
		DurationMinutes:   b.DurationMinutes,
		Status:            string(b.Status),
		RecurrenceGroupID: b.RecurrenceGroupID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
