package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// UseCase use case для получения каталога слотов терапевта на день
type UseCase struct {
	therapistRepo TherapistRepository
	bookingRepo   BookingRepository
	leaveRepo     LeaveRepository
	cache         SlotsCache
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil
func NewUseCase(
	therapistRepo TherapistRepository,
	bookingRepo BookingRepository,
	leaveRepo LeaveRepository,
	cache SlotsCache,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		therapistRepo: therapistRepo,
		bookingRepo:   bookingRepo,
		leaveRepo:     leaveRepo,
		cache:         cache,
		timeProvider:  &RealTimeProvider{Location: loc},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%d, date=%s", req.TherapistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата рассматривается в локации сервиса
	now := uc.timeProvider.Now()
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())

	if domain.IsDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем терапевта
	therapist, err := uc.therapistRepo.GetByID(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			uc.logger.Warn("GetAvailableSlots: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	if !therapist.HasActivatedTimes() {
		uc.logger.Warn("GetAvailableSlots: therapist id=%d has no activated times", req.TherapistID)
		return nil, ErrNoActivatedTimes
	}

	empty := &Response{TherapistID: req.TherapistID, Date: date, Slots: []Slot{}}

	// 4. Неактивный терапевт, выходные и одобренный отпуск - слотов нет
	if !therapist.IsActive() {
		uc.logger.Info("GetAvailableSlots: therapist id=%d is %s", therapist.ID, therapist.Status)
		return empty, nil
	}

	if domain.IsWeekend(date) {
		uc.logger.Info("GetAvailableSlots: %s is a weekend", date.Format(domain.DateFormat))
		return empty, nil
	}

	onLeave, err := uc.leaveRepo.HasApprovedOn(ctx, therapist.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check leave: %v", err)
		return nil, fmt.Errorf("%w: failed to check leave: %v", ErrInternal, err)
	}
	if onLeave {
		uc.logger.Info("GetAvailableSlots: therapist id=%d is on leave %s", therapist.ID, date.Format(domain.DateFormat))
		return empty, nil
	}

	// 5. Занятые слоты
	booked, err := uc.bookedTimes(ctx, therapist.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	slots := toSlots(domain.BuildDaySlots(therapist, date, booked), now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for therapist=%d, date=%s",
		len(slots), therapist.ID, date.Format(domain.DateFormat))

	return &Response{
		TherapistID: therapist.ID,
		Date:        date,
		Slots:       slots,
	}, nil
}

// bookedTimes читает занятые времена из кэша, при промахе - из БД с заполнением кэша
func (uc *UseCase) bookedTimes(ctx context.Context, therapistID int64, date time.Time) ([]types.TimeString, error) {
	if uc.cache != nil {
		times, hit, err := uc.cache.GetBookedTimes(ctx, therapistID, date)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		} else if hit {
			return times, nil
		}
	}

	times, err := uc.bookingRepo.GetBookedTimes(ctx, therapistID, date)
	if err != nil {
		return nil, err
	}

	// Бронирование, закоммиченное между чтением и записью, может оставить в кэше устаревший набор.
	// Он живёт не дольше TTL: кэш только подсказка, слот защищает сериализуемая транзакция бронирования
	if uc.cache != nil {
		if err := uc.cache.SetBookedTimes(ctx, therapistID, date, times); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
		}
	}
	return times, nil
}
