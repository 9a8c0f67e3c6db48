package therapists

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	therapistRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/therapist"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Service поиск терапевтов, настройка времени приёма и просмотр выходных
type Service struct {
	therapistRepo TherapistRepository
	leaveRepo     LeaveRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса терапевтов
func NewService(therapistRepo TherapistRepository, leaveRepo LeaveRepository, logger Logger) *Service {
	return &Service{
		therapistRepo: therapistRepo,
		leaveRepo:     leaveRepo,
		logger:        logger,
	}
}

// List терапевты по фильтрам; без статуса возвращаются только активные
func (s *Service) List(ctx context.Context, req *models.ListTherapistsRequest) (*models.TherapistListResponse, error) {
	status := domain.TherapistActive
	if req.Status != nil {
		status = domain.TherapistStatus(*req.Status)
		if !domain.IsValidTherapistStatus(status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}

	therapists, err := s.therapistRepo.List(ctx, domain.TherapistsFilter{
		Specialization: req.Specialization,
		Status:         &status,
	})
	if err != nil {
		s.logger.Error("ListTherapists: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTherapists - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTherapistList(therapists), nil
}

// Get профиль терапевта по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.TherapistResponse, error) {
	therapist, err := s.therapistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("GetTherapist: therapist id=%d not found", id)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("GetTherapist: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetTherapist - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTherapist(therapist), nil
}

// ActivateTimes задаёт ежедневное время приёма текущего терапевта
// Набор задаётся один раз, повторная активация отклоняется
func (s *Service) ActivateTimes(ctx context.Context, userID int64, req *models.ActivateTimesRequest) (*models.TherapistResponse, error) {
	s.logger.Info("ActivateTimes: user=%d, times=%v", userID, req.Times)

	times, err := parseActivatedTimes(req.Times)
	if err != nil {
		s.logger.Warn("ActivateTimes: validation failed: %v", err)
		return nil, err
	}

	therapist, err := s.getByUser(ctx, "ActivateTimes", userID)
	if err != nil {
		return nil, err
	}

	if therapist.HasActivatedTimes() {
		s.logger.Warn("ActivateTimes: therapist id=%d already has activated times", therapist.ID)
		return nil, ErrTimesAlreadyActivated
	}

	updated, err := s.therapistRepo.ActivateTimes(ctx, therapist.ID, times)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTimesAlreadySet) {
			s.logger.Warn("ActivateTimes: therapist id=%d lost activation race", therapist.ID)
			return nil, ErrTimesAlreadyActivated
		}
		s.logger.Error("ActivateTimes: repository error for therapist id=%d: %v", therapist.ID, err)
		return nil, fmt.Errorf("%w: ActivateTimes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ActivateTimes: therapist id=%d activated %d times", therapist.ID, len(times))
	return models.FromDomainTherapist(updated), nil
}

// ListOwnLeaves выходные текущего терапевта
func (s *Service) ListOwnLeaves(ctx context.Context, userID int64, status *string) (*models.LeaveListResponse, error) {
	therapist, err := s.getByUser(ctx, "ListOwnLeaves", userID)
	if err != nil {
		return nil, err
	}
	return s.listLeaves(ctx, "ListOwnLeaves", domain.LeavesFilter{TherapistID: &therapist.ID}, status)
}

// ListLeaves очередь выходных для администратора
func (s *Service) ListLeaves(ctx context.Context, status *string) (*models.LeaveListResponse, error) {
	return s.listLeaves(ctx, "ListLeaves", domain.LeavesFilter{}, status)
}

func (s *Service) listLeaves(ctx context.Context, op string, filter domain.LeavesFilter, status *string) (*models.LeaveListResponse, error) {
	if status != nil {
		st := domain.LeaveStatus(*status)
		if !domain.IsValidLeaveStatus(st) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
		}
		filter.Status = &st
	}

	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainLeaveList(leaves), nil
}

func (s *Service) getByUser(ctx context.Context, op string, userID int64) (*domain.Therapist, error) {
	therapist, err := s.therapistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("%s: user=%d is not a therapist", op, userID)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("%s: repository error for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return therapist, nil
}

// parseActivatedTimes от 1 до 10 уникальных значений вида HH:00, результат отсортирован
func parseActivatedTimes(raw []string) ([]types.TimeString, error) {
	if len(raw) == 0 || len(raw) > domain.MaxActivatedTimes {
		return nil, fmt.Errorf("%w: between 1 and %d times are required", ErrInvalidInput, domain.MaxActivatedTimes)
	}

	seen := make(map[types.TimeString]struct{}, len(raw))
	times := make([]types.TimeString, 0, len(raw))
	for _, r := range raw {
		t, err := types.NewTimeStringFromString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !t.IsWholeHour() {
			return nil, fmt.Errorf("%w: time %s must start on the hour", ErrInvalidInput, t)
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("%w: duplicate time %s", ErrInvalidInput, t)
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times, nil
}
