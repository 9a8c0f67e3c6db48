package children

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	childRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/child"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
)

// Service сервис профилей детей; профиль видит и меняет только родитель-владелец
type Service struct {
	childRepo   ChildRepository
	bookingRepo BookingCounter
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(childRepo ChildRepository, bookingRepo BookingCounter, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		childRepo:   childRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает профиль ребёнка для родителя
func (s *Service) Create(ctx context.Context, parentID int64, req *models.ChildRequest) (*models.ChildResponse, error) {
	s.logger.Info("CreateChild: parent=%d", parentID)

	child, err := toDomain(parentID, req)
	if err != nil {
		s.logger.Warn("CreateChild: validation failed: %v", err)
		return nil, err
	}

	created, err := s.childRepo.Create(ctx, child)
	if err != nil {
		s.logger.Error("CreateChild: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateChild - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateChild: created child id=%d for parent=%d", created.ID, parentID)
	return models.FromDomainChild(created), nil
}

// List профили детей родителя
func (s *Service) List(ctx context.Context, parentID int64) (*models.ChildListResponse, error) {
	children, err := s.childRepo.ListByParent(ctx, parentID)
	if err != nil {
		s.logger.Error("ListChildren: repository error for parent=%d: %v", parentID, err)
		return nil, fmt.Errorf("%w: ListChildren - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainChildList(children), nil
}

// Get профиль ребёнка родителя
func (s *Service) Get(ctx context.Context, parentID, childID int64) (*models.ChildResponse, error) {
	child, err := s.getOwned(ctx, "GetChild", parentID, childID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainChild(child), nil
}

// Update полностью заменяет изменяемые поля профиля
func (s *Service) Update(ctx context.Context, parentID, childID int64, req *models.ChildRequest) (*models.ChildResponse, error) {
	s.logger.Info("UpdateChild: parent=%d, child=%d", parentID, childID)

	update, err := toDomain(parentID, req)
	if err != nil {
		s.logger.Warn("UpdateChild: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Child
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getOwned(txCtx, "UpdateChild", parentID, childID); err != nil {
			return err
		}

		update.ID = childID
		updated, err = s.childRepo.Update(txCtx, update)
		if err != nil {
			if errors.Is(err, childRepo.ErrChildNotFound) {
				return ErrChildNotFound
			}
			s.logger.Error("UpdateChild: repository error for child=%d: %v", childID, err)
			return fmt.Errorf("%w: UpdateChild - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainChild(updated), nil
}

// Delete удаляет профиль, если у ребёнка нет запланированных сессий
func (s *Service) Delete(ctx context.Context, parentID, childID int64) error {
	s.logger.Info("DeleteChild: parent=%d, child=%d", parentID, childID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getOwned(txCtx, "DeleteChild", parentID, childID); err != nil {
			return err
		}

		scheduled, err := s.bookingRepo.CountScheduledByChild(txCtx, childID)
		if err != nil {
			s.logger.Error("DeleteChild: failed to count bookings of child=%d: %v", childID, err)
			return fmt.Errorf("%w: DeleteChild - count bookings: %v", ErrInternal, err)
		}
		if scheduled > 0 {
			s.logger.Warn("DeleteChild: child=%d has %d scheduled bookings", childID, scheduled)
			return ErrChildHasBookings
		}

		if err := s.childRepo.Delete(txCtx, childID); err != nil {
			if errors.Is(err, childRepo.ErrChildNotFound) {
				return ErrChildNotFound
			}
			s.logger.Error("DeleteChild: repository error for child=%d: %v", childID, err)
			return fmt.Errorf("%w: DeleteChild - repository error: %v", ErrInternal, err)
		}
		return nil
	})
}

func (s *Service) getOwned(ctx context.Context, op string, parentID, childID int64) (*domain.Child, error) {
	child, err := s.childRepo.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			s.logger.Warn("%s: child id=%d not found", op, childID)
			return nil, ErrChildNotFound
		}
		s.logger.Error("%s: repository error for child=%d: %v", op, childID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !child.IsOwnedBy(parentID) {
		s.logger.Warn("%s: parent=%d does not own child=%d", op, parentID, childID)
		return nil, ErrAccessDenied
	}
	return child, nil
}

func toDomain(parentID int64, req *models.ChildRequest) (*domain.Child, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxChildNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxChildNameLength)
	}
	if req.Age < domain.MinChildAge || req.Age > domain.MaxChildAge {
		return nil, fmt.Errorf("%w: age must be between %d and %d", ErrInvalidInput, domain.MinChildAge, domain.MaxChildAge)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &domain.Child{
		ParentID:  parentID,
		Name:      name,
		Age:       req.Age,
		Address:   req.Address,
		Condition: req.Condition,
		Notes:     req.Notes,
	}, nil
}
