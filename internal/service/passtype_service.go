package service

import (
	"context"
	"errors"

	"github.com/nypass/ticketing-service/internal/cache"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

type UpdatePassTypeInput struct {
	Price         *float64
	ValidForEvent *string
	Description   *string
	IsActive      *bool
}

type PassTypeService interface {
	CreatePassType(ctx context.Context, passType *models.PassType) error
	GetPassType(ctx context.Context, id uint) (*models.PassType, error)
	ListPassTypes(ctx context.Context) ([]models.PassType, error)
	UpdatePassType(ctx context.Context, id uint, input UpdatePassTypeInput) (*models.PassType, error)
}

type passTypeService struct {
	repo      repository.PassTypeRepository
	passTypes *cache.PassTypeCache
}

func NewPassTypeService(repo repository.PassTypeRepository, passTypes *cache.PassTypeCache) PassTypeService {
	return &passTypeService{repo: repo, passTypes: passTypes}
}

func (s *passTypeService) CreatePassType(ctx context.Context, passType *models.PassType) error {
	if err := s.repo.Create(ctx, passType); err != nil {
		return err
	}
	s.passTypes.Set(ctx, passType)
	return nil
}

func (s *passTypeService) GetPassType(ctx context.Context, id uint) (*models.PassType, error) {
	if pt, ok := s.passTypes.Get(ctx, id); ok {
		return pt, nil
	}
	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassTypeNotFound
		}
		return nil, err
	}
	s.passTypes.Set(ctx, pt)
	return pt, nil
}

func (s *passTypeService) ListPassTypes(ctx context.Context) ([]models.PassType, error) {
	return s.repo.FindAll(ctx)
}

// UpdatePassType touches display fields only. Name and max_people are fixed
// after creation; bookings snapshot name and price anyway.
func (s *passTypeService) UpdatePassType(ctx context.Context, id uint, input UpdatePassTypeInput) (*models.PassType, error) {
	fields := map[string]any{}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.ValidForEvent != nil {
		fields["valid_for_event"] = *input.ValidForEvent
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPassTypeNotFound
			}
			return nil, err
		}
		s.passTypes.Invalidate(ctx, id)
	}

	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassTypeNotFound
		}
		return nil, err
	}
	s.passTypes.Set(ctx, pt)
	return pt, nil
}
