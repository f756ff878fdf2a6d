package repository

import (
	"context"

	"github.com/nypass/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type PassTypeRepository interface {
	Create(ctx context.Context, passType *models.PassType) error
	FindByID(ctx context.Context, id uint) (*models.PassType, error)
	FindAll(ctx context.Context) ([]models.PassType, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	IncrementIssued(ctx context.Context, tx *gorm.DB, id uint, passes, people int) error
}

type passTypeRepository struct {
	db *gorm.DB
}

func NewPassTypeRepository(db *gorm.DB) PassTypeRepository {
	return &passTypeRepository{db: db}
}

func (r *passTypeRepository) Create(ctx context.Context, passType *models.PassType) error {
	return r.db.WithContext(ctx).Create(passType).Error
}

func (r *passTypeRepository) FindByID(ctx context.Context, id uint) (*models.PassType, error) {
	var passType models.PassType
	if err := r.db.WithContext(ctx).First(&passType, id).Error; err != nil {
		return nil, err
	}
	return &passType, nil
}

func (r *passTypeRepository) FindAll(ctx context.Context) ([]models.PassType, error) {
	var passTypes []models.PassType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&passTypes).Error; err != nil {
		return nil, err
	}
	return passTypes, nil
}

func (r *passTypeRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.PassType{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementIssued bumps the catalog's sold counters when a booking is created.
func (r *passTypeRepository) IncrementIssued(ctx context.Context, tx *gorm.DB, id uint, passes, people int) error {
	return tx.WithContext(ctx).
		Model(&models.PassType{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"no_of_passes": gorm.Expr("no_of_passes + ?", passes),
			"no_of_people": gorm.Expr("no_of_people + ?", people),
		}).Error
}
