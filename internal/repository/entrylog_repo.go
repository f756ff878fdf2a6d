package repository

import (
	"context"

	"github.com/nypass/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type EntryLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.EntryLog) error
	FindRecent(ctx context.Context, limit int) ([]models.EntryLog, error)
	CountByBooking(ctx context.Context, bookingID uint) (int64, error)
}

type entryLogRepository struct {
	db *gorm.DB
}

func NewEntryLogRepository(db *gorm.DB) EntryLogRepository {
	return &entryLogRepository{db: db}
}

// Create appends one audit record. Entries are never updated or deleted.
func (r *entryLogRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.EntryLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *entryLogRepository) FindRecent(ctx context.Context, limit int) ([]models.EntryLog, error) {
	var logs []models.EntryLog
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Passes", orderedPasses).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *entryLogRepository) CountByBooking(ctx context.Context, bookingID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EntryLog{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}
