package repository

import (
	"context"

	"github.com/nypass/ticketing-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows ListBookings. Nil fields are ignored.
type BookingFilter struct {
	PaymentStatus *models.PaymentStatus
	CheckedIn     *bool
	PassTypeName  *models.PassTypeName
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByPhone(ctx context.Context, phone string) (*models.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	SaveEntryState(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

// orderedPasses keeps the pass list in insertion order; the check-in
// distribution depends on it.
func orderedPasses(db *gorm.DB) *gorm.DB {
	return db.Order("passes.id ASC")
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Passes", orderedPasses).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given
// transaction, serializing concurrent check-ins against the same booking.
// The lock covers only the bookings row; pass rows are loaded afterwards and
// are never written outside this lock.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).
		Where("booking_id = ?", id).
		Order("id ASC").
		Find(&booking.Passes).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPhone(ctx context.Context, phone string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Passes", orderedPasses).
		Where("buyer_phone = ?", phone).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Passes", orderedPasses)

	if filter.PaymentStatus != nil {
		q = q.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.CheckedIn != nil {
		q = q.Where("checked_in = ?", *filter.CheckedIn)
	}
	if filter.PassTypeName != nil {
		q = q.Where(
			"id IN (?)",
			r.db.Model(&models.Pass{}).Select("booking_id").Where("pass_type_name = ?", *filter.PassTypeName),
		)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
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

// SaveEntryState persists the check-in mutation: the booking's aggregate
// fields plus each pass's people_entered, inside the caller's transaction.
func (r *bookingRepository) SaveEntryState(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]any{
			"checked_in":           booking.CheckedIn,
			"checked_in_at":        booking.CheckedInAt,
			"scanned_by":           booking.ScannedBy,
			"total_people_entered": booking.TotalPeopleEntered,
		}).Error
	if err != nil {
		return err
	}

	for i := range booking.Passes {
		p := &booking.Passes[i]
		if err := tx.WithContext(ctx).
			Model(&models.Pass{}).
			Where("id = ?", p.ID).
			Update("people_entered", p.PeopleEntered).Error; err != nil {
			return err
		}
	}
	return nil
}
