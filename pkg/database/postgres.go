package database

import (
	"log"

	"github.com/nypass/ticketing-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PassType{},
		&models.Booking{},
		&models.Pass{},
		&models.EntryLog{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One booking per phone number, enforced at the store as well as the
	// service's duplicate check
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_buyer_phone
		ON bookings (buyer_phone)
	`)

	return db
}
