//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/nypass/ticketing-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "ticketing_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.PassType{},
		&models.Booking{},
		&models.Pass{},
		&models.EntryLog{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_buyer_phone
		ON bookings (buyer_phone)
	`)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS entry_logs")
	testDB.Exec("DROP TABLE IF EXISTS passes")
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS pass_types")
	testDB.Exec("DROP TABLE IF EXISTS users")
}

func cleanTables() {
	testDB.Exec("DELETE FROM entry_logs")
	testDB.Exec("DELETE FROM passes")
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM pass_types")
	testDB.Exec("ALTER SEQUENCE IF EXISTS pass_types_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
