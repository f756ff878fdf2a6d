package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/nypass/ticketing-service/config"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/pkg/database"
	"gorm.io/gorm"
)

// One-time migration from the legacy single-pass booking shape (pass_type_id,
// people_entered directly on the bookings row) to the embedded multi-pass
// shape. Runtime code only reads the multi-pass shape; this command is the
// only place that ever touches the legacy columns.
func main() {
	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	backfillRefs(db)

	if !hasLegacyColumns(db) {
		log.Println("no legacy columns found, nothing to migrate")
		return
	}

	type legacyBooking struct {
		ID            uint
		PassTypeID    uint
		TotalPeople   int
		PeopleEntered int
	}

	var legacy []legacyBooking
	err := db.Raw(`
		SELECT b.id, b.pass_type_id, b.total_people, b.people_entered
		FROM bookings b
		WHERE b.pass_type_id IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM passes p WHERE p.booking_id = b.id)
	`).Scan(&legacy).Error
	if err != nil {
		log.Fatalf("failed to load legacy bookings: %v", err)
	}

	log.Printf("found %d bookings to migrate", len(legacy))

	for _, lb := range legacy {
		lb := lb
		err := db.Transaction(func(tx *gorm.DB) error {
			var passType models.PassType
			if err := tx.First(&passType, lb.PassTypeID).Error; err != nil {
				return fmt.Errorf("pass type %d: %w", lb.PassTypeID, err)
			}

			count := lb.TotalPeople
			if count < 1 {
				count = 1
			}

			pass := models.Pass{
				BookingID:     lb.ID,
				PassTypeID:    passType.ID,
				PassTypeName:  passType.Name,
				PassTypePrice: passType.Price,
				PeopleCount:   count,
				PeopleEntered: lb.PeopleEntered,
			}
			if err := tx.Create(&pass).Error; err != nil {
				return err
			}

			return tx.Exec(`
				UPDATE bookings
				SET total_passes = 1,
				    total_people = ?,
				    total_people_entered = ?,
				    checked_in = ?,
				    pass_type_id = NULL,
				    people_entered = NULL
				WHERE id = ?
			`, count, lb.PeopleEntered, lb.PeopleEntered > 0, lb.ID).Error
		})
		if err != nil {
			log.Fatalf("failed to migrate booking %d: %v", lb.ID, err)
		}
		log.Printf("migrated booking %d", lb.ID)
	}

	log.Println("migration completed successfully")
}

// backfillRefs assigns a unique identifier to rows created before the ref
// column existed; pass codes are derived from it.
func backfillRefs(db *gorm.DB) {
	var ids []uint
	if err := db.Raw(`SELECT id FROM bookings WHERE ref IS NULL OR ref = ''`).Scan(&ids).Error; err != nil {
		log.Fatalf("failed to scan bookings without refs: %v", err)
	}
	for _, id := range ids {
		if err := db.Exec(`UPDATE bookings SET ref = ? WHERE id = ?`, uuid.NewString(), id).Error; err != nil {
			log.Fatalf("failed to backfill ref for booking %d: %v", id, err)
		}
	}
	if len(ids) > 0 {
		log.Printf("backfilled refs for %d bookings", len(ids))
	}
}

func hasLegacyColumns(db *gorm.DB) bool {
	var count int64
	db.Raw(`
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_name = 'bookings' AND column_name = 'pass_type_id'
	`).Scan(&count)
	return count > 0
}
