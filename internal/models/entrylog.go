package models

import "time"

type EntryStatus string

const (
	EntryCheckedIn          EntryStatus = "Checked-in"
	EntryPartiallyCheckedIn EntryStatus = "Partially Checked-in"
	EntryDenied             EntryStatus = "Denied"
)

// EntryLog is the append-only audit trail of check-ins. PeopleEntered is the
// count admitted in that single action, not the booking's running total.
type EntryLog struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	BookingID     uint        `gorm:"not null;index" json:"booking_id"`
	ScannedBy     string      `gorm:"not null" json:"scanned_by"`
	PeopleEntered int         `gorm:"not null" json:"people_entered"`
	Status        EntryStatus `gorm:"type:varchar(30);not null" json:"status"`
	ScannedAt     time.Time   `gorm:"autoCreateTime;index" json:"scanned_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
