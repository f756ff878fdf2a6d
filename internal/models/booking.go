package models

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

type PaymentMode string

const (
	PayCash   PaymentMode = "Cash"
	PayUPI    PaymentMode = "UPI"
	PayCard   PaymentMode = "Card"
	PayOnline PaymentMode = "Online"
)

// PassHolders is the optional list of named holders on a single pass.
type PassHolders []string

// Pass is one admission ticket inside a booking. Type name and price are
// copied from the catalog at purchase time. PeopleEntered only ever grows.
type Pass struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	BookingID     uint         `gorm:"not null;index" json:"booking_id"`
	PassTypeID    uint         `gorm:"not null" json:"pass_type_id"`
	PassTypeName  PassTypeName `gorm:"type:varchar(20);not null" json:"pass_type_name"`
	PassTypePrice float64      `gorm:"not null" json:"pass_type_price"`
	PeopleCount   int          `gorm:"not null" json:"people_count"`
	PassHolders   PassHolders  `gorm:"serializer:json" json:"pass_holders"`
	PeopleEntered int          `gorm:"not null;default:0" json:"people_entered"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Remaining is the unused capacity on this pass. Negative only after an
// admin override pushed the pass past its own quota.
func (p *Pass) Remaining() int {
	return p.PeopleCount - p.PeopleEntered
}

type Booking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Ref           string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"ref"`
	BuyerName     string        `gorm:"not null" json:"buyer_name"`
	BuyerPhone    string        `gorm:"not null;index" json:"buyer_phone"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"payment_status"`
	PaymentMode   PaymentMode   `gorm:"type:varchar(20)" json:"payment_mode"`
	Notes         string        `gorm:"default:''" json:"notes"`
	CheckedIn     bool          `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt   *time.Time    `json:"checked_in_at,omitempty"`
	ScannedBy     string        `json:"scanned_by,omitempty"`
	TotalPasses   int           `gorm:"not null" json:"total_passes"`
	TotalPeople   int           `gorm:"not null" json:"total_people"`

	// TotalPeopleEntered mirrors the sum of PeopleEntered across Passes.
	// Both are written together inside the check-in transaction.
	TotalPeopleEntered int `gorm:"not null;default:0" json:"total_people_entered"`

	Passes    []Pass    `gorm:"foreignKey:BookingID" json:"passes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalCapacity is the purchased occupancy across all passes.
func (b *Booking) TotalCapacity() int {
	total := 0
	for i := range b.Passes {
		total += b.Passes[i].PeopleCount
	}
	return total
}

// EnteredCount is the number of people already admitted, summed over passes.
func (b *Booking) EnteredCount() int {
	total := 0
	for i := range b.Passes {
		total += b.Passes[i].PeopleEntered
	}
	return total
}

// TotalPrice sums the denormalized pass prices for display.
func (b *Booking) TotalPrice() float64 {
	total := 0.0
	for i := range b.Passes {
		total += b.Passes[i].PassTypePrice
	}
	return total
}

// Code returns the printed pass code for the configured event year.
func (b *Booking) Code(year int) string {
	return BookingCode(b.Ref, year)
}

// BookingCode derives the display code from a booking's unique identifier:
// the last 6 characters of the identifier's string form, left-padded with
// zeros to 6, behind an NY<year>- prefix. It is a projection recomputed on
// every read, never stored.
func BookingCode(id string, year int) string {
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	for len(suffix) < 6 {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("NY%d-%s", year, suffix)
}
