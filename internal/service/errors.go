package service

import (
	"errors"
	"fmt"

	"github.com/nypass/ticketing-service/internal/models"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPassTypeNotFound   = errors.New("pass type not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotPaid     = errors.New("pass not paid")
	ErrNoPasses           = errors.New("booking must contain at least one pass")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin already exists")
)

// DuplicatePhoneError carries the booking already registered under the phone
// number so the caller can show who holds it.
type DuplicatePhoneError struct {
	Existing *models.Booking
}

func (e *DuplicatePhoneError) Error() string {
	return "phone number already has a booking"
}

// PeopleLimitError reports a pass request above the pass type's quota.
type PeopleLimitError struct {
	PassTypeName models.PassTypeName
	MaxPeople    int
}

func (e *PeopleLimitError) Error() string {
	return fmt.Sprintf("cannot exceed maximum %d people for %s pass", e.MaxPeople, e.PassTypeName)
}

// QuotaExhaustedError rejects a check-in against a booking whose full
// capacity has already entered.
type QuotaExhaustedError struct {
	TotalAllowed   int
	AlreadyEntered int
}

func (e *QuotaExhaustedError) Error() string {
	return "pass fully utilized"
}

// QuotaExceededError rejects a check-in that would overshoot the remaining
// capacity; Remaining is exact so the gate can prompt a smaller count.
type QuotaExceededError struct {
	Requested int
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("cannot enter %d people, only %d remaining", e.Requested, e.Remaining)
}
