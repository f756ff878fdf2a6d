package service

import (
	"context"
	"errors"
	"time"

	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/repository"
	"github.com/nypass/ticketing-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

// EntryRequest is a single check-in action at the gate. AdminOverride is only
// set after the handler has verified the admin PIN.
type EntryRequest struct {
	BookingID     uint
	Count         int
	ScannedBy     string
	AdminOverride bool
}

type EntryResult struct {
	Booking       *models.Booking
	Applied       int
	TotalAllowed  int
	TotalEntered  int
	Remaining     int
	Status        models.EntryStatus
	FullyUtilized bool
}

type GateService interface {
	Resolve(ctx context.Context, searchValue string) (*models.Booking, error)
	ApplyEntry(ctx context.Context, req EntryRequest) (*EntryResult, error)
	RecentLogs(ctx context.Context, limit int) ([]models.EntryLog, error)
	ScanCount(ctx context.Context, bookingID uint) (int64, error)
}

type gateService struct {
	bookingRepo repository.BookingRepository
	entryRepo   repository.EntryLogRepository
	publisher   *rabbitmq.Publisher
	eventYear   int
}

func NewGateService(
	bookingRepo repository.BookingRepository,
	entryRepo repository.EntryLogRepository,
	publisher *rabbitmq.Publisher,
	eventYear int,
) GateService {
	return &gateService{
		bookingRepo: bookingRepo,
		entryRepo:   entryRepo,
		publisher:   publisher,
		eventYear:   eventYear,
	}
}

// Resolve looks a booking up by buyer phone first; only when no phone matches
// does it fall back to comparing pass codes. Pass codes are derived, not
// stored, so that path scans the bookings and compares exactly
// (case-sensitive). Read-only.
func (s *gateService) Resolve(ctx context.Context, searchValue string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByPhone(ctx, searchValue)
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	all, err := s.bookingRepo.FindAll(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Code(s.eventYear) == searchValue {
			return &all[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

// ApplyEntry runs the read-decide-mutate-log sequence as one transaction,
// serialized per booking by a row lock. A rejection writes nothing; an
// admission updates the booking and appends exactly one entry log, or
// neither.
func (s *gateService) ApplyEntry(ctx context.Context, req EntryRequest) (*EntryResult, error) {
	var result *EntryResult

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, req.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res, err := applyEntry(booking, req.Count, req.ScannedBy, req.AdminOverride, time.Now())
		if err != nil {
			return err
		}

		if err := s.bookingRepo.SaveEntryState(ctx, tx, booking); err != nil {
			return err
		}

		entry := &models.EntryLog{
			BookingID:     booking.ID,
			ScannedBy:     req.ScannedBy,
			PeopleEntered: res.Applied,
			Status:        res.Status,
		}
		if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyEntryRecorded, map[string]any{
			"booking_id":    result.Booking.Code(s.eventYear),
			"scanned_by":    req.ScannedBy,
			"this_entry":    result.Applied,
			"total_entered": result.TotalEntered,
			"status":        result.Status,
		})
	}

	return result, nil
}

func (s *gateService) RecentLogs(ctx context.Context, limit int) ([]models.EntryLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.entryRepo.FindRecent(ctx, limit)
}

// ScanCount is the number of check-in actions recorded against a booking,
// shown at the gate so staff can spot a pass being presented repeatedly.
func (s *gateService) ScanCount(ctx context.Context, bookingID uint) (int64, error) {
	return s.entryRepo.CountByBooking(ctx, bookingID)
}

// applyEntry is the quota accounting core. It mutates the booking in memory;
// the caller persists it together with the audit record in one transaction.
//
// Rules, in order: the booking must be Paid; a fully used booking rejects
// unless overridden; a request past the remaining capacity rejects with the
// exact remaining count unless overridden. An admitted count is spread over
// the passes in stored order, each taking at most its own remaining quota.
// When an override admits past capacity, the overflow lands entirely on the
// pass that was still open when the override applied (last pass if none
// were open), so the per-pass counts always sum to the new aggregate total.
func applyEntry(b *models.Booking, requested int, scannedBy string, override bool, now time.Time) (*EntryResult, error) {
	if requested < 1 {
		requested = 1
	}

	if b.PaymentStatus != models.PaymentPaid {
		return nil, ErrBookingNotPaid
	}
	if len(b.Passes) == 0 {
		return nil, ErrNoPasses
	}

	capacity := b.TotalCapacity()
	current := b.EnteredCount()

	if current >= capacity && !override {
		return nil, &QuotaExhaustedError{TotalAllowed: capacity, AlreadyEntered: current}
	}
	if current+requested > capacity && !override {
		return nil, &QuotaExceededError{Requested: requested, Remaining: capacity - current}
	}

	newTotal := current + requested

	left := requested
	lastOpen := -1
	for i := range b.Passes {
		if left == 0 {
			break
		}
		p := &b.Passes[i]
		room := p.Remaining()
		if room <= 0 {
			continue
		}
		take := left
		if take > room {
			take = room
		}
		p.PeopleEntered += take
		left -= take
		lastOpen = i
	}
	if left > 0 {
		if lastOpen == -1 {
			lastOpen = len(b.Passes) - 1
		}
		b.Passes[lastOpen].PeopleEntered += left
	}

	b.TotalPeopleEntered = newTotal
	b.CheckedIn = newTotal > 0
	if b.CheckedInAt == nil {
		t := now
		b.CheckedInAt = &t
	}
	b.ScannedBy = scannedBy

	var status models.EntryStatus
	switch {
	case newTotal >= capacity:
		status = models.EntryCheckedIn
	case newTotal > 0:
		status = models.EntryPartiallyCheckedIn
	default:
		status = models.EntryDenied
	}

	return &EntryResult{
		Booking:       b,
		Applied:       requested,
		TotalAllowed:  capacity,
		TotalEntered:  newTotal,
		Remaining:     capacity - newTotal,
		Status:        status,
		FullyUtilized: newTotal >= capacity,
	}, nil
}
