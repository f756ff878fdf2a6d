package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nypass/ticketing-service/internal/cache"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/repository"
	"github.com/nypass/ticketing-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

type PassInput struct {
	PassTypeID  uint
	PeopleCount int
	PassHolders []string
}

type CreateBookingInput struct {
	BuyerName   string
	BuyerPhone  string
	PaymentMode models.PaymentMode
	Notes       string
	MarkAsPaid  bool
	Passes      []PassInput
}

type BookingQuery struct {
	Search        string
	PassType      *models.PassTypeName
	PaymentStatus *models.PaymentStatus
	CheckInStatus string // "checked_in", "not_checked_in" or empty
}

type UpdateBookingInput struct {
	BuyerName     *string
	BuyerPhone    *string
	Notes         *string
	PaymentMode   *models.PaymentMode
	PaymentStatus *models.PaymentStatus
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, q BookingQuery) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id uint, input UpdateBookingInput) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	passTypeRepo repository.PassTypeRepository
	passTypes    *cache.PassTypeCache
	publisher    *rabbitmq.Publisher
	eventYear    int
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	passTypeRepo repository.PassTypeRepository,
	passTypes *cache.PassTypeCache,
	publisher *rabbitmq.Publisher,
	eventYear int,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		passTypeRepo: passTypeRepo,
		passTypes:    passTypes,
		publisher:    publisher,
		eventYear:    eventYear,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if len(input.Passes) == 0 {
		return nil, ErrNoPasses
	}

	// One booking per phone number
	existing, err := s.bookingRepo.FindByPhone(ctx, input.BuyerPhone)
	if err == nil {
		return nil, &DuplicatePhoneError{Existing: existing}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passes := make([]models.Pass, 0, len(input.Passes))
	totalPeople := 0
	for _, in := range input.Passes {
		passType, err := s.lookupPassType(ctx, in.PassTypeID)
		if err != nil {
			return nil, err
		}
		pass, err := newPass(passType, in)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
		totalPeople += pass.PeopleCount
	}

	status := models.PaymentPending
	if input.MarkAsPaid {
		status = models.PaymentPaid
	}

	booking := &models.Booking{
		Ref:           uuid.NewString(),
		BuyerName:     input.BuyerName,
		BuyerPhone:    input.BuyerPhone,
		PaymentStatus: status,
		PaymentMode:   input.PaymentMode,
		Notes:         input.Notes,
		TotalPasses:   len(passes),
		TotalPeople:   totalPeople,
		Passes:        passes,
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		for i := range booking.Passes {
			p := &booking.Passes[i]
			if err := s.passTypeRepo.IncrementIssued(ctx, tx, p.PassTypeID, 1, p.PeopleCount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyBookingCreated, map[string]any{
			"booking_id":     booking.Code(s.eventYear),
			"buyer_name":     booking.BuyerName,
			"total_people":   booking.TotalPeople,
			"payment_status": booking.PaymentStatus,
		})
	}

	return booking, nil
}

// newPass builds the embedded pass, denormalizing the catalog's name and
// price at purchase time. A zero PeopleCount defaults to the type's maximum.
func newPass(passType *models.PassType, in PassInput) (models.Pass, error) {
	count := in.PeopleCount
	if count == 0 {
		count = passType.MaxPeople
	}
	if count < 1 || count > passType.MaxPeople {
		return models.Pass{}, &PeopleLimitError{PassTypeName: passType.Name, MaxPeople: passType.MaxPeople}
	}

	return models.Pass{
		PassTypeID:    passType.ID,
		PassTypeName:  passType.Name,
		PassTypePrice: passType.Price,
		PeopleCount:   count,
		PassHolders:   in.PassHolders,
	}, nil
}

func (s *bookingService) lookupPassType(ctx context.Context, id uint) (*models.PassType, error) {
	if pt, ok := s.passTypes.Get(ctx, id); ok {
		return pt, nil
	}
	pt, err := s.passTypeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassTypeNotFound
		}
		return nil, err
	}
	s.passTypes.Set(ctx, pt)
	return pt, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, q BookingQuery) ([]models.Booking, error) {
	filter := repository.BookingFilter{
		PaymentStatus: q.PaymentStatus,
		PassTypeName:  q.PassType,
	}
	switch q.CheckInStatus {
	case "checked_in":
		v := true
		filter.CheckedIn = &v
	case "not_checked_in":
		v := false
		filter.CheckedIn = &v
	}

	bookings, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if q.Search == "" {
		return bookings, nil
	}

	// Pass codes are derived, not stored, so free-text search filters in
	// memory over code, buyer name and phone.
	needle := strings.ToLower(q.Search)
	matched := make([]models.Booking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if strings.Contains(strings.ToLower(b.Code(s.eventYear)), needle) ||
			strings.Contains(strings.ToLower(b.BuyerName), needle) ||
			strings.Contains(b.BuyerPhone, q.Search) {
			matched = append(matched, *b)
		}
	}
	return matched, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uint, input UpdateBookingInput) (*models.Booking, error) {
	fields := map[string]any{}
	if input.BuyerName != nil {
		fields["buyer_name"] = *input.BuyerName
	}
	if input.BuyerPhone != nil {
		fields["buyer_phone"] = *input.BuyerPhone
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.PaymentMode != nil {
		fields["payment_mode"] = *input.PaymentMode
	}
	if input.PaymentStatus != nil {
		fields["payment_status"] = *input.PaymentStatus
	}

	if len(fields) > 0 {
		if err := s.bookingRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
	}
	return s.GetBooking(ctx, id)
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Booking, error) {
	if err := s.bookingRepo.UpdateFields(ctx, id, map[string]any{"payment_status": status}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.GetBooking(ctx, id)
}
