package dto

import (
	"time"

	"github.com/nypass/ticketing-service/internal/models"
)

type PassResponse struct {
	ID            uint                `json:"id"`
	PassTypeID    uint                `json:"pass_type_id"`
	PassTypeName  models.PassTypeName `json:"pass_type_name"`
	PassTypePrice float64             `json:"pass_type_price"`
	PeopleCount   int                 `json:"people_count"`
	PassHolders   []string            `json:"pass_holders,omitempty"`
	PeopleEntered int                 `json:"people_entered"`
}

type BookingResponse struct {
	ID                 uint                 `json:"id"`
	BookingID          string               `json:"booking_id"`
	BuyerName          string               `json:"buyer_name"`
	BuyerPhone         string               `json:"buyer_phone"`
	PaymentStatus      models.PaymentStatus `json:"payment_status"`
	PaymentMode        models.PaymentMode   `json:"payment_mode,omitempty"`
	Notes              string               `json:"notes"`
	CheckedIn          bool                 `json:"checked_in"`
	CheckedInAt        *time.Time           `json:"checked_in_at,omitempty"`
	ScannedBy          string               `json:"scanned_by,omitempty"`
	TotalPasses        int                  `json:"total_passes"`
	TotalPeople        int                  `json:"total_people"`
	TotalPeopleEntered int                  `json:"total_people_entered"`
	TotalPrice         float64              `json:"total_price"`
	Passes             []PassResponse       `json:"passes"`
	CreatedAt          time.Time            `json:"created_at"`
}

// PassDetailsResponse is the summary printed or resent to the buyer.
type PassDetailsResponse struct {
	PassID        string               `json:"pass_id"`
	BuyerName     string               `json:"buyer_name"`
	BuyerPhone    string               `json:"buyer_phone"`
	PassTypes     []string             `json:"pass_types"`
	AllowedPeople int                  `json:"allowed_people"`
	Price         float64              `json:"price"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

// GateBookingResponse is what the gate screen shows after a search.
type GateBookingResponse struct {
	ID                 uint                 `json:"id"`
	BookingID          string               `json:"booking_id"`
	BuyerName          string               `json:"buyer_name"`
	BuyerPhone         string               `json:"buyer_phone"`
	PassTypes          []string             `json:"pass_types"`
	Price              float64              `json:"price"`
	PaymentStatus      models.PaymentStatus `json:"payment_status"`
	TotalPeople        int                  `json:"total_people"`
	TotalPeopleEntered int                  `json:"total_people_entered"`
	CheckedIn          bool                 `json:"checked_in"`
	CheckedInAt        *time.Time           `json:"checked_in_at,omitempty"`
	ScannedBy          string               `json:"scanned_by,omitempty"`
	Notes              string               `json:"notes"`
	CanEnter           bool                 `json:"can_enter"`
}

type CheckInResponse struct {
	Message       string             `json:"message"`
	BookingID     string             `json:"booking_id"`
	BuyerName     string             `json:"buyer_name"`
	TotalAllowed  int                `json:"total_allowed"`
	TotalEntered  int                `json:"total_entered"`
	Remaining     int                `json:"remaining"`
	ThisEntry     int                `json:"this_entry"`
	Status        models.EntryStatus `json:"status"`
	FullyUtilized bool               `json:"fully_utilized"`
}

type EntryLogResponse struct {
	ID            uint               `json:"id"`
	BookingID     string             `json:"booking_id"`
	BuyerName     string             `json:"buyer_name,omitempty"`
	ScannedBy     string             `json:"scanned_by"`
	PeopleEntered int                `json:"people_entered"`
	Status        models.EntryStatus `json:"status"`
	ScannedAt     time.Time          `json:"scanned_at"`
}

type UserResponse struct {
	ID     uint        `json:"id"`
	Email  string      `json:"email"`
	Mobile string      `json:"mobile"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
}

type LoginResponse struct {
	Token      string       `json:"token"`
	User       UserResponse `json:"user"`
	RedirectTo string       `json:"redirect_to"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToPassResponse(p *models.Pass) PassResponse {
	return PassResponse{
		ID:            p.ID,
		PassTypeID:    p.PassTypeID,
		PassTypeName:  p.PassTypeName,
		PassTypePrice: p.PassTypePrice,
		PeopleCount:   p.PeopleCount,
		PassHolders:   p.PassHolders,
		PeopleEntered: p.PeopleEntered,
	}
}

func ToBookingResponse(b *models.Booking, year int) BookingResponse {
	passes := make([]PassResponse, len(b.Passes))
	for i := range b.Passes {
		passes[i] = ToPassResponse(&b.Passes[i])
	}
	return BookingResponse{
		ID:                 b.ID,
		BookingID:          b.Code(year),
		BuyerName:          b.BuyerName,
		BuyerPhone:         b.BuyerPhone,
		PaymentStatus:      b.PaymentStatus,
		PaymentMode:        b.PaymentMode,
		Notes:              b.Notes,
		CheckedIn:          b.CheckedIn,
		CheckedInAt:        b.CheckedInAt,
		ScannedBy:          b.ScannedBy,
		TotalPasses:        b.TotalPasses,
		TotalPeople:        b.TotalPeople,
		TotalPeopleEntered: b.TotalPeopleEntered,
		TotalPrice:         b.TotalPrice(),
		Passes:             passes,
		CreatedAt:          b.CreatedAt,
	}
}

func passTypeNames(b *models.Booking) []string {
	names := make([]string, len(b.Passes))
	for i := range b.Passes {
		names[i] = string(b.Passes[i].PassTypeName)
	}
	return names
}

func ToPassDetailsResponse(b *models.Booking, year int) PassDetailsResponse {
	return PassDetailsResponse{
		PassID:        b.Code(year),
		BuyerName:     b.BuyerName,
		BuyerPhone:    b.BuyerPhone,
		PassTypes:     passTypeNames(b),
		AllowedPeople: b.TotalPeople,
		Price:         b.TotalPrice(),
		PaymentStatus: b.PaymentStatus,
	}
}

func ToGateBookingResponse(b *models.Booking, year int) GateBookingResponse {
	return GateBookingResponse{
		ID:                 b.ID,
		BookingID:          b.Code(year),
		BuyerName:          b.BuyerName,
		BuyerPhone:         b.BuyerPhone,
		PassTypes:          passTypeNames(b),
		Price:              b.TotalPrice(),
		PaymentStatus:      b.PaymentStatus,
		TotalPeople:        b.TotalCapacity(),
		TotalPeopleEntered: b.EnteredCount(),
		CheckedIn:          b.CheckedIn,
		CheckedInAt:        b.CheckedInAt,
		ScannedBy:          b.ScannedBy,
		Notes:              b.Notes,
		CanEnter:           b.PaymentStatus == models.PaymentPaid && b.EnteredCount() < b.TotalCapacity(),
	}
}

func ToEntryLogResponse(e *models.EntryLog, year int) EntryLogResponse {
	resp := EntryLogResponse{
		ID:            e.ID,
		ScannedBy:     e.ScannedBy,
		PeopleEntered: e.PeopleEntered,
		Status:        e.Status,
		ScannedAt:     e.ScannedAt,
	}
	if e.Booking != nil {
		resp.BookingID = e.Booking.Code(year)
		resp.BuyerName = e.Booking.BuyerName
	}
	return resp
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Mobile: u.Mobile,
		Name:   u.Name,
		Role:   u.Role,
	}
}
