package dto

type CreatePassRequest struct {
	PassTypeID  uint     `json:"pass_type_id" validate:"required"`
	PeopleCount int      `json:"people_count" validate:"gte=0"`
	PassHolders []string `json:"pass_holders"`
}

type CreateBookingRequest struct {
	BuyerName   string              `json:"buyer_name" validate:"required"`
	BuyerPhone  string              `json:"buyer_phone" validate:"required"`
	PaymentMode string              `json:"payment_mode" validate:"omitempty,oneof=Cash UPI Card Online"`
	Notes       string              `json:"notes"`
	MarkAsPaid  bool                `json:"mark_as_paid"`
	Passes      []CreatePassRequest `json:"passes" validate:"required,min=1,dive"`
}

type UpdateBookingRequest struct {
	BuyerName     *string `json:"buyer_name"`
	BuyerPhone    *string `json:"buyer_phone"`
	Notes         *string `json:"notes"`
	PaymentMode   *string `json:"payment_mode" validate:"omitempty,oneof=Cash UPI Card Online"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=Pending Paid Refunded"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=Pending Paid Refunded"`
}

type CreatePassTypeRequest struct {
	Name          string  `json:"name" validate:"required,oneof=Teens Couple Family"`
	Price         float64 `json:"price" validate:"gte=0"`
	MaxPeople     int     `json:"max_people" validate:"required,gt=0"`
	ValidForEvent string  `json:"valid_for_event"`
	Description   string  `json:"description"`
}

type UpdatePassTypeRequest struct {
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	ValidForEvent *string  `json:"valid_for_event"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"is_active"`
}

type GateSearchRequest struct {
	SearchValue string `json:"search_value" validate:"required"`
}

type CheckInRequest struct {
	BookingID     uint   `json:"booking_id" validate:"required"`
	PeopleEntered int    `json:"people_entered" validate:"gte=0"`
	ScannedBy     string `json:"scanned_by" validate:"required"`
	AdminOverride bool   `json:"admin_override"`
	AdminPIN      string `json:"admin_pin"`
}

type LoginRequest struct {
	// Email also accepts a mobile number.
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Admin 'Sales Staff' 'Gate Staff'"`
}

type RegisterAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}
