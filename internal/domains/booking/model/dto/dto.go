package dto

import (
	"atithi/internal/domains/booking/model"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	gModel "atithi/shared/model"
	"atithi/shared/timezone"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	errCheckOutNotAfterCheckIn = errors.New("check_out must be after check_in")
)

type CreateBookingRequest struct {
	AccommodationID string  `json:"accommodation_id" validate:"required"`
	PackageID       string  `json:"package_id"       validate:"omitempty"`
	GuestName       string  `json:"guest_name"       validate:"required,max=100"`
	GuestEmail      string  `json:"guest_email"      validate:"required,max=100"`
	GuestPhone      string  `json:"guest_phone"      validate:"required,max=20"`
	CheckIn         string  `json:"check_in"         validate:"required"`
	CheckOut        string  `json:"check_out"        validate:"required"`
	Adults          int     `json:"adults"           validate:"required,min=1"`
	Children        int     `json:"children"         validate:"omitempty,min=0"`
	Rooms           int     `json:"rooms"            validate:"required,min=1"`
	VegCount        int     `json:"veg_count"        validate:"omitempty,min=0"`
	NonVegCount     int     `json:"nonveg_count"     validate:"omitempty,min=0"`
	JainCount       int     `json:"jain_count"       validate:"omitempty,min=0"`
	TotalAmount     float64 `json:"total_amount"     validate:"required,gt=0"`
	AdvanceAmount   float64 `json:"advance_amount"   validate:"omitempty,min=0"`
	Discount        float64 `json:"discount"         validate:"omitempty,min=0"`
	CouponCode      string  `json:"coupon_code"      validate:"omitempty,max=50"`
}

func (c *CreateBookingRequest) ToModel(user, paymentStatus string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	if !checkOut.After(checkIn) {
		return model.Booking{}, errCheckOutNotAfterCheckIn
	}

	return model.Booking{
		ID:              uuid.NewString(),
		AccommodationID: c.AccommodationID,
		PackageID:       c.PackageID,
		GuestName:       c.GuestName,
		GuestEmail:      c.GuestEmail,
		GuestPhone:      c.GuestPhone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          c.Adults,
		Children:        c.Children,
		Rooms:           c.Rooms,
		VegCount:        c.VegCount,
		NonVegCount:     c.NonVegCount,
		JainCount:       c.JainCount,
		TotalAmount:     c.TotalAmount,
		AdvanceAmount:   c.AdvanceAmount,
		Discount:        c.Discount,
		CouponCode:      c.CouponCode,
		PaymentStatus:   paymentStatus,
		TxnID:           model.GenerateTxnID(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// MealCountsConsistent reports whether the per-diet meal counts add up to
// the head count. Bookings with no meal preference at all pass.
func (c *CreateBookingRequest) MealCountsConsistent() bool {
	if c.VegCount == 0 && c.NonVegCount == 0 && c.JainCount == 0 {
		return true
	}

	return c.VegCount+c.NonVegCount+c.JainCount == c.Adults+c.Children
}

// CreateOfflineBookingRequest is the staff-entered variant. The guest email
// must be deliverable since the confirmation mail goes out immediately.
type CreateOfflineBookingRequest struct {
	AccommodationID string  `json:"accommodation_id" validate:"required"`
	PackageID       string  `json:"package_id"       validate:"omitempty"`
	GuestName       string  `json:"guest_name"       validate:"required,max=100"`
	GuestEmail      string  `json:"guest_email"      validate:"required,email,max=100"`
	GuestPhone      string  `json:"guest_phone"      validate:"required,max=20"`
	CheckIn         string  `json:"check_in"         validate:"required"`
	CheckOut        string  `json:"check_out"        validate:"required"`
	Adults          int     `json:"adults"           validate:"required,min=1"`
	Children        int     `json:"children"         validate:"omitempty,min=0"`
	Rooms           int     `json:"rooms"            validate:"required,min=1"`
	VegCount        int     `json:"veg_count"        validate:"omitempty,min=0"`
	NonVegCount     int     `json:"nonveg_count"     validate:"omitempty,min=0"`
	JainCount       int     `json:"jain_count"       validate:"omitempty,min=0"`
	TotalAmount     float64 `json:"total_amount"     validate:"required,gt=0"`
	AdvanceAmount   float64 `json:"advance_amount"   validate:"omitempty,min=0"`
	Discount        float64 `json:"discount"         validate:"omitempty,min=0"`
	CouponCode      string  `json:"coupon_code"      validate:"omitempty,max=50"`
}

func (c *CreateOfflineBookingRequest) asCreateRequest() CreateBookingRequest {
	return CreateBookingRequest(*c)
}

func (c *CreateOfflineBookingRequest) ToModel(user string) (model.Booking, error) {
	req := c.asCreateRequest()

	return req.ToModel(user, constant.PaymentStatusSuccess)
}

func (c *CreateOfflineBookingRequest) MealCountsConsistent() bool {
	req := c.asCreateRequest()

	return req.MealCountsConsistent()
}

type UpdateBookingStatusRequest struct {
	Status string `db:"payment_status" json:"status" validate:"required,oneof=pending success failed expired"`
}

type CreateBookingResponse struct {
	ID    string `json:"id"`
	TxnID string `json:"txn_id"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	AccommodationID string  `json:"accommodation_id"`
	PackageID       string  `json:"package_id,omitempty"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email"`
	GuestPhone      string  `json:"guest_phone"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	Rooms           int     `json:"rooms"`
	VegCount        int     `json:"veg_count"`
	NonVegCount     int     `json:"nonveg_count"`
	JainCount       int     `json:"jain_count"`
	TotalAmount     float64 `json:"total_amount"`
	AdvanceAmount   float64 `json:"advance_amount"`
	Discount        float64 `json:"discount"`
	CouponCode      string  `json:"coupon_code,omitempty"`
	PaymentStatus   string  `json:"payment_status"`
	TxnID           string  `json:"txn_id"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.AccommodationID = model.AccommodationID
	r.PackageID = model.PackageID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Adults = model.Adults
	r.Children = model.Children
	r.Rooms = model.Rooms
	r.VegCount = model.VegCount
	r.NonVegCount = model.NonVegCount
	r.JainCount = model.JainCount
	r.TotalAmount = model.TotalAmount
	r.AdvanceAmount = model.AdvanceAmount
	r.Discount = model.Discount
	r.CouponCode = model.CouponCode
	r.PaymentStatus = model.PaymentStatus
	r.TxnID = model.TxnID
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookingDetailResponse struct {
	BookingResponse
	RemainingAmount      float64 `json:"remaining_amount"`
	AccommodationName    string  `json:"accommodation_name"`
	AccommodationType    string  `json:"accommodation_type"`
	AccommodationCity    string  `json:"accommodation_city"`
	AccommodationAddress string  `json:"accommodation_address"`
	OwnerName            string  `json:"owner_name"`
	OwnerEmail           string  `json:"owner_email"`
	OwnerPhone           string  `json:"owner_phone"`
}

func (r *BookingDetailResponse) FromModel(detail model.BookingDetail) {
	r.BookingResponse.FromModel(detail.Booking)
	r.RemainingAmount = detail.RemainingAmount()
	r.AccommodationName = detail.AccommodationName
	r.AccommodationType = detail.AccommodationType
	r.AccommodationCity = detail.AccommodationCity
	r.AccommodationAddress = detail.AccommodationAddress
	r.OwnerName = detail.OwnerName
	r.OwnerEmail = detail.OwnerEmail
	r.OwnerPhone = detail.OwnerPhone
}

type OccupancyResponse struct {
	AccommodationID string `json:"accommodation_id"`
	Date            string `json:"date"`
	RoomsOccupied   int    `json:"rooms_occupied"`
}

type InitiatePaymentRequest struct {
	BookingID   string  `json:"booking_id"  validate:"required"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	ProductInfo string  `json:"productinfo" validate:"required,max=100"`
	FirstName   string  `json:"firstname"   validate:"required,max=100"`
	Email       string  `json:"email"       validate:"required,email,max=100"`
	Phone       string  `json:"phone"       validate:"required,max=20"`
}

// PaymentCallbackRequest carries the form fields the gateway posts back.
type PaymentCallbackRequest struct {
	Status      string
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Hash        string
}
