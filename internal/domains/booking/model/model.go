package model

import (
	"atithi/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"

	"atithi/shared/constant"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldAccommodationID = "accommodation_id"
	FieldPackageID       = "package_id"
	FieldGuestName       = "guest_name"
	FieldGuestEmail      = "guest_email"
	FieldGuestPhone      = "guest_phone"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldAdults          = "adults"
	FieldChildren        = "children"
	FieldRooms           = "rooms"
	FieldVegCount        = "veg_count"
	FieldNonVegCount     = "nonveg_count"
	FieldJainCount       = "jain_count"
	FieldTotalAmount     = "total_amount"
	FieldAdvanceAmount   = "advance_amount"
	FieldDiscount        = "discount"
	FieldCouponCode      = "coupon_code"
	FieldPaymentStatus   = "payment_status"
	FieldTxnID           = "txn_id"
	FieldCreatedAt       = "created_at"
	FieldCreatedBy       = "created_by"
)

type Booking struct {
	ID              string    `db:"id"`
	AccommodationID string    `db:"accommodation_id"`
	PackageID       string    `db:"package_id"`
	GuestName       string    `db:"guest_name"`
	GuestEmail      string    `db:"guest_email"`
	GuestPhone      string    `db:"guest_phone"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Adults          int       `db:"adults"`
	Children        int       `db:"children"`
	Rooms           int       `db:"rooms"`
	VegCount        int       `db:"veg_count"`
	NonVegCount     int       `db:"nonveg_count"`
	JainCount       int       `db:"jain_count"`
	TotalAmount     float64   `db:"total_amount"`
	AdvanceAmount   float64   `db:"advance_amount"`
	Discount        float64   `db:"discount"`
	CouponCode      string    `db:"coupon_code"`
	PaymentStatus   string    `db:"payment_status"`
	TxnID           string    `db:"txn_id"`
	model.Metadata
}

// RemainingAmount is what the guest still owes after the advance.
func (b *Booking) RemainingAmount() float64 {
	return b.TotalAmount - b.AdvanceAmount
}

// GenerateTxnID mints a payment transaction token. The uuid is flattened so
// the token survives gateways that mangle dashes in reference fields.
func GenerateTxnID() string {
	return constant.PaymentTxnPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
