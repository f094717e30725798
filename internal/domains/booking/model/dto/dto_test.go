package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/model/dto"
	"atithi/shared/constant"
)

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		AccommodationID: "acc-1",
		GuestName:       "Asha Patel",
		GuestEmail:      "asha@example.com",
		GuestPhone:      "9876543210",
		CheckIn:         "2026-09-01",
		CheckOut:        "2026-09-03",
		Adults:          2,
		Children:        1,
		Rooms:           1,
		TotalAmount:     8000,
		AdvanceAmount:   2000,
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	t.Run("valid request produces pending booking with txn", func(t *testing.T) {
		req := validRequest()

		booking, err := req.ToModel("staff-1", constant.PaymentStatusPending)

		assert.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.True(t, strings.HasPrefix(booking.TxnID, "TXN"))
		assert.Equal(t, constant.PaymentStatusPending, booking.PaymentStatus)
		assert.Equal(t, "staff-1", booking.CreatedBy)
		assert.Equal(t, "2026-09-01", booking.CheckIn.Format(constant.DateOnlyFormat))
		assert.Equal(t, "2026-09-03", booking.CheckOut.Format(constant.DateOnlyFormat))
	})

	t.Run("check_out must be after check_in", func(t *testing.T) {
		req := validRequest()
		req.CheckOut = req.CheckIn

		_, err := req.ToModel("staff-1", constant.PaymentStatusPending)

		assert.Error(t, err)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		tests := []struct {
			name     string
			checkIn  string
			checkOut string
		}{
			{name: "bad check_in", checkIn: "01-09-2026", checkOut: "2026-09-03"},
			{name: "bad check_out", checkIn: "2026-09-01", checkOut: "Sep 3, 2026"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				req.CheckIn = tt.checkIn
				req.CheckOut = tt.checkOut

				_, err := req.ToModel("staff-1", constant.PaymentStatusPending)

				assert.Error(t, err)
			})
		}
	})

	t.Run("each booking gets a distinct txn", func(t *testing.T) {
		req := validRequest()

		first, err := req.ToModel("staff-1", constant.PaymentStatusPending)
		assert.NoError(t, err)

		second, err := req.ToModel("staff-1", constant.PaymentStatusPending)
		assert.NoError(t, err)

		assert.NotEqual(t, first.TxnID, second.TxnID)
	})
}

func TestCreateBookingRequest_MealCountsConsistent(t *testing.T) {
	tests := []struct {
		name   string
		adults int
		kids   int
		veg    int
		nonVeg int
		jain   int
		want   bool
	}{
		{name: "no meal preference at all", adults: 2, kids: 1, want: true},
		{name: "counts add up", adults: 2, kids: 1, veg: 2, nonVeg: 1, want: true},
		{name: "counts add up with jain", adults: 3, kids: 0, veg: 1, nonVeg: 1, jain: 1, want: true},
		{name: "too few meals", adults: 2, kids: 1, veg: 1, nonVeg: 1, want: false},
		{name: "too many meals", adults: 1, kids: 0, veg: 1, nonVeg: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Adults = tt.adults
			req.Children = tt.kids
			req.VegCount = tt.veg
			req.NonVegCount = tt.nonVeg
			req.JainCount = tt.jain

			assert.Equal(t, tt.want, req.MealCountsConsistent())
		})
	}
}

func TestCreateOfflineBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateOfflineBookingRequest{
		AccommodationID: "acc-1",
		GuestName:       "Asha Patel",
		GuestEmail:      "asha@example.com",
		GuestPhone:      "9876543210",
		CheckIn:         "2026-09-01",
		CheckOut:        "2026-09-03",
		Adults:          2,
		Rooms:           1,
		TotalAmount:     8000,
	}

	booking, err := req.ToModel("staff-1")

	assert.NoError(t, err)
	assert.Equal(t, constant.PaymentStatusSuccess, booking.PaymentStatus)
}

func TestBooking_RemainingAmount(t *testing.T) {
	booking := model.Booking{TotalAmount: 10000, AdvanceAmount: 2500}

	assert.InDelta(t, 7500, booking.RemainingAmount(), 0.001)
}

func TestBookingDetailResponse_FromModel(t *testing.T) {
	detail := model.BookingDetail{
		Booking: model.Booking{
			ID:            "b-1",
			TxnID:         "TXNabc",
			TotalAmount:   10000,
			AdvanceAmount: 4000,
			PaymentStatus: constant.PaymentStatusSuccess,
		},
		AccommodationName: "Sunset Villa",
		AccommodationType: "villa",
		OwnerEmail:        "owner@example.com",
	}

	res := dto.BookingDetailResponse{}
	res.FromModel(detail)

	assert.Equal(t, "b-1", res.ID)
	assert.Equal(t, "Sunset Villa", res.AccommodationName)
	assert.Equal(t, "villa", res.AccommodationType)
	assert.Equal(t, "owner@example.com", res.OwnerEmail)
	assert.InDelta(t, 6000, res.RemainingAmount, 0.001)
}
