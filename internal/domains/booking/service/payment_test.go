package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atithi/infras/payu"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/model/dto"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
)

func TestBookingService_InitiatePayment(t *testing.T) {
	validRequest := func() dto.InitiatePaymentRequest {
		return dto.InitiatePaymentRequest{
			BookingID:   "b-1",
			Amount:      4999.5,
			ProductInfo: "Deluxe Villa Booking",
			FirstName:   "Asha",
			Email:       "asha@example.com",
			Phone:       "+91 98765-43210",
		}
	}

	t.Run("persists fresh txn and returns signed payload", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", PaymentStatus: constant.PaymentStatusPending, TxnID: "TXNold"}, nil)

		var persistedTxn string
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				persistedTxn, _ = fields[model.FieldTxnID].(string)

				return nil
			})

		m.gateway.EXPECT().
			BuildPaymentRequest(gomock.Any()).
			DoAndReturn(func(params payu.PaymentParams) payu.PaymentRequest {
				assert.Equal(t, "9876543210", params.Phone)
				assert.Equal(t, "https://admin.example.com/v1/bookings/success/verify/"+params.TxnID, params.SuccessURL)
				assert.Equal(t, "https://admin.example.com/v1/bookings/failed/verify/"+params.TxnID, params.FailureURL)

				return payu.PaymentRequest{TxnID: params.TxnID, Hash: "deadbeef"}
			})

		res, err := svc.InitiatePayment(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, res.Hash)
		assert.Equal(t, persistedTxn, res.TxnID)
		assert.NotEqual(t, "TXNold", res.TxnID)
	})

	t.Run("phone with wrong digit count is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		req := validRequest()
		req.Phone = "12345"

		_, err := svc.InitiatePayment(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.InitiatePayment(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("settled booking cannot be paid again", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", PaymentStatus: constant.PaymentStatusSuccess}, nil)

		_, err := svc.InitiatePayment(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_ReconcileSuccess(t *testing.T) {
	callback := func() dto.PaymentCallbackRequest {
		return dto.PaymentCallbackRequest{
			Status:      "success",
			TxnID:       "TXNabc",
			Amount:      "4999.50",
			ProductInfo: "Deluxe Villa Booking",
			FirstName:   "Asha",
			Email:       "asha@example.com",
			Hash:        "cafebabe",
		}
	}

	const (
		successURL = "https://www.example.com/payment/success/TXNabc"
		failureURL = "https://www.example.com/payment/failure/TXNabc"
	)

	t.Run("digest mismatch discards callback without touching the booking", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(false)

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		assert.Equal(t, failureURL, url)
	})

	t.Run("unknown txn redirects to failure", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(true)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		assert.Equal(t, failureURL, url)
	})

	t.Run("pending booking is settled and confirmation mailed", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(true)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", TxnID: "TXNabc", PaymentStatus: constant.PaymentStatusPending}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.PaymentStatusSuccess, fields[model.FieldPaymentStatus])
				assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

				return nil
			})

		m.repo.EXPECT().
			GetDetail(gomock.Any(), gomock.Any()).
			Return(model.BookingDetail{Booking: model.Booking{ID: "b-1", TxnID: "TXNabc"}}, nil).
			AnyTimes()

		m.dispatcher.EXPECT().
			SendBookingConfirmation(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		time.Sleep(20 * time.Millisecond)

		assert.Equal(t, successURL, url)
	})

	t.Run("replayed callback for settled booking stays success", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(true)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", TxnID: "TXNabc", PaymentStatus: constant.PaymentStatusSuccess}, nil)

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		assert.Equal(t, successURL, url)
	})

	t.Run("expired booking redirects to failure", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(true)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", TxnID: "TXNabc", PaymentStatus: constant.PaymentStatusExpired}, nil)

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		assert.Equal(t, failureURL, url)
	})

	t.Run("persistence failure redirects to failure", func(t *testing.T) {
		svc, m := newService(t)

		m.gateway.EXPECT().VerifyCallback(gomock.Any()).Return(true)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", TxnID: "TXNabc", PaymentStatus: constant.PaymentStatusPending}, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database down"))

		url := svc.ReconcileSuccess(context.Background(), "TXNabc", callback())

		assert.Equal(t, failureURL, url)
	})
}

func TestBookingService_ReconcileFailure(t *testing.T) {
	svc, _ := newService(t)

	url := svc.ReconcileFailure(context.Background(), "TXNabc")

	assert.Equal(t, "https://www.example.com/payment/failure/TXNabc", url)
}
