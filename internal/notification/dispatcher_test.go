package notification_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atithi/config"
	"atithi/infras/mailer"
	mailerMocks "atithi/infras/mailer/mocks"
	otelMocks "atithi/infras/otel/mocks"
	"atithi/internal/domains/booking/model"
	"atithi/internal/notification"
)

func newDispatcher(t *testing.T) (notification.Dispatcher, *mailerMocks.MockMailer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockMailer := mailerMocks.NewMockMailer(ctrl)

	cfg := &config.Config{}
	cfg.External.SMTP.OpsEmail = "ops@example.com"

	dispatcher, err := notification.New(cfg, mockMailer, otelMocks.NewOtel())
	assert.NoError(t, err)

	return dispatcher, mockMailer
}

func sampleDetail() model.BookingDetail {
	return model.BookingDetail{
		Booking: model.Booking{
			ID:            "b-1",
			GuestName:     "Asha Patel",
			GuestEmail:    "asha@example.com",
			GuestPhone:    "9876543210",
			CheckIn:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:      time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
			Adults:        2,
			Children:      1,
			Rooms:         1,
			TotalAmount:   8000,
			AdvanceAmount: 2000,
			TxnID:         "TXNabc",
		},
		AccommodationName: "Sunset Resort",
		AccommodationType: "resort",
		AccommodationCity: "Lonavala",
		OwnerEmail:        "owner@example.com",
	}
}

func TestDispatcher_SendBookingConfirmation(t *testing.T) {
	t.Run("sends rendered mail to guest with owner cc and ops bcc", func(t *testing.T) {
		dispatcher, mockMailer := newDispatcher(t)

		var sent mailer.Message
		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg mailer.Message) error {
				sent = msg

				return nil
			})

		err := dispatcher.SendBookingConfirmation(context.Background(), sampleDetail())

		assert.NoError(t, err)
		assert.Equal(t, "asha@example.com", sent.To)
		assert.Equal(t, []string{"owner@example.com"}, sent.Cc)
		assert.Equal(t, []string{"ops@example.com"}, sent.Bcc)
		assert.Contains(t, sent.Subject, "Sunset Resort")
		assert.Contains(t, sent.Subject, "TXNabc")
		assert.Contains(t, sent.HTML, "Asha Patel")
		assert.Contains(t, sent.HTML, "TXNabc")
		assert.Contains(t, sent.HTML, "2026-09-01")
	})

	t.Run("invalid guest email short-circuits without sending", func(t *testing.T) {
		dispatcher, _ := newDispatcher(t)

		detail := sampleDetail()
		detail.GuestEmail = "not-an-email"

		assert.NoError(t, dispatcher.SendBookingConfirmation(context.Background(), detail))
	})

	t.Run("empty guest email short-circuits without sending", func(t *testing.T) {
		dispatcher, _ := newDispatcher(t)

		detail := sampleDetail()
		detail.GuestEmail = ""

		assert.NoError(t, dispatcher.SendBookingConfirmation(context.Background(), detail))
	})

	t.Run("invalid owner email drops the cc only", func(t *testing.T) {
		dispatcher, mockMailer := newDispatcher(t)

		detail := sampleDetail()
		detail.OwnerEmail = "broken"

		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg mailer.Message) error {
				assert.Empty(t, msg.Cc)

				return nil
			})

		assert.NoError(t, dispatcher.SendBookingConfirmation(context.Background(), detail))
	})

	t.Run("villa bookings use the villa template", func(t *testing.T) {
		dispatcher, mockMailer := newDispatcher(t)

		detail := sampleDetail()
		detail.AccommodationType = "villa"
		detail.AccommodationName = "Hilltop Villa"

		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg mailer.Message) error {
				assert.True(t, strings.Contains(msg.HTML, "Hilltop Villa"))

				return nil
			})

		assert.NoError(t, dispatcher.SendBookingConfirmation(context.Background(), detail))
	})

	t.Run("mailer failure propagates to the caller", func(t *testing.T) {
		dispatcher, mockMailer := newDispatcher(t)

		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp down"))

		assert.Error(t, dispatcher.SendBookingConfirmation(context.Background(), sampleDetail()))
	})
}
