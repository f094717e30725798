package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atithi/config"
	otelMocks "atithi/infras/otel/mocks"
	bookingMocks "atithi/internal/domains/booking/mocks"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/sweeper"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/timezone"
)

func newSweeper(t *testing.T) (sweeper.Sweeper, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)

	cfg := &config.Config{}
	cfg.Booking.SweepIntervalMinutes = 30
	cfg.Booking.PendingTTLMinutes = 60

	return sweeper.New(mockRepo, cfg, otelMocks.NewOtel()), mockRepo
}

func TestSweeper_SweepOnce(t *testing.T) {
	t.Run("expires stale pending bookings in bulk", func(t *testing.T) {
		sw, mockRepo := newSweeper(t)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, constant.PaymentStatusExpired, fields[model.FieldPaymentStatus])
				assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

				assert.Len(t, filter.Filters, 2)

				statusFilter, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, constant.PaymentStatusPending, statusFilter.Value)

				ageFilter, ok := filter.Filters[1].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, gDto.FilterOperatorLess, ageFilter.Operator)

				cutoff, ok := ageFilter.Value.(time.Time)
				assert.True(t, ok)
				assert.WithinDuration(t, timezone.Now().Add(-time.Hour), cutoff, 5*time.Second)

				return nil
			})

		assert.NoError(t, sw.SweepOnce(context.Background()))
	})

	t.Run("repository error is reported", func(t *testing.T) {
		sw, mockRepo := newSweeper(t)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database down"))

		assert.Error(t, sw.SweepOnce(context.Background()))
	})

	t.Run("overlapping sweep is skipped, not queued", func(t *testing.T) {
		sw, mockRepo := newSweeper(t)

		firstEntered := make(chan struct{})
		release := make(chan struct{})

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ gDto.FilterGroup) error {
				close(firstEntered)
				<-release

				return nil
			})

		var wg sync.WaitGroup
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, sw.SweepOnce(context.Background()))
		}()

		<-firstEntered

		// Second pass runs while the first still holds the lock and must
		// return immediately without another repository call.
		assert.NoError(t, sw.SweepOnce(context.Background()))

		close(release)
		wg.Wait()
	})

	t.Run("sweep is idempotent across consecutive runs", func(t *testing.T) {
		sw, mockRepo := newSweeper(t)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		assert.NoError(t, sw.SweepOnce(context.Background()))
		assert.NoError(t, sw.SweepOnce(context.Background()))
	})
}

func TestSweeper_StartStop(t *testing.T) {
	sw, _ := newSweeper(t)

	sw.Start(context.Background())
	sw.Stop()
}

func TestSweeper_StopWithoutStart(t *testing.T) {
	sw, _ := newSweeper(t)

	assert.NotPanics(t, sw.Stop)
}
