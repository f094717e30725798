package sweeper

//go:generate go run go.uber.org/mock/mockgen -source=./sweeper.go -destination=./mocks/sweeper_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/otel"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/repository"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/timezone"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper expires stale pending bookings on a fixed interval. It is owned
// by the process lifecycle: Start once, Stop on shutdown.
type Sweeper interface {
	Start(ctx context.Context)
	Stop()
	SweepOnce(ctx context.Context) error
}

type sweeperImpl struct {
	repo   repository.Booking
	cfg    *config.Config
	otel   otel.Otel
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(repo repository.Booking, cfg *config.Config, otl otel.Otel) Sweeper {
	return &sweeperImpl{
		repo: repo,
		cfg:  cfg,
		otel: otl,
	}
}

func (s *sweeperImpl) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	interval := time.Duration(s.cfg.Booking.SweepIntervalMinutes) * time.Minute

	log.Info().Dur("interval", interval).Msg("Starting booking expiry sweeper.")

	go s.run(ctx, interval)
}

func (s *sweeperImpl) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done

	log.Info().Msg("Booking expiry sweeper stopped.")
}

func (s *sweeperImpl) run(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				log.Error().Err(err).Msg("booking expiry sweep failed")
			}
		}
	}
}

// SweepOnce runs one bulk expiry pass. Overlapping runs are skipped rather
// than queued; the sweep is idempotent so the next tick picks up anything
// a skipped run would have caught.
func (s *sweeperImpl) SweepOnce(ctx context.Context) (err error) {
	if !s.mu.TryLock() {
		log.Warn().Msg("previous expiry sweep still running, skipping")

		return nil
	}
	defer s.mu.Unlock()

	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweeperScopeName, constant.OtelSweeperScopeName+".SweepOnce")
	defer scope.End()
	defer scope.TraceIfError(err)

	ttl := time.Duration(s.cfg.Booking.PendingTTLMinutes) * time.Minute
	cutoff := timezone.Now().Add(-ttl)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPaymentStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.PaymentStatusPending,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCreatedAt,
				Operator: gDto.FilterOperatorLess,
				Value:    cutoff,
				Table:    model.TableName,
			},
		},
	}

	updatedFields := map[string]any{
		model.FieldPaymentStatus: constant.PaymentStatusExpired,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		return fmt.Errorf("failed to expire stale pending bookings: %w", err)
	}

	return nil
}
