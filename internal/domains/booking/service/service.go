package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/otel"
	"atithi/infras/payu"
	accommodationModel "atithi/internal/domains/accommodation/model"
	accommodationRepo "atithi/internal/domains/accommodation/repository"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/model/dto"
	"atithi/internal/domains/booking/repository"
	"atithi/internal/notification"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	CreateOffline(ctx context.Context, req dto.CreateOfflineBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetDetailByTxn(ctx context.Context, txnID string) (dto.BookingDetailResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	Occupancy(ctx context.Context, accommodationID, date string) (dto.OccupancyResponse, error)

	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (payu.PaymentRequest, error)
	ReconcileSuccess(ctx context.Context, txnID string, req dto.PaymentCallbackRequest) string
	ReconcileFailure(ctx context.Context, txnID string) string
}

type serviceImpl struct {
	repo              repository.Booking
	accommodationRepo accommodationRepo.Accommodation
	dispatcher        notification.Dispatcher
	gateway           payu.Gateway
	cfg               *config.Config
	otel              otel.Otel
}

func New(
	repo repository.Booking,
	accommodationRepo accommodationRepo.Accommodation,
	dispatcher notification.Dispatcher,
	gateway payu.Gateway,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:              repo,
		accommodationRepo: accommodationRepo,
		dispatcher:        dispatcher,
		gateway:           gateway,
		cfg:               cfg,
		otel:              otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := s.actor(ctx)

	booking, err := req.ToModel(user, constant.PaymentStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if err = s.insertBooking(ctx, booking); err != nil {
		return res, err
	}

	return dto.CreateBookingResponse{ID: booking.ID, TxnID: booking.TxnID}, nil
}

func (s *serviceImpl) CreateOffline(ctx context.Context, req dto.CreateOfflineBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOffline")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := s.actor(ctx)

	if !req.MealCountsConsistent() {
		return res, failure.BadRequestFromString("meal counts must add up to the number of guests") // nolint:wrapcheck
	}

	accommodationExists, err := s.accommodationRepo.Exist(ctx, shared.FilterByID(req.AccommodationID, accommodationModel.FieldID, accommodationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if accommodation exists")

		return res, fmt.Errorf("failed to check if accommodation exists: %w", err)
	}

	if !accommodationExists {
		return res, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse offline booking request")

		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if err = s.insertBooking(ctx, booking); err != nil {
		return res, err
	}

	s.sendConfirmation(ctx, booking.TxnID)

	return dto.CreateBookingResponse{ID: booking.ID, TxnID: booking.TxnID}, nil
}

// insertBooking writes the booking row and maps a transaction token
// collision to a conflict.
func (s *serviceImpl) insertBooking(ctx context.Context, booking model.Booking) error {
	if err := s.repo.Insert(ctx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("transaction token already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// sendConfirmation dispatches the confirmation mail without holding up the
// response. The booking is committed; a mail failure only gets logged.
func (s *serviceImpl) sendConfirmation(ctx context.Context, txnID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		detail, err := s.repo.GetDetail(c, shared.FilterByID(txnID, model.FieldTxnID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("txn_id", txnID).Msg("failed to load booking detail for confirmation mail")

			return
		}

		if detail.ID == constant.Empty {
			log.Error().Str("txn_id", txnID).Msg("booking vanished before confirmation mail")

			return
		}

		if err := s.dispatcher.SendBookingConfirmation(c, detail); err != nil {
			log.Error().Err(err).Str("txn_id", txnID).Msg("failed to send confirmation mail")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetDetailByTxn(ctx context.Context, txnID string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetailByTxn")
	defer scope.End()
	defer scope.TraceIfError(err)

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(txnID, model.FieldTxnID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking detail")

		return res, fmt.Errorf("failed to get booking detail: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := s.actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

// Occupancy sums the rooms of paid bookings starting on the given date. The
// read is approximate: no lock is taken, so a concurrent payment may change
// the answer a moment later.
func (s *serviceImpl) Occupancy(ctx context.Context, accommodationID, date string) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.Parse(constant.DateOnlyFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAccommodationID,
				Operator: gDto.FilterOperatorEq,
				Value:    accommodationID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldPaymentStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.PaymentStatusSuccess,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				Operator: gDto.FilterOperatorGreater,
				Value:    date,
				Table:    model.TableName,
			},
		},
	}

	rooms, err := s.repo.Sum(ctx, model.FieldRooms, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum room occupancy")

		return res, fmt.Errorf("failed to sum room occupancy: %w", err)
	}

	return dto.OccupancyResponse{
		AccommodationID: accommodationID,
		Date:            date,
		RoomsOccupied:   rooms,
	}, nil
}

// actor resolves who to record in audit columns. Unauthenticated guest
// traffic books under a fixed guest identity.
func (s *serviceImpl) actor(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return constant.ContextGuest
	}

	return user
}
