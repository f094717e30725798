package service

import (
	"atithi/infras/payu"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/model/dto"
	"atithi/shared"
	"atithi/shared/constant"
	"atithi/shared/failure"
	"atithi/shared/timezone"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	phoneDigits = 10

	callbackSuccessPath = "/v1/bookings/success/verify/"
	callbackFailurePath = "/v1/bookings/failed/verify/"

	redirectSuccessPath = "/payment/success/"
	redirectFailurePath = "/payment/failure/"
)

// InitiatePayment signs a gateway payload for a pending booking. A fresh
// transaction token is persisted before the payload is handed out so the
// callback can be matched unambiguously.
func (s *serviceImpl) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (res payu.PaymentRequest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InitiatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	phone := shared.StripNonDigits(req.Phone)
	if len(phone) != phoneDigits {
		return res, failure.BadRequestFromString("phone must contain exactly 10 digits") // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(req.BookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for payment")

		return res, fmt.Errorf("failed to get booking for payment: %w", err)
	}

	if booking.ID == constant.Empty || booking.PaymentStatus != constant.PaymentStatusPending {
		return res, failure.NotFound("no pending booking found for payment") // nolint:wrapcheck
	}

	txnID := model.GenerateTxnID()
	user := s.actor(ctx)

	updatedFields := map[string]any{
		model.FieldTxnID:         txnID,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to persist payment transaction token")

		return res, fmt.Errorf("failed to persist payment transaction token: %w", err)
	}

	apiBase := strings.TrimRight(s.cfg.External.Admin.BaseURL, "/")

	res = s.gateway.BuildPaymentRequest(payu.PaymentParams{
		TxnID:       txnID,
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Phone:       phone,
		SuccessURL:  apiBase + callbackSuccessPath + txnID,
		FailureURL:  apiBase + callbackFailurePath + txnID,
	})

	return res, nil
}

// ReconcileSuccess settles a gateway success callback. It always returns a
// redirect target; any verification or persistence problem lands the guest
// on the failure page with the booking left untouched.
func (s *serviceImpl) ReconcileSuccess(ctx context.Context, txnID string, req dto.PaymentCallbackRequest) string {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileSuccess")
	defer scope.End()

	verified := s.gateway.VerifyCallback(payu.Callback{
		Status:      req.Status,
		TxnID:       req.TxnID,
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Hash:        req.Hash,
	})
	if !verified {
		log.Warn().Str("txn_id", txnID).Msg("payment callback digest mismatch, discarding")

		return s.redirectFailureURL(txnID)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(txnID, model.FieldTxnID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("txn_id", txnID).Msg("failed to load booking for reconciliation")

		return s.redirectFailureURL(txnID)
	}

	if booking.ID == constant.Empty {
		log.Warn().Str("txn_id", txnID).Msg("payment callback for unknown transaction")

		return s.redirectFailureURL(txnID)
	}

	// A replayed callback for an already settled booking is fine.
	if booking.PaymentStatus == constant.PaymentStatusSuccess {
		return s.redirectSuccessURL(txnID)
	}

	if booking.PaymentStatus != constant.PaymentStatusPending {
		log.Warn().
			Str("txn_id", txnID).
			Str("payment_status", booking.PaymentStatus).
			Msg("payment callback for booking no longer pending")

		return s.redirectFailureURL(txnID)
	}

	updatedFields := map[string]any{
		model.FieldPaymentStatus: constant.PaymentStatusSuccess,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("txn_id", txnID).Msg("failed to mark booking paid")

		return s.redirectFailureURL(txnID)
	}

	s.sendConfirmation(ctx, txnID)

	return s.redirectSuccessURL(txnID)
}

// ReconcileFailure maps a gateway failure callback to the failure page. The
// booking stays pending; the expiry sweeper reclaims it later.
func (s *serviceImpl) ReconcileFailure(ctx context.Context, txnID string) string {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileFailure")
	defer scope.End()

	log.Info().Str("txn_id", txnID).Msg("payment failed at gateway")

	return s.redirectFailureURL(txnID)
}

func (s *serviceImpl) redirectSuccessURL(txnID string) string {
	return strings.TrimRight(s.cfg.External.Frontend.BaseURL, "/") + redirectSuccessPath + txnID
}

func (s *serviceImpl) redirectFailureURL(txnID string) string {
	return strings.TrimRight(s.cfg.External.Frontend.BaseURL, "/") + redirectFailurePath + txnID
}
