package payu_test

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"atithi/config"
	"atithi/infras/payu"
)

func newGateway() payu.Gateway {
	cfg := &config.Config{}
	cfg.External.PayU.MerchantKey = "gtKFFx"
	cfg.External.PayU.MerchantSalt = "eCwWELxi"
	cfg.External.PayU.BaseURL = "https://test.payu.in/"

	return payu.New(cfg)
}

func requestHash(key, txnid, amount, productinfo, firstname, email, salt string) string {
	fields := []string{key, txnid, amount, productinfo, firstname, email}
	fields = append(fields, make([]string, 10)...)
	fields = append(fields, salt)

	sum := sha512.Sum512([]byte(strings.Join(fields, "|")))

	return hex.EncodeToString(sum[:])
}

func responseHash(salt, status, email, firstname, productinfo, amount, txnid, key string) string {
	fields := []string{salt, status}
	fields = append(fields, make([]string, 10)...)
	fields = append(fields, email, firstname, productinfo, amount, txnid, key)

	sum := sha512.Sum512([]byte(strings.Join(fields, "|")))

	return hex.EncodeToString(sum[:])
}

func TestGateway_BuildPaymentRequest(t *testing.T) {
	gateway := newGateway()

	params := payu.PaymentParams{
		TxnID:       "TXN0123456789abcdef",
		Amount:      4999.5,
		ProductInfo: "Deluxe Villa Booking",
		FirstName:   "Asha",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		SuccessURL:  "https://admin.example.com/v1/bookings/success/verify/TXN0123456789abcdef",
		FailureURL:  "https://admin.example.com/v1/bookings/failed/verify/TXN0123456789abcdef",
	}

	req := gateway.BuildPaymentRequest(params)

	assert.Equal(t, "https://test.payu.in/_payment", req.ActionURL)
	assert.Equal(t, "gtKFFx", req.Key)
	assert.Equal(t, "TXN0123456789abcdef", req.TxnID)
	assert.Equal(t, "4999.50", req.Amount)
	assert.Equal(t, "Deluxe Villa Booking", req.ProductInfo)
	assert.Equal(t, params.SuccessURL, req.SuccessURL)
	assert.Equal(t, params.FailureURL, req.FailureURL)

	expected := requestHash("gtKFFx", req.TxnID, req.Amount, req.ProductInfo, req.FirstName, req.Email, "eCwWELxi")
	assert.Equal(t, expected, req.Hash)
}

func TestGateway_BuildPaymentRequest_TruncatesLongFields(t *testing.T) {
	gateway := newGateway()

	longName := strings.Repeat("a", 150)

	req := gateway.BuildPaymentRequest(payu.PaymentParams{
		TxnID:       "TXNlong",
		Amount:      100,
		ProductInfo: "Booking",
		FirstName:   longName,
		Email:       "guest@example.com",
	})

	assert.Len(t, req.FirstName, 100)

	expected := requestHash("gtKFFx", "TXNlong", "100.00", "Booking", longName[:100], "guest@example.com", "eCwWELxi")
	assert.Equal(t, expected, req.Hash)
}

func TestGateway_BuildPaymentRequest_AmountAlwaysTwoDecimals(t *testing.T) {
	gateway := newGateway()

	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "integer amount", amount: 5000, want: "5000.00"},
		{name: "one decimal", amount: 99.9, want: "99.90"},
		{name: "two decimals", amount: 1234.56, want: "1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := gateway.BuildPaymentRequest(payu.PaymentParams{TxnID: "TXNa", Amount: tt.amount})

			assert.Equal(t, tt.want, req.Amount)
		})
	}
}

func TestGateway_VerifyCallback(t *testing.T) {
	gateway := newGateway()

	validHash := responseHash("eCwWELxi", "success", "asha@example.com", "Asha", "Deluxe Villa Booking", "4999.50", "TXNabc", "gtKFFx")

	tests := []struct {
		name string
		cb   payu.Callback
		want bool
	}{
		{
			name: "valid hash",
			cb: payu.Callback{
				Status:      "success",
				TxnID:       "TXNabc",
				Amount:      "4999.50",
				ProductInfo: "Deluxe Villa Booking",
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Hash:        validHash,
			},
			want: true,
		},
		{
			name: "uppercase hash is accepted",
			cb: payu.Callback{
				Status:      "success",
				TxnID:       "TXNabc",
				Amount:      "4999.50",
				ProductInfo: "Deluxe Villa Booking",
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Hash:        strings.ToUpper(validHash),
			},
			want: true,
		},
		{
			name: "tampered amount",
			cb: payu.Callback{
				Status:      "success",
				TxnID:       "TXNabc",
				Amount:      "1.00",
				ProductInfo: "Deluxe Villa Booking",
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Hash:        validHash,
			},
			want: false,
		},
		{
			name: "tampered status",
			cb: payu.Callback{
				Status:      "failure",
				TxnID:       "TXNabc",
				Amount:      "4999.50",
				ProductInfo: "Deluxe Villa Booking",
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Hash:        validHash,
			},
			want: false,
		},
		{
			name: "empty hash",
			cb: payu.Callback{
				Status: "success",
				TxnID:  "TXNabc",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.VerifyCallback(tt.cb))
		})
	}
}
