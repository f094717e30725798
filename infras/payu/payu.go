package payu

//go:generate go run go.uber.org/mock/mockgen -source=./payu.go -destination=./mocks/payu_mock.go -package=mocks

import (
	"atithi/config"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// fieldLimit is the gateway's maximum length for free-text fields;
	// longer values are truncated before hashing and submission.
	fieldLimit = 100

	// extensionFieldCount is the number of unused udf slots carried in the
	// hash sequence.
	extensionFieldCount = 10

	paymentPath = "/_payment"
)

// PaymentParams is the merchant-side input for one payment attempt.
type PaymentParams struct {
	TxnID       string
	Amount      float64
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	SuccessURL  string
	FailureURL  string
}

// PaymentRequest is the signed form payload the frontend posts to the
// gateway's hosted payment page.
type PaymentRequest struct {
	ActionURL   string `json:"action_url"`
	Key         string `json:"key"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SuccessURL  string `json:"surl"`
	FailureURL  string `json:"furl"`
	Hash        string `json:"hash"`
}

// Callback is the form the gateway posts back to the merchant.
type Callback struct {
	Status      string
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Hash        string
}

type Gateway interface {
	BuildPaymentRequest(params PaymentParams) PaymentRequest
	VerifyCallback(cb Callback) bool
}

type gatewayImpl struct {
	merchantKey  string
	merchantSalt string
	baseURL      string
}

func New(cfg *config.Config) Gateway {
	return &gatewayImpl{
		merchantKey:  cfg.External.PayU.MerchantKey,
		merchantSalt: cfg.External.PayU.MerchantSalt,
		baseURL:      strings.TrimRight(cfg.External.PayU.BaseURL, "/"),
	}
}

// BuildPaymentRequest signs the ordered request fields with the merchant
// salt. The digest sequence is key|txnid|amount|productinfo|firstname|email
// followed by the unused extension fields and the salt.
func (g *gatewayImpl) BuildPaymentRequest(params PaymentParams) PaymentRequest {
	amount := formatAmount(params.Amount)
	productInfo := truncate(params.ProductInfo)
	firstName := truncate(params.FirstName)
	email := truncate(params.Email)

	fields := []string{
		g.merchantKey,
		params.TxnID,
		amount,
		productInfo,
		firstName,
		email,
	}
	fields = append(fields, emptyExtensionFields()...)
	fields = append(fields, g.merchantSalt)

	return PaymentRequest{
		ActionURL:   g.baseURL + paymentPath,
		Key:         g.merchantKey,
		TxnID:       params.TxnID,
		Amount:      amount,
		ProductInfo: productInfo,
		FirstName:   firstName,
		Email:       email,
		Phone:       params.Phone,
		SuccessURL:  params.SuccessURL,
		FailureURL:  params.FailureURL,
		Hash:        digest(fields),
	}
}

// VerifyCallback recomputes the response digest, which runs the request
// sequence in reverse and keyed the opposite direction:
// salt|status|<extension fields>|email|firstname|productinfo|amount|txnid|key.
func (g *gatewayImpl) VerifyCallback(cb Callback) bool {
	fields := []string{
		g.merchantSalt,
		cb.Status,
	}
	fields = append(fields, emptyExtensionFields()...)
	fields = append(fields,
		truncate(cb.Email),
		truncate(cb.FirstName),
		truncate(cb.ProductInfo),
		cb.Amount,
		cb.TxnID,
		g.merchantKey,
	)

	expected := digest(fields)

	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(cb.Hash))) == 1
}

func digest(fields []string) string {
	sum := sha512.Sum512([]byte(strings.Join(fields, "|")))

	return hex.EncodeToString(sum[:])
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func truncate(value string) string {
	if len(value) > fieldLimit {
		return value[:fieldLimit]
	}

	return value
}

func emptyExtensionFields() []string {
	return make([]string, extensionFieldCount)
}
