package notification

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/mailer"
	"atithi/infras/otel"
	"atithi/internal/domains/booking/model"
	"atithi/shared/constant"
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateResort = "resort_confirmation.html"
	templateVilla  = "villa_confirmation.html"

	otelScopeName = "notification"
)

// Dispatcher sends booking confirmation mails. Sending is best-effort: the
// booking is already committed by the time a mail goes out, so failures are
// logged and never propagated.
type Dispatcher interface {
	SendBookingConfirmation(ctx context.Context, detail model.BookingDetail) error
}

type dispatcherImpl struct {
	config    *config.Config
	mailer    mailer.Mailer
	otel      otel.Otel
	templates *template.Template
}

func New(cfg *config.Config, m mailer.Mailer, otl otel.Otel) (Dispatcher, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification templates: %w", err)
	}

	return &dispatcherImpl{
		config:    cfg,
		mailer:    m,
		otel:      otl,
		templates: templates,
	}, nil
}

type confirmationData struct {
	GuestName         string
	AccommodationName string
	AccommodationCity string
	TxnID             string
	CheckIn           string
	CheckOut          string
	Rooms             int
	Adults            int
	Children          int
	TotalAmount       float64
	AdvanceAmount     float64
	RemainingAmount   float64
}

func (d *dispatcherImpl) SendBookingConfirmation(ctx context.Context, detail model.BookingDetail) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".SendBookingConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, addrErr := mail.ParseAddress(detail.GuestEmail); addrErr != nil {
		log.Warn().
			Str("txn_id", detail.TxnID).
			Str("guest_email", detail.GuestEmail).
			Msg("skipping confirmation mail, guest email missing or invalid")

		return nil
	}

	templateName := templateResort
	if detail.AccommodationType == constant.AccommodationTypeVilla {
		templateName = templateVilla
	}

	data := confirmationData{
		GuestName:         detail.GuestName,
		AccommodationName: detail.AccommodationName,
		AccommodationCity: detail.AccommodationCity,
		TxnID:             detail.TxnID,
		CheckIn:           detail.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:          detail.CheckOut.Format(constant.DateOnlyFormat),
		Rooms:             detail.Rooms,
		Adults:            detail.Adults,
		Children:          detail.Children,
		TotalAmount:       detail.TotalAmount,
		AdvanceAmount:     detail.AdvanceAmount,
		RemainingAmount:   detail.RemainingAmount(),
	}

	var body bytes.Buffer
	if err = d.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to render confirmation template: %w", err)
	}

	msg := mailer.Message{
		To:      detail.GuestEmail,
		Subject: fmt.Sprintf("Booking confirmed at %s (%s)", detail.AccommodationName, detail.TxnID),
		HTML:    body.String(),
	}

	if _, addrErr := mail.ParseAddress(detail.OwnerEmail); addrErr == nil {
		msg.Cc = []string{detail.OwnerEmail}
	}

	if opsEmail := d.config.External.SMTP.OpsEmail; opsEmail != constant.Empty {
		msg.Bcc = []string{opsEmail}
	}

	if err = d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}

	return nil
}
