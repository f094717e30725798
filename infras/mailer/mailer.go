package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/otel"
	"atithi/shared/constant"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

const (
	otelScopeName = "mailer"
)

// Message is one outbound mail. Cc and Bcc are optional.
type Message struct {
	To      string
	Cc      []string
	Bcc     []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	config *config.Config
	dialer *gomail.Dialer
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	dialer := gomail.NewDialer(
		cfg.External.SMTP.Host,
		cfg.External.SMTP.Port,
		cfg.External.SMTP.Username,
		cfg.External.SMTP.Password,
	)

	return &smtpMailer{
		config: cfg,
		dialer: dialer,
		otel:   otl,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if msg.To == constant.Empty {
		return fmt.Errorf("empty recipient address")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.config.External.SMTP.Sender)
	message.SetHeader("To", msg.To)

	if len(msg.Cc) > 0 {
		message.SetHeader("Cc", msg.Cc...)
	}

	if len(msg.Bcc) > 0 {
		message.SetHeader("Bcc", msg.Bcc...)
	}

	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", msg.HTML)

	if err = m.dialer.DialAndSend(message); err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")

	return nil
}
