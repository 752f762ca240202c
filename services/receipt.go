package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"wirewatch/config"
	"wirewatch/models"
)

// ReceiptMailer sends the purchase confirmation email. Best effort: checkout
// never fails because an email did not go out.
type ReceiptMailer struct {
	apiKey string
	from   string
}

func NewReceiptMailer(cfg config.EmailConfig) *ReceiptMailer {
	return &ReceiptMailer{apiKey: cfg.SendGridAPIKey, from: cfg.FromAddress}
}

func (m *ReceiptMailer) SendReceipt(toEmail string, plan models.Plan, sub *models.Subscription, paymentID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("receipt: mail send panicked")
		}
	}()

	if m.apiKey == "" || toEmail == "" {
		log.Debug().Msg("receipt: email not configured, skipping")
		return
	}

	subject := fmt.Sprintf("Your %s subscription is active", plan.Name)
	content := fmt.Sprintf(`Thanks for subscribing.

Plan: %s
Amount: $%.2f %s
Active until: %s

Payment reference: %s

You now have full access to every hourly update, including sources.`,
		plan.Name,
		float64(plan.AmountCents)/100,
		plan.Currency,
		sub.ExpiresAt.Format("January 2, 2006"),
		paymentID,
	)

	from := mail.NewEmail("Wirewatch", m.from)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Error().Err(err).Str("to", toEmail).Msg("receipt: send failed")
		return
	}
	log.Info().Int("status", resp.StatusCode).Str("to", toEmail).Msg("receipt: sent")
}
