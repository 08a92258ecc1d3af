package mailer

import (
	"context"
	"fmt"

	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/wneessen/go-mail"
)

const senderName = "AutoHub"

type EmailHeader struct {
	Subject string
	To      []string
}

type EmailSender interface {
	SendEmail(header EmailHeader, htmlBody string) error
}

type SMTPSender struct {
	client *mail.Client
	config util.Config
}

func NewSMTPSender(config util.Config) (*SMTPSender, error) {
	client, err := mail.NewClient(config.SMTPHost, mail.WithPort(config.SMTPPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.SMTPUsername), mail.WithPassword(config.SMTPPassword))
	if err != nil {
		return nil, err
	}
	if err = client.DialWithContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return &SMTPSender{
		client: client,
		config: config,
	}, nil
}

func (sender *SMTPSender) SendEmail(header EmailHeader, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(senderName, sender.config.EmailSender); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}

	msg.Subject(header.Subject)

	if err := msg.To(header.To...); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}

	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := sender.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SaleReceiptBody renders the email sent to a seller when their listing is
// marked sold.
func SaleReceiptBody(listingTitle string, price int64) string {
	return fmt.Sprintf(
		"<p>Congratulations! Your listing <strong>%s</strong> has been marked as sold at %s.</p><p>The transaction record is available in your seller dashboard.</p>",
		listingTitle, util.FormatPHP(price))
}

// RejectionBody renders the email sent to a seller when moderation bounces
// their listing.
func RejectionBody(listingTitle string, reason string) string {
	return fmt.Sprintf(
		"<p>Your listing <strong>%s</strong> was not approved.</p><p>Reason: %s</p><p>You can edit the listing and resubmit it for review.</p>",
		listingTitle, reason)
}
