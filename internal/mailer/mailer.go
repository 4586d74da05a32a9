// Package mailer sends reservation emails over SMTP. Sending is
// best-effort: callers log failures and never roll back the state
// transition that triggered the email.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/bookfairlk/stall-reservation-api/internal/config"
)

const confirmationTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="color: #2c3e50; text-align: center;">Reservation Confirmed</h1>
      <p>Hello {{.VendorName}},</p>
      <p>Thank you for reserving a stall at the Colombo International Bookfair!
         Your reservation for stall <strong>{{.StallName}}</strong> has been confirmed.</p>
      <p><strong>Confirmation code:</strong> {{.Token}}</p>
      <div style="text-align: center; margin: 30px 0;">
        <img src="cid:qr_code.png" alt="QR Code" style="width: 200px; height: 200px;">
      </div>
      <p>Please keep this QR code safe. You will need to present it at the entrance.</p>
      <p style="color: #7f8c8d; font-size: 12px;">
        Questions? Contact support@bookfair.lk.
      </p>
    </div>
  </body>
</html>`

const cancellationTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="color: #e74c3c; text-align: center;">Reservation Cancelled</h1>
      <p>Hello {{.VendorName}},</p>
      <p>Your reservation for stall <strong>{{.StallName}}</strong> has been cancelled.</p>
      <p>If you wish to reserve another stall, please visit our portal.</p>
      <p style="color: #7f8c8d; font-size: 12px;">
        Questions? Contact support@bookfair.lk.
      </p>
    </div>
  </body>
</html>`

// Mailer is the notification collaborator consumed by the reservation
// service.
type Mailer interface {
	SendConfirmation(email, vendorName, stallName, token string, qrImage []byte) error
	SendCancellation(email, vendorName, stallName string) error
}

type SMTPMailer struct {
	conf         *config.SMTPConfig
	confirmation *template.Template
	cancellation *template.Template
}

func NewSMTPMailer(conf *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		conf:         conf,
		confirmation: template.Must(template.New("confirmation").Parse(confirmationTemplate)),
		cancellation: template.Must(template.New("cancellation").Parse(cancellationTemplate)),
	}
}

func (m *SMTPMailer) SendConfirmation(email, vendorName, stallName, token string, qrImage []byte) error {
	var body bytes.Buffer
	err := m.confirmation.Execute(&body, map[string]string{
		"VendorName": vendorName,
		"StallName":  stallName,
		"Token":      token,
	})
	if err != nil {
		return fmt.Errorf("m.confirmation.Execute -> %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.conf.SenderEmail)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Book Stall Reservation Confirmation - Colombo International Bookfair")
	msg.SetBody("text/html", body.String())
	msg.Embed("qr_code.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qrImage)
		return err
	}))

	if err = m.send(msg); err != nil {
		return fmt.Errorf("m.send -> %w", err)
	}

	return nil
}

func (m *SMTPMailer) SendCancellation(email, vendorName, stallName string) error {
	var body bytes.Buffer
	err := m.cancellation.Execute(&body, map[string]string{
		"VendorName": vendorName,
		"StallName":  stallName,
	})
	if err != nil {
		return fmt.Errorf("m.cancellation.Execute -> %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.conf.SenderEmail)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Reservation Cancelled - Colombo International Bookfair")
	msg.SetBody("text/html", body.String())

	if err = m.send(msg); err != nil {
		return fmt.Errorf("m.send -> %w", err)
	}

	return nil
}

func (m *SMTPMailer) send(msg *gomail.Message) error {
	if m.conf.SenderEmail == "" || m.conf.SenderPassword == "" {
		return fmt.Errorf("smtp sender credentials are not configured")
	}

	dialer := gomail.NewDialer(m.conf.Host, m.conf.Port, m.conf.SenderEmail, m.conf.SenderPassword)

	return dialer.DialAndSend(msg)
}
