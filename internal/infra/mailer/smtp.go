package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/pkg/config"
)

// SMTPMailer delivers guest notifications over plain SMTP with STARTTLS
// auth. Sends are bounded by the configured timeout so a slow transport
// cannot stall a request; callers decide whether a failure is fatal.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendCheckInKey(ctx context.Context, guestName, guestEmail, key string) error {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>Welcome, %s!</h1>", guestName))
	body.WriteString("<p>Thank you for choosing to stay with us.</p>")
	body.WriteString("<p>To manage your stay, add services, or check out, please use the following unique key on our website:</p>")
	body.WriteString(fmt.Sprintf("<h2 style=\"background-color:#f0f0f0;padding:15px;text-align:center;letter-spacing:2px;\">%s</h2>", key))
	body.WriteString("<p>We hope you have a pleasant stay.</p>")

	return m.send(ctx, guestEmail, "Welcome to Platinum Pearl! Your Check-in Key", body.String())
}

func (m *SMTPMailer) SendFinalBill(ctx context.Context, guestName, guestEmail string, roomNumber int, bill booking.Bill) error {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>Thank you for staying with us, %s!</h1>", guestName))
	body.WriteString(fmt.Sprintf("<p>Here is your final bill for your stay in room %d.</p>", roomNumber))
	body.WriteString("<h2>Bill Details:</h2><ul>")
	for _, c := range bill.Charges {
		body.WriteString(fmt.Sprintf("<li>%s: $%s</li>", c.Item, c.Amount))
	}
	body.WriteString("</ul>")
	body.WriteString(fmt.Sprintf("<h3>Total: $%s</h3>", bill.Total))
	body.WriteString("<p>We hope you had a pleasant stay.</p>")

	subject := fmt.Sprintf("Your Bill from Platinum Pearl - Room %d", roomNumber)
	return m.send(ctx, guestEmail, subject, body.String())
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.User, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		return err
	case <-sendCtx.Done():
		return sendCtx.Err()
	}
}
