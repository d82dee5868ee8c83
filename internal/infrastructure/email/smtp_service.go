package email

import (
	"context"
	"fmt"
	"net/smtp"

	"megamart-backend/pkg/logger"
)

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
	SendPaymentReceipt(ctx context.Context, data PaymentReceiptData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	subject := fmt.Sprintf("Your MegaMart order %s is confirmed", data.OrderCode)
	body := fmt.Sprintf(`Hi,

Thanks for shopping with MegaMart! Your order %s has been placed.

Total: %s
Payment method: %s
Placed at: %s

You can track your order from the Orders page at any time.`,
		data.OrderCode, data.Total, data.PaymentMethod, data.PlacedAt)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendPaymentReceipt(ctx context.Context, data PaymentReceiptData) error {
	subject := fmt.Sprintf("Payment received for order %s", data.OrderCode)
	body := fmt.Sprintf(`Hi,

We have received your payment for order %s.

Payment reference: %s
Amount: %s
Paid at: %s

If you did not make this payment, please contact support immediately.`,
		data.OrderCode, data.PaymentID, data.Total, data.PaidAt)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
