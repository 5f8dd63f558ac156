package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"tipfit/internal/models"
)

type EmailService interface {
	SendOTPEmail(email, code, purpose string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOTPEmail(email, code, purpose string) error {
	subject := "Código de acceso - TipFit"
	action := "código de acceso"
	if purpose == models.OTPPurposeRegistration {
		subject = "Verifica tu cuenta - TipFit"
		action = "verificación de cuenta"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #667eea;">TipFit</h1>
			<p>Hola, usa el siguiente código para %s:</p>
			<div style="border: 2px solid #667eea; border-radius: 10px; padding: 30px; text-align: center;">
				<h3 style="color: #667eea; font-size: 36px; letter-spacing: 5px; margin: 0;">%s</h3>
			</div>
			<p style="color: #999; font-size: 14px;">
				Este código expira en 5 minutos. Si no solicitaste este código, puedes ignorar este email.
			</p>
		</div>
	`, action, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	return nil
}
