package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendVerificationCode(toEmail, code string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendVerificationCode delivers the 6-digit signup code. The code travels
// only through this channel; it is never echoed in any API response.
func (s *emailService) SendVerificationCode(toEmail, code string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your NoteMark Verification Code")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
			<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0;">
				<h1>Email Verification</h1>
			</div>
			<div style="padding: 40px 30px;">
				<h2 style="margin-top: 0;">Welcome to NoteMark!</h2>
				<p>Thank you for signing up. Please use this 6-digit code to verify your email:</p>
				<div style="background: #f8f9fa; border: 2px dashed #667eea; border-radius: 8px; padding: 30px; text-align: center; margin: 30px 0;">
					<div style="color: #666; font-size: 14px; margin-bottom: 10px;">Your Verification Code</div>
					<div style="font-size: 48px; font-weight: bold; letter-spacing: 12px; color: #667eea; font-family: 'Courier New', monospace;">%s</div>
				</div>
				<p style="color: #666;"><strong>This code will expire in 5 minutes.</strong></p>
				<p style="color: #d32f2f;">If you didn't request this code, please ignore this email.</p>
			</div>
			<div style="background: #f8f9fa; padding: 20px 30px; text-align: center; color: #666; font-size: 14px;">
				<p>This is an automated message from NoteMark</p>
			</div>
		</div>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send verification code to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Verification code sent to %s\n", toEmail)
	return nil
}
