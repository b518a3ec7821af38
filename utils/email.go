package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

func sendMail(toEmail, message string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")

	return smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{toEmail},
		[]byte(message),
	)
}

func SendOTPEmail(toEmail, otp string) error {
	msg := fmt.Sprintf(`Subject: StyleHive - Verify your email

Dear user,

Your One-Time Password (OTP) for verifying your email is:

OTP: %s

The code expires in 10 minutes. Please enter it to complete your registration.

Thank you,
StyleHive Team
`, otp)

	return sendMail(toEmail, msg)
}

func SendPasswordResetEmail(toEmail, token string) error {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	msg := fmt.Sprintf(`Subject: StyleHive - Reset your password

Dear user,

We received a request to reset your password. Use the link below to choose a new one:

%s/reset-password?token=%s

The link expires in 30 minutes. If you did not ask for this, you can ignore this email.

Thank you,
StyleHive Team
`, base, token)

	return sendMail(toEmail, msg)
}
