package auth

import (
	"fmt"
	"net/smtp"
)

func (h *Handler) sendVerificationEmail(to string, token string) error {
	if h.SMTP.Host == "" {
		// No mailer configured (local dev); the link still reaches the log.
		fmt.Printf("Verification link for %s: %s/api/verify?token=%s\n", to, h.AppURL, token)
		return nil
	}

	auth := smtp.PlainAuth("", h.SMTP.From, h.SMTP.Password, h.SMTP.Host)

	link := fmt.Sprintf("%s/api/verify?token=%s", h.AppURL, token)
	subject := "Verify your EchoPoint account"
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + h.SMTP.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(h.SMTP.Host+":"+h.SMTP.Port, auth, h.SMTP.From, []string{to}, message)
}
