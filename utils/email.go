package utils

import (
	"fmt"
	"net/smtp"

	"civichub/config"
)

var smtpConfig *config.Config

// SetSMTPConfig wires mail settings at startup; without it the senders
// are silent no-ops, which keeps local development mail-server free
func SetSMTPConfig(cfg *config.Config) {
	smtpConfig = cfg
}

func sendMail(to, subject, htmlBody string) error {
	if smtpConfig == nil || smtpConfig.SMTP.Host == "" {
		return nil
	}
	cfg := smtpConfig.SMTP

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		to, cfg.SenderName, cfg.SenderEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	if err := smtp.SendMail(addr, auth, cfg.SenderEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendVerificationEmail sends an email with an account verification code
func SendVerificationEmail(email, code string) error {
	body := fmt.Sprintf("<p>Your CivicHub verification code is: <strong>%s</strong></p>", code)
	return sendMail(email, "Verify Your CivicHub Account", body)
}

// SendLevelUpEmail congratulates a user on reaching a new level
func SendLevelUpEmail(email, level string) error {
	body := fmt.Sprintf("<p>Congratulations! You reached the <strong>%s</strong> level on CivicHub!</p>", level)
	return sendMail(email, "You leveled up on CivicHub", body)
}
