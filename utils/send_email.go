package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

func smtpEndpoint() (host, addr string) {
	host = os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return host, host + ":" + port
}

// buildEmailMessage dựng message MIME hoàn chỉnh, body là HTML UTF-8.
func buildEmailMessage(from, to, subject, body string) []byte {
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body
	return []byte(msg)
}

// SendEmail gửi mail HTML qua SMTP. Server lấy từ SMTP_HOST/SMTP_PORT,
// mặc định gmail; tài khoản gửi từ SMTP_EMAIL/SMTP_PASSWORD.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	pass := os.Getenv("SMTP_PASSWORD")

	host, addr := smtpEndpoint()
	err := smtp.SendMail(
		addr,
		smtp.PlainAuth("", from, pass, host),
		from,
		[]string{to},
		buildEmailMessage(from, to, subject, body),
	)

	if err != nil {
		return fmt.Errorf("gửi email thất bại: %v", err)
	}
	return nil
}
