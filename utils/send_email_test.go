package utils

import (
	"strings"
	"testing"
)

func TestSMTPEndpoint(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	host, addr := smtpEndpoint()
	if host != "smtp.gmail.com" || addr != "smtp.gmail.com:587" {
		t.Errorf("mặc định = (%q, %q), muốn gmail:587", host, addr)
	}

	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	host, addr = smtpEndpoint()
	if host != "mail.example.com" || addr != "mail.example.com:2525" {
		t.Errorf("từ env = (%q, %q), muốn mail.example.com:2525", host, addr)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := string(buildEmailMessage("noreply@example.com", "alice@example.com", "Chào mừng", "<b>Xin chào</b>"))

	for _, want := range []string{
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
		"From: noreply@example.com\r\n",
		"To: alice@example.com\r\n",
		"Subject: Chào mừng\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message thiếu header %q", want)
		}
	}

	// Body nằm sau dòng trống ngăn header
	if !strings.HasSuffix(msg, "\r\n\r\n<b>Xin chào</b>") {
		t.Errorf("body không nằm sau header: %q", msg)
	}
}
