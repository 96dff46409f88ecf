package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

func TestNewSMTPMailer_RequiresHostAndFrom(t *testing.T) {
	if _, err := NewSMTPMailer(SMTPConfig{From: "a@b.c", Port: 587}); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587}); err == nil {
		t.Fatalf("expected error without from")
	}
}

func TestSMTPMailer_Message(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@uni.edu"})
	if err != nil {
		t.Fatalf("NewSMTPMailer: %v", err)
	}

	msg, err := m.message(ports.Email{To: "asha@uni.edu", Subject: "Hello", HTML: "<p>hi</p>"})
	if err != nil {
		t.Fatalf("message: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"asha@uni.edu", "no-reply@uni.edu", "Subject: Hello", "text/html"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in message:\n%s", want, out)
		}
	}

	if _, err := m.message(ports.Email{To: "not an address"}); err == nil {
		t.Fatalf("expected invalid recipient to fail")
	}
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	if err := m.Send(context.Background(), ports.Email{To: "asha@uni.edu", Subject: "Hello"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), "asha@uni.edu") {
		t.Fatalf("expected recipient in log, got %s", buf.String())
	}
}
