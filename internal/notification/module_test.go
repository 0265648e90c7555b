package notification

import (
	"context"
	"errors"
	"testing"

	"warga_portal_backend/internal/events"
	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string { return "https://portal.example.com" }

type testSender struct {
	welcomeCalls      int
	announcementCalls int
	lastEmail         string
	lastRole          string
	err               error
}

func (s *testSender) SendWelcomeEmail(_ context.Context, toEmail, _, role, _ string) error {
	s.welcomeCalls++
	s.lastEmail = toEmail
	s.lastRole = role
	return s.err
}

func (s *testSender) SendAnnouncementEmail(_ context.Context, _, _, _, _ string) error {
	s.announcementCalls++
	return s.err
}

func TestHandleAccountProvisionedSendsWelcomeEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.New("development"))

	err := m.handleAccountProvisioned(context.Background(), events.AccountProvisioned{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      uuid.New(),
		Email:       "warga@example.com",
		DisplayName: "Budi Santoso",
		Role:        "penduduk",
	})
	if err != nil {
		t.Fatalf("handleAccountProvisioned() error = %v", err)
	}
	if sender.welcomeCalls != 1 {
		t.Errorf("welcome calls = %d, want 1", sender.welcomeCalls)
	}
	if sender.lastEmail != "warga@example.com" || sender.lastRole != "penduduk" {
		t.Errorf("sent to %q as %q", sender.lastEmail, sender.lastRole)
	}
}

func TestHandleAccountProvisionedPropagatesSendFailure(t *testing.T) {
	sender := &testSender{err: errors.New("smtp down")}
	m := New(sender, testNotificationConfig{}, logger.New("development"))

	err := m.handleAccountProvisioned(context.Background(), events.AccountProvisioned{
		BaseEvent: events.NewBaseEvent(),
		UserID:    uuid.New(),
		Email:     "warga@example.com",
		Role:      "rt",
	})
	if err == nil {
		t.Fatal("expected error from failed send")
	}
}

func TestHandleAccountRetiredDoesNotSendEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.New("development"))

	err := m.handleAccountRetired(context.Background(), events.AccountRetired{
		BaseEvent: events.NewBaseEvent(),
		UserID:    uuid.New(),
		Actor:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("handleAccountRetired() error = %v", err)
	}
	if sender.welcomeCalls != 0 || sender.announcementCalls != 0 {
		t.Error("retirement must not send email")
	}
}
