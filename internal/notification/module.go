// Package notification reacts to domain events with outbound messages.
package notification

import (
	"context"

	"warga_portal_backend/internal/email"
	"warga_portal_backend/internal/events"
	"warga_portal_backend/platform/config"
	"warga_portal_backend/platform/logger"
)

type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// Register subscribes the module to the events it reacts to.
func (m *Module) Register(bus events.Bus) {
	bus.Subscribe(events.EventAccountProvisioned, events.HandlerFunc(m.handleAccountProvisioned))
	bus.Subscribe(events.EventAccountRetired, events.HandlerFunc(m.handleAccountRetired))
}

func (m *Module) handleAccountProvisioned(ctx context.Context, event events.Event) error {
	e, ok := event.(events.AccountProvisioned)
	if !ok {
		return nil
	}

	if err := m.sender.SendWelcomeEmail(ctx, e.Email, e.DisplayName, e.Role, m.cfg.GetAppBaseURL()); err != nil {
		m.log.Error("failed to send welcome email", "user_id", e.UserID, "error", err)
		return err
	}

	m.log.Info("welcome email sent", "user_id", e.UserID, "role", e.Role)
	return nil
}

// handleAccountRetired leaves an audit trail; retired accounts have no inbox
// we control anymore.
func (m *Module) handleAccountRetired(_ context.Context, event events.Event) error {
	e, ok := event.(events.AccountRetired)
	if !ok {
		return nil
	}

	m.log.Info("account retirement recorded", "user_id", e.UserID, "actor", e.Actor)
	return nil
}
