// Package email provides outbound email delivery for the portal.
package email

import "context"

// Sender delivers the portal's transactional emails.
type Sender interface {
	// SendWelcomeEmail notifies a freshly provisioned account holder.
	SendWelcomeEmail(ctx context.Context, toEmail, displayName, role, portalURL string) error
	// SendAnnouncementEmail notifies a recipient of a new announcement.
	SendAnnouncementEmail(ctx context.Context, toEmail, title, body, portalURL string) error
}

// NoopSender is used when email delivery is not configured. Sends succeed
// silently.
type NoopSender struct{}

func NewNoopSender() *NoopSender { return &NoopSender{} }

func (*NoopSender) SendWelcomeEmail(context.Context, string, string, string, string) error {
	return nil
}

func (*NoopSender) SendAnnouncementEmail(context.Context, string, string, string, string) error {
	return nil
}
