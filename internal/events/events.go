package events

import "github.com/google/uuid"

// Event names for subscription.
const (
	EventAccountProvisioned   = "accounts.provisioned"
	EventAccountRetired       = "accounts.retired"
	EventAnnouncementCreated  = "announcements.created"
	EventAnnouncementUpdated  = "announcements.updated"
	EventAnnouncementDeleted  = "announcements.deleted"
)

// AccountProvisioned is published after a new account has been fully
// provisioned (identity created and role assigned).
type AccountProvisioned struct {
	BaseEvent
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        string
}

func (AccountProvisioned) EventName() string { return EventAccountProvisioned }

// AccountRetired is published after an account has been permanently retired.
type AccountRetired struct {
	BaseEvent
	UserID uuid.UUID
	Actor  uuid.UUID
}

func (AccountRetired) EventName() string { return EventAccountRetired }

// AnnouncementCreated is published when a new announcement goes live.
type AnnouncementCreated struct {
	BaseEvent
	AnnouncementID uuid.UUID
	Title          string
	RWID           *uuid.UUID
	RTID           *uuid.UUID
	Audience       []string
}

func (AnnouncementCreated) EventName() string { return EventAnnouncementCreated }

// AnnouncementUpdated is published when an announcement changes.
type AnnouncementUpdated struct {
	BaseEvent
	AnnouncementID uuid.UUID
}

func (AnnouncementUpdated) EventName() string { return EventAnnouncementUpdated }

// AnnouncementDeleted is published when an announcement is removed or expires.
type AnnouncementDeleted struct {
	BaseEvent
	AnnouncementID uuid.UUID
}

func (AnnouncementDeleted) EventName() string { return EventAnnouncementDeleted }
