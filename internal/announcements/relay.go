package announcements

import (
	"context"

	"warga_portal_backend/internal/announcements/sse"
	"warga_portal_backend/internal/events"
)

// relay forwards announcement bus events onto the SSE feed. It replaces a
// database-change subscription with an in-process one.
type relay struct {
	feed *sse.Service
}

func (r *relay) register(bus events.Bus) {
	bus.Subscribe(events.EventAnnouncementCreated, events.HandlerFunc(r.handleCreated))
	bus.Subscribe(events.EventAnnouncementUpdated, events.HandlerFunc(r.handleUpdated))
	bus.Subscribe(events.EventAnnouncementDeleted, events.HandlerFunc(r.handleDeleted))
}

func (r *relay) handleCreated(_ context.Context, event events.Event) error {
	e, ok := event.(events.AnnouncementCreated)
	if !ok {
		return nil
	}
	r.feed.Broadcast(sse.Event{
		Type: sse.EventAnnouncementCreated,
		Data: map[string]any{"id": e.AnnouncementID, "judul": e.Title},
	}, e.Audience)
	return nil
}

func (r *relay) handleUpdated(_ context.Context, event events.Event) error {
	e, ok := event.(events.AnnouncementUpdated)
	if !ok {
		return nil
	}
	r.feed.Broadcast(sse.Event{
		Type: sse.EventAnnouncementUpdated,
		Data: map[string]any{"id": e.AnnouncementID},
	}, nil)
	return nil
}

func (r *relay) handleDeleted(_ context.Context, event events.Event) error {
	e, ok := event.(events.AnnouncementDeleted)
	if !ok {
		return nil
	}
	r.feed.Broadcast(sse.Event{
		Type: sse.EventAnnouncementDeleted,
		Data: map[string]any{"id": e.AnnouncementID},
	}, nil)
	return nil
}
