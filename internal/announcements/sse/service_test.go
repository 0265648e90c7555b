package sse

import (
	"sync"
	"sync/atomic"
	"testing"

	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
)

func newTestClient(role string) *client {
	return &client{
		userID: uuid.New(),
		role:   role,
		events: make(chan Event, 4),
	}
}

func TestBroadcastReachesMatchingRoles(t *testing.T) {
	svc := New(logger.New("development"))
	penduduk := newTestClient("penduduk")
	rt := newTestClient("rt")
	svc.addClient(penduduk)
	svc.addClient(rt)

	svc.Broadcast(Event{Type: EventAnnouncementCreated}, []string{"penduduk"})

	if len(penduduk.events) != 1 {
		t.Errorf("penduduk events = %d, want 1", len(penduduk.events))
	}
	if len(rt.events) != 0 {
		t.Errorf("rt events = %d, want 0", len(rt.events))
	}
}

func TestBroadcastEmptyAudienceReachesEveryone(t *testing.T) {
	svc := New(logger.New("development"))
	clients := []*client{newTestClient("admin"), newTestClient("rw"), newTestClient("penduduk")}
	for _, c := range clients {
		svc.addClient(c)
	}

	svc.Broadcast(Event{Type: EventAnnouncementDeleted}, nil)

	for i, c := range clients {
		if len(c.events) != 1 {
			t.Errorf("client %d events = %d, want 1", i, len(c.events))
		}
	}
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	svc := New(logger.New("development"))
	c := newTestClient("penduduk")
	svc.addClient(c)
	svc.removeClient(c)

	if _, open := <-c.events; open {
		t.Error("events channel still open after removal")
	}

	// Broadcasting after removal must not panic or deliver.
	svc.Broadcast(Event{Type: EventAnnouncementUpdated}, nil)
}

func TestBroadcastDuringDisconnect(t *testing.T) {
	svc := New(logger.New("development"))

	stop := make(chan struct{})
	var panicked atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				panicked.Store(true)
			}
		}()
		for {
			select {
			case <-stop:
				return
			default:
				svc.Broadcast(Event{Type: EventAnnouncementUpdated}, nil)
			}
		}
	}()

	// Churn connections while the broadcaster runs; a send racing a close
	// would panic the broadcast goroutine.
	for i := 0; i < 500; i++ {
		c := &client{userID: uuid.New(), role: "penduduk", events: make(chan Event, 1)}
		svc.addClient(c)
		svc.removeClient(c)
	}

	close(stop)
	wg.Wait()

	if panicked.Load() {
		t.Fatal("broadcast panicked while a client disconnected")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	svc := New(logger.New("development"))
	c := &client{userID: uuid.New(), role: "penduduk", events: make(chan Event, 1)}
	svc.addClient(c)

	svc.Broadcast(Event{Type: EventAnnouncementCreated}, nil)
	svc.Broadcast(Event{Type: EventAnnouncementCreated}, nil)

	if len(c.events) != 1 {
		t.Errorf("events = %d, want 1 (overflow dropped)", len(c.events))
	}
}
