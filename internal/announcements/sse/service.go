// Package sse streams announcement changes to connected clients over
// Server-Sent Events.
package sse

import (
	"encoding/json"
	"sync"

	"warga_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventType string

const (
	EventAnnouncementCreated EventType = "announcement_created"
	EventAnnouncementUpdated EventType = "announcement_updated"
	EventAnnouncementDeleted EventType = "announcement_deleted"
)

// Event is the wire payload pushed to clients.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// client is one open SSE connection.
type client struct {
	userID uuid.UUID
	role   string
	events chan Event
}

// Service manages SSE connections and event broadcasting.
type Service struct {
	mu      sync.RWMutex
	clients map[uuid.UUID][]*client
	log     *logger.Logger
}

func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[uuid.UUID][]*client),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.userID] = append(s.clients[c.userID], c)
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[c.userID]
	for i, cl := range clients {
		if cl == c {
			s.clients[c.userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(s.clients[c.userID]) == 0 {
		delete(s.clients, c.userID)
	}

	close(c.events)
}

// Broadcast pushes an event to every connected client whose role is in the
// audience. An empty audience reaches everyone. The sends happen under the
// read lock: removeClient closes channels under the write lock, so a client
// disconnecting mid-broadcast cannot turn a send into a panic. Sends are
// non-blocking, so holding the lock is cheap.
func (s *Service) Broadcast(event Event, audience []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, clients := range s.clients {
		for _, c := range clients {
			if !audienceAllows(audience, c.role) {
				continue
			}
			select {
			case c.events <- event:
			default:
				s.log.Warn("sse event buffer full", "user_id", c.userID)
			}
		}
	}
}

func audienceAllows(audience []string, role string) bool {
	if len(audience) == 0 {
		return true
	}
	for _, item := range audience {
		if item == role {
			return true
		}
	}
	return false
}

// Handler returns the gin handler for SSE connections. Identity resolution is
// injected so the package stays off the middleware internals.
func (s *Service) Handler(getIdentity func(*gin.Context) (uuid.UUID, string, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := getIdentity(c)
		if !ok {
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			userID: userID,
			role:   role,
			events: make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID})
		c.Writer.Flush()

		s.log.Info("sse client connected", "user_id", userID, "role", role)

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				s.log.Info("sse client disconnected", "user_id", userID)
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down all connections.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clients := range s.clients {
		for _, c := range clients {
			close(c.events)
		}
	}
	s.clients = make(map[uuid.UUID][]*client)
}
