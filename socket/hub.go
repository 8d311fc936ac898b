package socket

import (
	"encoding/json"

	"artifactvault/pkg/logger"
)

const (
	ArtifactCreatedType = "ARTIFACT_CREATED" // New artifact added
	ArtifactUpdatedType = "ARTIFACT_UPDATED" // Owner patched artifact fields
	ArtifactDeletedType = "ARTIFACT_DELETED" // Owner removed an artifact
	ArtifactLikedType   = "ARTIFACT_LIKED"   // Like toggled on
	ArtifactUnlikedType = "ARTIFACT_UNLIKED" // Like toggled off
)

// Event is a single activity-feed message pushed to every subscriber.
type Event struct {
	Type       string          `json:"type"`
	ArtifactID string          `json:"artifactId"`
	LikeCount  int64           `json:"likeCount"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Hub fans artifact events out to all connected websocket subscribers.
// All client bookkeeping happens inside Run, so no lock is needed.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish queues an event for broadcast without blocking the request path.
// The feed is best-effort: if the hub is saturated the event is dropped.
func (h *Hub) Publish(ev Event) {
	select {
	case h.Broadcast <- ev:
	default:
		logger.Sugar.Warnf("Activity feed saturated, dropping %s event for %s", ev.Type, ev.ArtifactID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}

		case ev := <-h.Broadcast:
			payload, err := json.Marshal(ev)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling feed event: %v", err)
				continue
			}
			for client := range h.Clients {
				select {
				case client.Send <- payload:
				default:
					// The send buffer is full, the client is lagging.
					// Drop it to keep the hub from blocking.
					logger.Sugar.Warnf("Feed subscriber's send buffer is full. Dropping client.")
					delete(h.Clients, client)
					close(client.Send)
				}
			}
		}
	}
}
