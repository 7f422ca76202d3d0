package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DirectoryChangedEvent tells list views that a user's directory data moved
// and which mutation kind caused it.
type DirectoryChangedEvent struct {
	Type      string    `json:"type"`
	Change    string    `json:"change"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp string    `json:"timestamp"`
}

// Notifier adapts the hub to the usecase notification hook.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) DirectoryChanged(kind string, userID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	evt := DirectoryChangedEvent{
		Type:      "directory_changed",
		Change:    kind,
		UserID:    userID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
