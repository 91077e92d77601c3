package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BatchScoredEvent tells a persona's live clients that a scoring batch
// finished and how many jobs survived the filter.
type BatchScoredEvent struct {
	Type      string `json:"type"`
	PersonaID string `json:"persona_id"`
	Scored    int    `json:"scored"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

// Notifier adapts the hub to the scoring orchestrator's callback.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyScored(personaID uuid.UUID, scored, total int) {
	if n == nil || n.hub == nil {
		return
	}

	evt := BatchScoredEvent{
		Type:      "batch_scored",
		PersonaID: personaID.String(),
		Scored:    scored,
		Total:     total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Publish(personaID.String(), b)
}
