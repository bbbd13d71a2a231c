// Package event defines the domain events emitted by the services and the
// JSON codec used to carry them through the notification queue.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event.
type Type string

const (
	MissionPended       Type = "mission.pended"
	MissionAccepted     Type = "mission.accepted"
	MissionRejected     Type = "mission.rejected"
	NewProposition      Type = "proposition.new"
	PropositionAccepted Type = "proposition.accepted"
	PropositionRejected Type = "proposition.rejected"
	NewMessage          Type = "message.new"
)

// Event is one unit of work on the notification queue. MissionID is always
// set; ProposalID and MessageID only for the event types that concern them.
// Attempt counts deliveries so the worker can stop retrying poisoned jobs.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	MissionID  string    `json:"mission_id"`
	ProposalID string    `json:"proposal_id,omitempty"`
	MessageID  string    `json:"message_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Attempt    int       `json:"attempt"`
}

// New builds an event with a fresh ID and timestamp.
func New(t Type, missionID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		MissionID:  missionID,
		OccurredAt: time.Now().UTC(),
	}
}

// Marshal encodes the event for the queue.
func Marshal(ev Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a queued event payload.
func Unmarshal(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("unmarshal event: missing type")
	}
	return ev, nil
}
