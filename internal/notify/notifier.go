// Package notify implements the engagement notification fan-out: every event
// goes to the recipient's NATS subject and, when the recipient is connected,
// to their WebSocket clients.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"geostud-api/internal/messaging"
	"geostud-api/internal/usecase"
	"geostud-api/internal/ws"
)

const (
	EventTypeLike  = "like_received"
	EventTypeMatch = "match_created"
)

// Event is the wire payload for both NATS and WebSocket delivery.
type Event struct {
	Type      string                `json:"type"`
	From      usecase.PublicProfile `json:"from"`
	Message   string                `json:"message,omitempty"`
	Timestamp string                `json:"timestamp"`
}

// FanOut delivers notifications over NATS and the in-process WebSocket hub.
// Either sink may be nil; delivery to the remaining one still happens.
type FanOut struct {
	nats *messaging.NATSClient
	hub  *ws.Hub

	now func() time.Time
}

func NewFanOut(nats *messaging.NATSClient, hub *ws.Hub) *FanOut {
	return &FanOut{nats: nats, hub: hub, now: time.Now}
}

func (f *FanOut) NotifyLike(ctx context.Context, to, from usecase.PublicProfile, message string) error {
	data, err := f.marshal(EventTypeLike, from, message)
	if err != nil {
		return err
	}

	f.push(to.ExternalID, data)
	if f.nats == nil {
		return nil
	}
	return f.nats.PublishLikeNotify(to.ExternalID, data)
}

func (f *FanOut) NotifyMatch(ctx context.Context, to, from usecase.PublicProfile) error {
	data, err := f.marshal(EventTypeMatch, from, "")
	if err != nil {
		return err
	}

	f.push(to.ExternalID, data)
	if f.nats == nil {
		return nil
	}
	return f.nats.PublishMatchNotify(to.ExternalID, data)
}

func (f *FanOut) marshal(eventType string, from usecase.PublicProfile, message string) ([]byte, error) {
	return json.Marshal(Event{
		Type:      eventType,
		From:      from,
		Message:   message,
		Timestamp: f.now().UTC().Format(time.RFC3339),
	})
}

func (f *FanOut) push(externalID int64, data []byte) {
	if f.hub == nil {
		return
	}
	f.hub.SendToUser(externalID, data)
}
