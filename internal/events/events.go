package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -destination=mock_events/publisher.go -package=mock_events . Publisher

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSessionStarted = "session_started"
	TypeBoardGrown     = "board_grown"
	TypeRoundFinished  = "round_finished"
	TypeSessionReset   = "session_reset"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionStartedPayload is the payload for the "session_started" event.
type SessionStartedPayload struct {
	SessionID  string `json:"session_id"`
	PlayerMark string `json:"player_mark"`
}

// BoardGrownPayload is the payload for the "board_grown" event.
type BoardGrownPayload struct {
	SessionID string `json:"session_id"`
	BoardSize int    `json:"board_size"`
}

// RoundFinishedPayload is the payload for the "round_finished" event, sent
// when the bot wins or the board fills up.
type RoundFinishedPayload struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	BoardSize int    `json:"board_size"`
}

// SessionResetPayload is the payload for the "session_reset" event.
type SessionResetPayload struct {
	SessionID string `json:"session_id"`
}

// New wraps payload into an Event of the given type.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// Publisher broadcasts session events to whoever listens.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher publishes events on EventsChannel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// NopPublisher drops every event. It is used with the in-memory store.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
