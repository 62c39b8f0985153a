// Package session maps browser sessions onto game engines. Each session's
// engine lives in a Store between requests, and every event for a session
// runs to completion before the next one for the same id starts.
package session

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/engine"
	"ctchen222/growing-tic-tac-toe/internal/events"
	"ctchen222/growing-tic-tac-toe/internal/game"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("session")

// View is what a caller gets back from the manager: the engine's result and
// the state it left behind.
type View struct {
	Result   engine.Result
	Snapshot engine.Snapshot
}

// Manager runs engine operations for sessions.
type Manager struct {
	store      Store
	publisher  events.Publisher
	engineOpts []engine.Option
	locks      *keyedMutex
	metrics    *metrics
}

// NewManager creates a Manager. A nil publisher drops events.
func NewManager(store Store, publisher events.Publisher, opts ...engine.Option) *Manager {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Manager{
		store:      store,
		publisher:  publisher,
		engineOpts: opts,
		locks:      newKeyedMutex(),
		metrics:    newMetrics(),
	}
}

// Start begins a new session for id with the player owning mark.
func (m *Manager) Start(ctx context.Context, id string, mark game.PlayerMark) (*View, error) {
	view, err := m.apply(ctx, "session.Start", id, func(e *engine.Engine) engine.Result {
		return e.Start(mark)
	}, attribute.String("player.mark", string(mark)))
	if err != nil || view.Result.Outcome == engine.None {
		return view, err
	}

	slog.InfoContext(ctx, "session started", "session.id", id, "player.mark", mark)
	m.publish(ctx, events.TypeSessionStarted, events.SessionStartedPayload{
		SessionID:  id,
		PlayerMark: string(mark),
	})
	return view, nil
}

// Move applies the player's move at (row, col) and the bot's answer.
func (m *Manager) Move(ctx context.Context, id string, row, col int) (*View, error) {
	return m.apply(ctx, "session.Move", id, func(e *engine.Engine) engine.Result {
		return e.ApplyPlayerMove(row, col)
	}, attribute.Int("move.row", row), attribute.Int("move.col", col))
}

// State returns the current state without changing it.
func (m *Manager) State(ctx context.Context, id string) (*View, error) {
	ctx, span := tracer.Start(ctx, "session.State", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	unlock := m.locks.Lock(id)
	defer unlock()

	e, err := m.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load session")
		return nil, err
	}
	return &View{
		Result:   engine.Result{Outcome: engine.None, Board: e.Board()},
		Snapshot: e.Snapshot(),
	}, nil
}

// Reset returns the session to the start screen and drops its stored state.
func (m *Manager) Reset(ctx context.Context, id string) (*View, error) {
	ctx, span := tracer.Start(ctx, "session.Reset", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	unlock := m.locks.Lock(id)
	defer unlock()

	e, err := m.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load session")
		return nil, err
	}
	e.ResetToStart()

	if err := m.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete session")
		return nil, fmt.Errorf("failed to delete session %s: %w", id, err)
	}

	m.publish(ctx, events.TypeSessionReset, events.SessionResetPayload{SessionID: id})
	slog.InfoContext(ctx, "session reset", "session.id", id)

	return &View{
		Result:   engine.Result{Outcome: engine.None, Board: e.Board()},
		Snapshot: e.Snapshot(),
	}, nil
}

func (m *Manager) apply(ctx context.Context, name, id string, op func(*engine.Engine) engine.Result, attrs ...attribute.KeyValue) (*View, error) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(
		append(attrs, attribute.String("session.id", id))...,
	))
	defer span.End()

	unlock := m.locks.Lock(id)
	defer unlock()

	e, err := m.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load session")
		return nil, err
	}

	res := op(e)
	snap := e.Snapshot()
	span.SetAttributes(
		attribute.String("game.outcome", string(res.Outcome)),
		attribute.Int("board.size", snap.BoardSize),
	)

	// Ignored input leaves the engine untouched, so there is nothing to save.
	if res.Outcome == engine.None {
		return &View{Result: res, Snapshot: snap}, nil
	}

	if err := m.store.Save(ctx, id, snap); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
		return nil, fmt.Errorf("failed to save session %s: %w", id, err)
	}

	m.metrics.record(ctx, res)
	m.announce(ctx, id, res)

	return &View{Result: res, Snapshot: snap}, nil
}

// load returns the engine for id. Unknown or expired sessions, and stored
// state that no longer passes validation, start over on the start screen.
func (m *Manager) load(ctx context.Context, id string) (*engine.Engine, error) {
	snap, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return engine.New(m.engineOpts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	e, err := engine.Restore(snap, m.engineOpts...)
	if err != nil {
		slog.WarnContext(ctx, "discarding unusable session state", "session.id", id, "error", err)
		return engine.New(m.engineOpts...), nil
	}
	return e, nil
}

func (m *Manager) announce(ctx context.Context, id string, res engine.Result) {
	switch res.Outcome {
	case engine.PlayerWin:
		slog.InfoContext(ctx, "player won, board grown", "session.id", id, "board.size", res.BoardSize)
		m.publish(ctx, events.TypeBoardGrown, events.BoardGrownPayload{
			SessionID: id,
			BoardSize: res.BoardSize,
		})
	case engine.BotWin, engine.Draw:
		slog.InfoContext(ctx, "round finished", "session.id", id, "outcome", res.Outcome, "board.size", res.Board.Size())
		m.publish(ctx, events.TypeRoundFinished, events.RoundFinishedPayload{
			SessionID: id,
			Outcome:   string(res.Outcome),
			BoardSize: res.Board.Size(),
		})
	}
}

// publish is best effort; a failure is logged and never fails the request.
func (m *Manager) publish(ctx context.Context, eventType string, payload any) {
	span := trace.SpanFromContext(ctx)

	event, err := events.New(eventType, payload)
	if err == nil {
		err = m.publisher.Publish(ctx, event)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to publish event", "event", eventType, "error", err)
		span.RecordError(err)
	}
}
