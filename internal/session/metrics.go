package session

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/engine"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type metrics struct {
	moves     metric.Int64Counter
	rounds    metric.Int64Counter
	boardSize metric.Int64Histogram
}

func newMetrics() *metrics {
	meter := otel.Meter("session")
	m := &metrics{}

	var err error
	if m.moves, err = meter.Int64Counter("ttt.moves",
		metric.WithDescription("Player moves accepted by the engine")); err != nil {
		otel.Handle(err)
		m.moves = noop.Int64Counter{}
	}
	if m.rounds, err = meter.Int64Counter("ttt.rounds",
		metric.WithDescription("Rounds resolved, by outcome")); err != nil {
		otel.Handle(err)
		m.rounds = noop.Int64Counter{}
	}
	if m.boardSize, err = meter.Int64Histogram("ttt.board.size",
		metric.WithDescription("Board size at which a round resolved")); err != nil {
		otel.Handle(err)
		m.boardSize = noop.Int64Histogram{}
	}
	return m
}

// record counts an accepted move and, when the round resolved, its outcome
// together with the board size it resolved on.
func (m *metrics) record(ctx context.Context, res engine.Result) {
	if res.PlayerMove != nil {
		m.moves.Add(ctx, 1)
	}
	switch res.Outcome {
	case engine.PlayerWin, engine.BotWin, engine.Draw:
		attrs := metric.WithAttributes(attribute.String("outcome", string(res.Outcome)))
		m.rounds.Add(ctx, 1, attrs)
		m.boardSize.Record(ctx, int64(res.Board.Size()), attrs)
	}
}
