package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pokerbots/arena/internal/game"
)

// Transport moves table state out to seats and actions back in. Every
// failure mode on the inbound side degrades to a Fold so the game can
// always make progress no matter what a client does.
type Transport struct {
	clock        quartz.Clock
	readDeadline time.Duration
	logger       *log.Logger
}

// NewTransport creates a transport with the given per-turn deadline.
func NewTransport(clock quartz.Clock, readDeadline time.Duration, logger *log.Logger) *Transport {
	return &Transport{
		clock:        clock,
		readDeadline: readDeadline,
		logger:       logger.WithPrefix("transport"),
	}
}

// Push sends a state frame to a seat.
func (t *Transport) Push(seat *Seat, payload []byte) error {
	if err := seat.Send(payload); err != nil {
		t.logger.Warn("failed to push state to seat", "error", err)
		return err
	}
	return nil
}

// Pull waits for the seat's next action. A dead connection, a frame
// that does not parse, or a missed deadline all come back as Fold.
func (t *Transport) Pull(seat *Seat) game.HandAction {
	expired := make(chan struct{})
	timer := t.clock.AfterFunc(t.readDeadline, func() { close(expired) })
	defer timer.Stop()

	select {
	case frame, ok := <-seat.Frames():
		if !ok {
			t.logger.Warn("seat closed while waiting for action, folding")
			return game.HandAction{Kind: game.Fold}
		}
		action, err := game.ParseAction([]byte(frame))
		if err != nil {
			t.logger.Warn("could not parse action, folding", "error", err, "frame", frame)
			return game.HandAction{Kind: game.Fold}
		}
		return action

	case <-expired:
		t.logger.Warn("seat missed the action deadline, folding", "deadline", t.readDeadline)
		return game.HandAction{Kind: game.Fold}
	}
}
