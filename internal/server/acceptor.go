package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Acceptor upgrades incoming HTTP requests to WebSocket seats and
// queues them until the game collects its table.
type Acceptor struct {
	upgrader websocket.Upgrader
	incoming chan *Seat
	logger   *log.Logger
}

// NewAcceptor creates an acceptor with room for a full table.
func NewAcceptor(logger *log.Logger, maxSeats int) *Acceptor {
	return &Acceptor{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		incoming: make(chan *Seat, maxSeats),
		logger:   logger.WithPrefix("acceptor"),
	}
}

// ServeHTTP upgrades one connection. Connections past the seat limit
// are dropped immediately.
func (a *Acceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	seat := NewSeat(conn, a.logger)
	select {
	case a.incoming <- seat:
		a.logger.Info("client connected", "remote", conn.RemoteAddr().String())
	default:
		a.logger.Warn("table is full, dropping connection", "remote", conn.RemoteAddr().String())
		_ = seat.Close()
	}
}

// Collect gathers seats until the window expires, the table fills, or
// the context is cancelled. The window runs from the moment Collect is
// called; a slow fifth connection does not extend it.
func (a *Acceptor) Collect(ctx context.Context, clock quartz.Clock, window time.Duration, maxSeats int) []*Seat {
	expired := make(chan struct{})
	timer := clock.AfterFunc(window, func() { close(expired) })
	defer timer.Stop()

	var seats []*Seat
	for len(seats) < maxSeats {
		select {
		case seat := <-a.incoming:
			seats = append(seats, seat)
		case <-expired:
			a.logger.Info("acceptance window closed", "seats", len(seats))
			return seats
		case <-ctx.Done():
			return seats
		}
	}
	a.logger.Info("table is full", "seats", len(seats))
	return seats
}
