package server

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerbots/arena/internal/game"
)

func startAcceptor(t *testing.T, maxSeats int) (*Acceptor, string) {
	t.Helper()
	acceptor := NewAcceptor(log.New(io.Discard), maxSeats)
	srv := httptest.NewServer(acceptor)
	t.Cleanup(srv.Close)
	return acceptor, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestCollectGathersSeatsUntilWindowCloses(t *testing.T) {
	acceptor, url := startAcceptor(t, game.MaxPlayers)
	dial(t, url)
	dial(t, url)

	seats := acceptor.Collect(context.Background(), quartz.NewReal(), 200*time.Millisecond, game.MaxPlayers)
	assert.Len(t, seats, 2)
}

func TestCollectStopsWhenTableIsFull(t *testing.T) {
	acceptor, url := startAcceptor(t, game.MaxPlayers)
	dial(t, url)
	dial(t, url)

	// With a one hour window, only the seat cap can end collection.
	seats := acceptor.Collect(context.Background(), quartz.NewReal(), time.Hour, 2)
	assert.Len(t, seats, 2)
}

func TestCollectReturnsEmptyWhenNobodyConnects(t *testing.T) {
	acceptor, _ := startAcceptor(t, game.MaxPlayers)
	seats := acceptor.Collect(context.Background(), quartz.NewReal(), 20*time.Millisecond, game.MaxPlayers)
	assert.Empty(t, seats)
}

func TestCollectHonoursContextCancellation(t *testing.T) {
	acceptor, _ := startAcceptor(t, game.MaxPlayers)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seats := acceptor.Collect(ctx, quartz.NewReal(), time.Hour, game.MaxPlayers)
	assert.Empty(t, seats)
}
