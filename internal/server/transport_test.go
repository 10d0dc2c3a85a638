package server

import (
	"io"
	"net/http"
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

// newSeatPair upgrades one WebSocket connection and hands back both
// ends: the server-side Seat and the raw client connection.
func newSeatPair(t *testing.T) (*Seat, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	seats := make(chan *Seat, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		seats <- NewSeat(conn, log.New(io.Discard))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	seat := <-seats
	t.Cleanup(func() { _ = seat.Close() })
	return seat, client
}

func testTransport(deadline time.Duration) *Transport {
	return NewTransport(quartz.NewReal(), deadline, log.New(io.Discard))
}

func TestSeatRoundTrip(t *testing.T) {
	seat, client := newSeatPair(t)

	require.NoError(t, seat.Send([]byte("state")))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "state", string(payload))

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("reply")))
	assert.Equal(t, "reply", <-seat.Frames())
}

func TestSeatSendAfterCloseFails(t *testing.T) {
	seat, _ := newSeatPair(t)
	require.NoError(t, seat.Close())
	err := seat.Send([]byte("state"))
	assert.ErrorIs(t, err, ErrSeatClosed)
}

func TestPullParsesAction(t *testing.T) {
	seat, client := newSeatPair(t)
	tr := testTransport(5 * time.Second)

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"action":"raise","amount":5}`)))
	action := tr.Pull(seat)
	assert.Equal(t, game.HandAction{Kind: game.Raise, Amount: 5}, action)
}

func TestPullFoldsOnGarbage(t *testing.T) {
	seat, client := newSeatPair(t)
	tr := testTransport(5 * time.Second)

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("not an action")))
	action := tr.Pull(seat)
	assert.Equal(t, game.HandAction{Kind: game.Fold}, action)
}

func TestPullFoldsWhenSeatCloses(t *testing.T) {
	seat, client := newSeatPair(t)
	tr := testTransport(5 * time.Second)

	require.NoError(t, client.Close())
	action := tr.Pull(seat)
	assert.Equal(t, game.HandAction{Kind: game.Fold}, action)
}

func TestPullFoldsOnDeadline(t *testing.T) {
	seat, _ := newSeatPair(t)
	tr := testTransport(20 * time.Millisecond)

	// The client never answers.
	action := tr.Pull(seat)
	assert.Equal(t, game.HandAction{Kind: game.Fold}, action)
}
