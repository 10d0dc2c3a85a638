package server

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerbots/arena/internal/evaluator"
	"github.com/pokerbots/arena/internal/game"
)

// A responsive caller against a silent seat: every one of the silent
// seat's turns times out into a fold, which drains it of antes until
// the game ends on its own.
func TestRunGameCompletesAgainstSilentSeat(t *testing.T) {
	caller, callerClient := newSeatPair(t)
	silent, silentClient := newSeatPair(t)

	go func() {
		for {
			if _, _, err := callerClient.ReadMessage(); err != nil {
				return
			}
			if err := callerClient.WriteMessage(websocket.TextMessage, []byte(`{"action":"call"}`)); err != nil {
				return
			}
		}
	}()
	go func() {
		for {
			if _, _, err := silentClient.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger := log.New(io.Discard)
	table := game.NewTable(2, evaluator.New(), rand.New(rand.NewSource(3)), logger)
	transport := testTransport(5 * time.Millisecond)

	results := RunGame(table, []*Seat{caller, silent}, transport, logger)

	require.True(t, table.IsGameOver())
	assert.Contains(t, results, "Rank:  1")
	assert.Contains(t, results, "Rank:  2")
	assert.Contains(t, results, "Death Round:,")
}

// A seat whose connection is already gone cannot even be pushed to,
// so the loop folds for it and still finishes the game.
func TestRunGameFoldsUnreachableSeat(t *testing.T) {
	caller, callerClient := newSeatPair(t)
	dead, deadClient := newSeatPair(t)
	_ = deadClient.Close()
	_ = dead.Close()

	go func() {
		for {
			if _, _, err := callerClient.ReadMessage(); err != nil {
				return
			}
			if err := callerClient.WriteMessage(websocket.TextMessage, []byte(`{"action":"call"}`)); err != nil {
				return
			}
		}
	}()

	logger := log.New(io.Discard)
	table := game.NewTable(2, evaluator.New(), rand.New(rand.NewSource(9)), logger)
	transport := testTransport(time.Second)

	results := RunGame(table, []*Seat{caller, dead}, transport, logger)
	require.True(t, table.IsGameOver())
	assert.NotEmpty(t, results)
}
