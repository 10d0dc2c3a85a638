// Package bot ships the reference clients the server can spawn
// in-process: a caller, a random player, and a deliberately broken
// client that never sends a valid action.
package bot

import (
	"context"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/pokerbots/arena/internal/game"
)

const randomBotRaiseAmount = 5

// respondFunc maps one state frame to the reply, or nil for no reply.
type respondFunc func(frame []byte) []byte

// RunCall plays the simplest viable game: call every single turn.
func RunCall(ctx context.Context, url string, logger *log.Logger) error {
	reply := game.EmitAction(game.HandAction{Kind: game.Call})
	return run(ctx, url, logger.WithPrefix("call-bot"), func([]byte) []byte {
		return reply
	})
}

// RunRandom picks uniformly between folding, checking, calling, and a
// small raise.
func RunRandom(ctx context.Context, url string, seed int64, logger *log.Logger) error {
	rng := rand.New(rand.NewSource(seed))
	return run(ctx, url, logger.WithPrefix("random-bot"), func([]byte) []byte {
		switch rng.Intn(4) {
		case 0:
			return game.EmitAction(game.HandAction{Kind: game.Fold})
		case 1:
			return game.EmitAction(game.HandAction{Kind: game.Check})
		case 2:
			return game.EmitAction(game.HandAction{Kind: game.Call})
		default:
			return game.EmitAction(game.HandAction{Kind: game.Raise, Amount: randomBotRaiseAmount})
		}
	})
}

// RunBroken answers every turn with a frame that is not an action at
// all, so the server folds it every time.
func RunBroken(ctx context.Context, url string, logger *log.Logger) error {
	return run(ctx, url, logger.WithPrefix("broken-bot"), func([]byte) []byte {
		return []byte("this is not an action")
	})
}

// run dials the server and answers every state frame until the socket
// closes. A closed socket is the normal end of a game, not an error.
func run(ctx context.Context, url string, logger *log.Logger, respond respondFunc) error {
	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		logger.Error("failed to dial server", "url", url, "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	// Unblock the read loop if the caller gives up on the game.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	logger.Debug("connected", "url", url)
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("connection closed", "error", err)
			return nil
		}
		if reply := respond(frame); reply != nil {
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				logger.Debug("write failed", "error", err)
				return nil
			}
		}
	}
}
