package server

import (
	"github.com/charmbracelet/log"

	"github.com/pokerbots/arena/internal/game"
)

// RunGame drives a table to completion: push the current player's
// view, pull their action, apply it, repeat. A seat that cannot even
// be pushed to gets folded on the spot. Returns the final standings.
func RunGame(table *game.Table, seats []*Seat, transport *Transport, logger *log.Logger) string {
	logger = logger.WithPrefix("loop")
	for !table.IsGameOver() {
		seat := seats[table.CurrentPlayerIndex()]
		if err := transport.Push(seat, table.CurrentView().Encode()); err != nil {
			table.TakeAction(game.HandAction{Kind: game.Fold})
			continue
		}
		table.TakeAction(transport.Pull(seat))
	}

	results := table.Results()
	logger.Info("game is over", "hands", table.HandNumber())
	return results
}
