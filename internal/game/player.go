package game

import (
	"fmt"

	"github.com/pokerbots/arena/internal/deck"
)

// StartingMoney is every seat's initial stack.
const StartingMoney int32 = 500

// Player is one seat at the table. The seat id is assigned at
// construction and never changes. A player is "dead" once
// DeathHandNumber is set; dead players stay folded and are skipped by
// every deal and turn walk until the process ends.
type Player struct {
	ID         int8
	TotalMoney int32

	// Active distinguishes the two per-hand states: a folded player
	// has no hole cards and no live bet.
	Active     bool
	Hole       [2]deck.Card
	CurrentBet int32

	// DeathHandNumber is 0 while the player is alive. Hand numbers are
	// 1-indexed, so 0 is never a valid death hand.
	DeathHandNumber int32

	HasHadTurnThisRound bool
}

// NewPlayer creates a live, folded player with the starting stack.
func NewPlayer(id int8) *Player {
	return &Player{ID: id}
}

// IsAlive reports whether the player is still in the game.
func (p *Player) IsAlive() bool {
	return p.DeathHandNumber == 0
}

// Deal gives the player a fresh hand. The per-hand bet resets to zero
// and the turn flag clears. The player must be alive.
func (p *Player) Deal(hole [2]deck.Card) {
	if !p.IsAlive() {
		panic(fmt.Sprintf("dealt cards to dead player %d", p.ID))
	}
	p.Active = true
	p.Hole = hole
	p.CurrentBet = 0
	p.HasHadTurnThisRound = false
}

// Fold takes the player out of the hand. Money already pushed into the
// pot stays there. Folding a folded player is an invariant violation.
func (p *Player) Fold() {
	if !p.Active {
		panic(fmt.Sprintf("player %d folded while not active", p.ID))
	}
	p.HasHadTurnThisRound = true
	p.Active = false
}

// Bet moves up to amount from the player's stack into their per-hand
// bet and returns how much was actually paid. A bet past the stack is
// clamped, which is what puts a player all-in. Bet(0) is a legal check
// and still counts as taking a turn.
func (p *Player) Bet(amount int32) int32 {
	if !p.Active {
		panic(fmt.Sprintf("player %d bet while not active", p.ID))
	}
	p.HasHadTurnThisRound = true
	paid := min(amount, p.TotalMoney)
	p.TotalMoney -= paid
	p.CurrentBet += paid
	return paid
}

// Compare orders players for the final results, largest is best:
// both alive compare by money, an alive player beats a dead one, and
// two dead players compare by how late they died.
func (p *Player) Compare(other *Player) int {
	switch {
	case p.IsAlive() && other.IsAlive():
		return int(p.TotalMoney - other.TotalMoney)
	case p.IsAlive():
		return 1
	case other.IsAlive():
		return -1
	default:
		return int(p.DeathHandNumber - other.DeathHandNumber)
	}
}

// PlayerView is the JSON shape of a player inside a table state frame.
type PlayerView struct {
	ID          int8      `json:"id"`
	TotalMoney  int32     `json:"total_money"`
	PlayerState StateView `json:"player_state"`
}

// StateView carries the player's per-hand state. Details is omitted
// for folded players.
type StateView struct {
	StateType string      `json:"state_type"`
	Details   *ActiveView `json:"details,omitempty"`
}

// ActiveView is the active-state payload. Hand is only populated for
// the full (secret-bearing) view.
type ActiveView struct {
	Bet  int32    `json:"bet"`
	Hand []string `json:"hand,omitempty"`
}

// View renders the player for the wire. With includeHole false the
// hole cards never appear, which is the only projection other seats
// ever receive.
func (p *Player) View(includeHole bool) PlayerView {
	view := PlayerView{
		ID:          p.ID,
		TotalMoney:  p.TotalMoney,
		PlayerState: StateView{StateType: "folded"},
	}
	if p.Active {
		details := &ActiveView{Bet: p.CurrentBet}
		if includeHole {
			details.Hand = []string{p.Hole[0].String(), p.Hole[1].String()}
		}
		view.PlayerState = StateView{StateType: "active", Details: details}
	}
	return view
}
