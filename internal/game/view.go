package game

import (
	"encoding/json"
	"fmt"
)

// View is the table state frame pushed to the seat whose turn it is.
// Only that seat's hole cards appear; every other player is rendered
// without secret data.
type View struct {
	ID                int8         `json:"id"`
	CurrentBet        int32        `json:"current_bet"`
	Cards             []string     `json:"cards"`
	HandNumber        int32        `json:"hand_number"`
	CurrentHighestBet int32        `json:"current_highest_bet"`
	Flop              []string     `json:"flop"`
	Turn              string       `json:"turn"`
	River             string       `json:"river"`
	DealerButtonIndex int          `json:"dealer_button_index"`
	Players           []PlayerView `json:"players"`
	Actions           []string     `json:"actions"`
	PreviousActions   []string     `json:"previous_actions"`
}

// ViewFor projects the table for one seat. Board cards that have not
// been reached by the current stage render as "Hidden". A folded
// viewer sees no cards and a zero bet.
func (t *Table) ViewFor(seat int) View {
	p := t.players[seat]

	cards := []string{}
	var bet int32
	if p.Active {
		cards = []string{p.Hole[0].String(), p.Hole[1].String()}
		bet = p.CurrentBet
	}

	players := make([]PlayerView, len(t.players))
	for i, other := range t.players {
		players[i] = other.View(false)
	}

	return View{
		ID:                int8(seat),
		CurrentBet:        bet,
		Cards:             cards,
		HandNumber:        t.handNumber,
		CurrentHighestBet: t.CurrentHighestBet(),
		Flop:              t.flopStrings(),
		Turn:              t.turnString(),
		River:             t.riverString(),
		DealerButtonIndex: t.dealerButtonIndex,
		Players:           players,
		Actions:           entryStrings(t.actions),
		PreviousActions:   entryStrings(t.previousActions),
	}
}

// CurrentView projects the table for the seat whose turn it is.
func (t *Table) CurrentView() View {
	return t.ViewFor(t.currentPlayerIndex)
}

func (t *Table) flopStrings() []string {
	if t.flop == nil {
		return []string{"None"}
	}
	if t.stage == PreFlop {
		return []string{"Hidden"}
	}
	return []string{t.flop[0].String(), t.flop[1].String(), t.flop[2].String()}
}

func (t *Table) turnString() string {
	if t.turn == nil {
		return "None"
	}
	if t.stage == PreFlop || t.stage == Flop {
		return "Hidden"
	}
	return t.turn.String()
}

func (t *Table) riverString() string {
	if t.river == nil {
		return "None"
	}
	if t.stage != River {
		return "Hidden"
	}
	return t.river.String()
}

// Encode marshals a view for the wire.
func (v View) Encode() []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshaling a table view cannot fail: %v", err))
	}
	return data
}
