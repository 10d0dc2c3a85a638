package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pokerbots/arena/internal/deck"
)

// resolveHand pays out the pot, records the resolution in the hand log,
// and deals the next hand. Reached either when all but one player has
// folded or when betting closes on the river.
func (t *Table) resolveHand() {
	var reason strings.Builder
	reason.WriteString("The hand resolved because: ")

	if t.activePlayerCount() == 1 {
		var winner *Player
		for _, p := range t.players {
			if p.Active {
				winner = p
				break
			}
		}
		winner.TotalMoney += t.PotSize()
		for i := range t.playerBets {
			t.playerBets[i] = 0
		}
		fmt.Fprintf(&reason, "The following player won because everyone else folded: %d", winner.ID)
	} else {
		reason.WriteString(t.comparisonHeader())
		classes := t.rankedClasses()
		for index, class := range classes {
			for _, p := range class {
				if p.Active {
					fmt.Fprintf(&reason, "Player %d ranked %d with hand %s %s\n",
						p.ID, index+1, p.Hole[0], p.Hole[1])
				}
			}
		}
		t.payOut(classes)
	}

	t.logger.Info(reason.String())
	t.actions = append(t.actions, ShowdownEntry{Reason: reason.String()})
	t.Deal()
}

// comparisonHeader renders the board for the resolution report.
func (t *Table) comparisonHeader() string {
	flop := "None"
	if t.flop != nil {
		flop = fmt.Sprintf("%s %s %s", t.flop[0], t.flop[1], t.flop[2])
	}
	turn := "None"
	if t.turn != nil {
		turn = t.turn.String()
	}
	river := "None"
	if t.river != nil {
		river = t.river.String()
	}
	return fmt.Sprintf("\nPlayers hands had to be compared.\nFlop: %s\nTurn: %s\nRiver: %s\nThe hands are ranked as follows: \n", flop, turn, river)
}

// board returns the five community cards.
func (t *Table) board() []deck.Card {
	return []deck.Card{t.flop[0], t.flop[1], t.flop[2], *t.turn, *t.river}
}

// compareHands orders two seats by showdown strength. Folded players
// compare equal to each other and lose to any active player, so they
// always land together in the weakest class.
func (t *Table) compareHands(board []deck.Card, a, b *Player) int {
	switch {
	case !a.Active && !b.Active:
		return 0
	case !a.Active:
		return 1
	case !b.Active:
		return -1
	}
	sevenA := append(append([]deck.Card{}, board...), a.Hole[0], a.Hole[1])
	sevenB := append(append([]deck.Card{}, board...), b.Hole[0], b.Hole[1])
	return t.eval.Compare(sevenA, sevenB)
}

// rankedClasses groups the seats into equivalence classes of hand
// strength, strongest class first. The sort is stable so ties keep
// seat order, which keeps remainder-chip payouts deterministic.
func (t *Table) rankedClasses() [][]*Player {
	board := t.board()
	sorted := append([]*Player{}, t.players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t.compareHands(board, sorted[i], sorted[j]) < 0
	})

	classes := [][]*Player{{sorted[0]}}
	for _, p := range sorted[1:] {
		last := classes[len(classes)-1]
		if t.compareHands(board, p, last[0]) > 0 {
			classes = append(classes, nil)
		}
		classes[len(classes)-1] = append(classes[len(classes)-1], p)
	}
	return classes
}

// compareByBet orders a ranking class for the side-pot ladder: folded
// players first (by id, for determinism), then active players by their
// bet, smallest first.
func compareByBet(a, b *Player) int {
	switch {
	case !a.Active && !b.Active:
		return int(a.ID) - int(b.ID)
	case a.Active && !b.Active:
		return 1
	case !a.Active && b.Active:
		return -1
	default:
		return int(a.CurrentBet - b.CurrentBet)
	}
}

// betIncrements converts sorted per-hand bets into the side-pot rungs:
// element i is how much bet i adds over bet i-1. Panics on unsorted
// input because that would silently misallocate pots.
func betIncrements(bets []int32) []int32 {
	increments := make([]int32, len(bets))
	var prev int32
	for i, bet := range bets {
		if bet < prev {
			panic("bets are not sorted smallest first")
		}
		increments[i] = bet - prev
		prev = bet
	}
	return increments
}

// payOut walks the ranking classes strongest first, building the
// side-pot ladder for each class: rung i collects up to that rung's
// increment from every seat's outstanding stake and splits it among
// the class winners whose bet covered the rung. Chips that do not
// divide evenly go one each to the earliest of those winners.
func (t *Table) payOut(classes [][]*Player) {
	for _, class := range classes {
		sorted := append([]*Player{}, class...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByBet(sorted[i], sorted[j]) < 0
		})

		winners := sorted[:0:0]
		for _, p := range sorted {
			if p.Active {
				winners = append(winners, p)
			}
		}
		if len(winners) == 0 {
			continue
		}

		// Rungs come from the winners' total bets for the hand. The
		// collection below caps each take at what a seat still has
		// outstanding, so lower rungs already paid to stronger classes
		// are not collected twice.
		bets := make([]int32, len(winners))
		for i, w := range winners {
			bets[i] = w.CurrentBet
		}

		for i, increment := range betIncrements(bets) {
			if t.PotSize() == 0 {
				return
			}
			var total int32
			for j := range t.playerBets {
				take := min(increment, t.playerBets[j])
				t.playerBets[j] -= take
				total += take
			}
			covered := winners[i:]
			share := total / int32(len(covered))
			remainder := total % int32(len(covered))
			for w, winner := range covered {
				winner.TotalMoney += share
				if int32(w) < remainder {
					winner.TotalMoney++
				}
			}
		}
	}
}

// Results renders the final standings, best first. Live players rank
// by money, then everyone who busted ranks by how long they lasted.
// Tied players share a rank.
func (t *Table) Results() string {
	sorted := append([]*Player{}, t.players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) > 0
	})

	var b strings.Builder
	rank := 1
	for i, p := range sorted {
		if i > 0 && sorted[i-1].Compare(p) != 0 {
			rank = i + 1
		}
		death := "None"
		if !p.IsAlive() {
			death = fmt.Sprintf("%d", p.DeathHandNumber)
		}
		rendered, err := json.Marshal(p.View(true))
		if err != nil {
			panic(fmt.Sprintf("marshaling a player view cannot fail: %v", err))
		}
		fmt.Fprintf(&b, "Rank:%3d, Death Round:,%5s, Player: %s\n", rank, death, rendered)
	}
	return b.String()
}
