package game

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/pokerbots/arena/internal/deck"
	"github.com/pokerbots/arena/internal/evaluator"
)

// MaxPlayers is the most seats a single table can hold. A 52-card deck
// supports 23 two-card hands plus the five board cards.
const MaxPlayers = 23

const anteIncreaseAmount int32 = 1

// Table is the rules engine for one game. It owns all players, the
// board, the pot ledger, and the hand log, and it is fully
// deterministic given the RNG and the sequence of actions. Nothing in
// here does I/O; the driver feeds actions in and projects views out.
type Table struct {
	players []*Player
	eval    *evaluator.Evaluator
	rng     *rand.Rand
	logger  *log.Logger

	flop  *[3]deck.Card
	turn  *deck.Card
	river *deck.Card

	dealerButtonIndex  int
	ante               int32
	handNumber         int32
	currentPlayerIndex int
	stage              Stage

	// playerBets is the per-seat money pushed into the pot this hand.
	// It is the single source of truth for unpaid stakes: payouts
	// subtract from it, so the money total is conserved at every step.
	playerBets []int32

	anteRoundIncrease int32

	actions         []LogEntry
	previousActions []LogEntry
}

// NewTable seats n players and deals the first hand. The evaluator is
// shared by reference and never mutated.
func NewTable(n int, eval *evaluator.Evaluator, rng *rand.Rand, logger *log.Logger) *Table {
	if n < 1 || n > MaxPlayers {
		panic(fmt.Sprintf("table size %d is outside 1..%d", n, MaxPlayers))
	}
	players := make([]*Player, n)
	for i := range players {
		players[i] = NewPlayer(int8(i))
		players[i].TotalMoney = StartingMoney
	}
	t := &Table{
		players:            players,
		eval:               eval,
		rng:                rng,
		logger:             logger.WithPrefix("table"),
		dealerButtonIndex:  n - 1,
		ante:               1,
		currentPlayerIndex: n - 1,
		stage:              PreFlop,
		playerBets:         make([]int32, n),
		anteRoundIncrease:  int32(2 * n),
	}
	t.Deal()
	return t
}

// PlayerCount returns the number of seats.
func (t *Table) PlayerCount() int {
	return len(t.players)
}

// CurrentPlayerIndex returns the seat the engine is waiting on.
func (t *Table) CurrentPlayerIndex() int {
	return t.currentPlayerIndex
}

// HandNumber returns the 1-indexed number of the hand in progress.
func (t *Table) HandNumber() int32 {
	return t.handNumber
}

// Ante returns the current ante.
func (t *Table) Ante() int32 {
	return t.ante
}

// Stage returns the current betting stage.
func (t *Table) Stage() Stage {
	return t.stage
}

// PotSize is the sum of every seat's stake this hand.
func (t *Table) PotSize() int32 {
	var total int32
	for _, bet := range t.playerBets {
		total += bet
	}
	return total
}

// IsGameOver reports whether exactly one player remains alive. Once
// true the table is frozen: Deal and TakeAction become no-ops.
func (t *Table) IsGameOver() bool {
	alive := 0
	for _, p := range t.players {
		if p.IsAlive() {
			alive++
		}
	}
	return alive == 1
}

// Deal starts the next hand: rolls the log over, marks players that
// can no longer cover the ante as dead, shuffles, deals the board and
// hole cards, collects antes, advances the button, and escalates the
// ante on schedule.
func (t *Table) Deal() {
	if t.IsGameOver() {
		return
	}
	t.handNumber++
	t.resetForNewHand()
	t.markDeaths()

	d := deck.New(t.rng)
	t.dealBoard(d)
	t.dealHoleCardsAndCollectAnte(d)
	t.advanceButtonAndFirstActor()

	if t.handNumber%t.anteRoundIncrease == 0 {
		t.ante += anteIncreaseAmount
	}
}

// resetForNewHand rolls this hand's log into previousActions and opens
// the new log with the deal entry. The dealer index logged is the one
// the hand is dealt from, before the button advances.
func (t *Table) resetForNewHand() {
	t.stage = PreFlop
	t.playerBets = make([]int32, len(t.players))
	t.previousActions = t.actions
	t.actions = []LogEntry{DealEntry{HandNumber: t.handNumber, DealerButtonIndex: t.dealerButtonIndex}}
	t.logger.Info("dealing", "hand", t.handNumber, "ante", t.ante)
}

// markDeaths records the death hand for every live player who cannot
// pay this hand's ante.
func (t *Table) markDeaths() {
	for _, p := range t.players {
		if p.IsAlive() && p.TotalMoney < t.ante {
			p.DeathHandNumber = t.handNumber
			t.logger.Info("player is out", "player", p.ID, "hand", t.handNumber)
		}
	}
}

// dealBoard draws the five community cards. They stay hidden from the
// wire until their stage arrives.
func (t *Table) dealBoard(d *deck.Deck) {
	flop := [3]deck.Card{d.DealOne(), d.DealOne(), d.DealOne()}
	turn := d.DealOne()
	river := d.DealOne()
	t.flop = &flop
	t.turn = &turn
	t.river = &river
}

// dealHoleCardsAndCollectAnte deals two cards to each live player and
// takes the ante. The ante does not count as taking a turn. Dead
// players are forced to folded.
func (t *Table) dealHoleCardsAndCollectAnte(d *deck.Deck) {
	for i, p := range t.players {
		if !p.IsAlive() {
			p.Active = false
			continue
		}
		p.Deal([2]deck.Card{d.DealOne(), d.DealOne()})
		t.playerBets[i] += p.Bet(t.ante)
		p.HasHadTurnThisRound = false
	}
}

// advanceButtonAndFirstActor moves the button to the next live seat
// and points currentPlayerIndex at the first seat past it that can
// act. The button therefore sits immediately counter-clockwise of the
// first actor.
func (t *Table) advanceButtonAndFirstActor() {
	for range t.players {
		t.dealerButtonIndex = (t.dealerButtonIndex + 1) % len(t.players)
		if t.players[t.dealerButtonIndex].IsAlive() {
			break
		}
	}
	t.currentPlayerIndex = t.dealerButtonIndex
	t.advanceToNextActiveSeat()
}

// advanceToNextActiveSeat walks clockwise to the next seat that is
// active and not all-in. If the ante put every remaining player
// all-in there is no such seat; the walk then comes back around to
// where it started, and the next action closes out the hand through
// the round-closure loop.
func (t *Table) advanceToNextActiveSeat() {
	for range t.players {
		t.currentPlayerIndex = (t.currentPlayerIndex + 1) % len(t.players)
		p := t.players[t.currentPlayerIndex]
		if p.TotalMoney == 0 {
			continue
		}
		if p.Active {
			break
		}
	}
}

// CurrentHighestBet is the amount a caller must match: the largest
// per-hand contribution among active players.
func (t *Table) CurrentHighestBet() int32 {
	var highest int32
	for _, p := range t.players {
		if p.Active && p.CurrentBet > highest {
			highest = p.CurrentBet
		}
	}
	return highest
}

// TakeAction applies one action for the current seat, then drives the
// table forward: resolving the hand when one player remains, closing
// betting rounds (several can close at once when everyone is all-in),
// and otherwise advancing the turn.
func (t *Table) TakeAction(action HandAction) {
	if t.IsGameOver() {
		t.logger.Info("game is over, ignoring action", "action", action)
		return
	}
	current := t.players[t.currentPlayerIndex]
	t.logger.Debug("taking action", "player", current.ID, "action", action)
	if !current.Active {
		panic(fmt.Sprintf("action for seat %d which is not active", current.ID))
	}

	t.applyAction(current, action)

	if t.activePlayerCount() == 1 {
		t.resolveHand()
		return
	}

	for t.isBettingOver() && !t.IsGameOver() {
		if t.stage == River {
			t.resolveHand()
			return
		}
		next := t.stage.Next()
		t.actions = append(t.actions, AdvanceEntry{To: next})
		t.stage = next
		t.currentPlayerIndex = t.dealerButtonIndex
		for _, p := range t.players {
			p.HasHadTurnThisRound = false
		}
	}

	t.advanceToNextActiveSeat()
}

// applyAction performs the money movement for one action and logs the
// effective action taken.
func (t *Table) applyAction(current *Player, action HandAction) {
	diff := t.CurrentHighestBet() - current.CurrentBet

	switch action.Kind {
	case Fold:
		current.Fold()
		t.actions = append(t.actions, ActionEntry{Seat: current.ID, Action: HandAction{Kind: Fold}})

	case Check:
		if diff == 0 {
			current.Bet(0)
			t.actions = append(t.actions, ActionEntry{Seat: current.ID, Action: HandAction{Kind: Check}})
		} else {
			// Checking into a live bet costs the hand.
			current.Fold()
			t.actions = append(t.actions, ActionEntry{Seat: current.ID, Action: HandAction{Kind: Fold}})
		}

	case Call:
		paid := current.Bet(diff)
		t.playerBets[current.ID] += paid
		t.actions = append(t.actions, ActionEntry{Seat: current.ID, Action: HandAction{Kind: Call}})

	case Raise:
		// Pot-limit: the raise over the call may not exceed the pot as
		// it stood before this bet.
		acceptable := min(action.Amount+diff, t.PotSize()+diff)
		paid := current.Bet(acceptable)
		t.playerBets[current.ID] += paid
		t.actions = append(t.actions, ActionEntry{Seat: current.ID, Action: HandAction{Kind: Raise, Amount: paid}})
	}
}

// activePlayerCount counts seats still in the hand.
func (t *Table) activePlayerCount() int {
	count := 0
	for _, p := range t.players {
		if p.Active {
			count++
		}
	}
	return count
}

// isBettingOver reports whether the current round is closed: every
// active player has taken a turn or is all-in, and every active player
// with money left has matched the highest bet.
func (t *Table) isBettingOver() bool {
	return t.allPlayersReady() && t.allActiveBetsEqual()
}

func (t *Table) allPlayersReady() bool {
	for _, p := range t.players {
		if p.Active && !p.HasHadTurnThisRound && p.TotalMoney != 0 {
			return false
		}
	}
	return true
}

func (t *Table) allActiveBetsEqual() bool {
	highest := t.CurrentHighestBet()
	for _, p := range t.players {
		if p.Active && p.TotalMoney != 0 && p.CurrentBet != highest {
			return false
		}
	}
	return true
}
