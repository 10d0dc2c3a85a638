package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerbots/arena/internal/deck"
)

func testHole() [2]deck.Card {
	return [2]deck.Card{
		deck.NewCard(deck.Ace, deck.Clubs),
		deck.NewCard(deck.Ace, deck.Hearts),
	}
}

func TestPlayerDealResetsHand(t *testing.T) {
	p := NewPlayer(3)
	p.TotalMoney = StartingMoney
	p.Deal(testHole())
	assert.True(t, p.Active)
	assert.Equal(t, int32(0), p.CurrentBet)

	p.Bet(20)
	p.Deal(testHole())
	assert.Equal(t, int32(0), p.CurrentBet)
	assert.False(t, p.HasHadTurnThisRound)
}

func TestPlayerBetAccumulates(t *testing.T) {
	p := NewPlayer(0)
	p.TotalMoney = StartingMoney
	p.Deal(testHole())
	for i := 0; i < 3; i++ {
		paid := p.Bet(20)
		assert.Equal(t, int32(20), paid)
	}
	assert.Equal(t, int32(60), p.CurrentBet)
	assert.Equal(t, StartingMoney-60, p.TotalMoney)
}

func TestPlayerBetClampsToStack(t *testing.T) {
	p := NewPlayer(0)
	p.TotalMoney = 30
	p.Deal(testHole())
	paid := p.Bet(100)
	assert.Equal(t, int32(30), paid)
	assert.Equal(t, int32(30), p.CurrentBet)
	assert.Equal(t, int32(0), p.TotalMoney)

	// All-in players can still check.
	paid = p.Bet(0)
	assert.Equal(t, int32(0), paid)
	assert.True(t, p.HasHadTurnThisRound)
}

func TestPlayerFoldTwicePanics(t *testing.T) {
	p := NewPlayer(0)
	p.TotalMoney = StartingMoney
	p.Deal(testHole())
	p.Fold()
	assert.Panics(t, func() { p.Fold() })
}

func TestPlayerBetWhileFoldedPanics(t *testing.T) {
	p := NewPlayer(0)
	p.TotalMoney = StartingMoney
	p.Deal(testHole())
	p.Fold()
	assert.Panics(t, func() { p.Bet(10) })
}

func TestDealToDeadPlayerPanics(t *testing.T) {
	p := NewPlayer(0)
	p.TotalMoney = 0
	p.DeathHandNumber = 4
	assert.Panics(t, func() { p.Deal(testHole()) })
}

func TestPlayerCompare(t *testing.T) {
	rich := NewPlayer(0)
	rich.TotalMoney = 600
	poor := NewPlayer(1)
	poor.TotalMoney = 100
	earlyDeath := NewPlayer(2)
	earlyDeath.DeathHandNumber = 3
	lateDeath := NewPlayer(3)
	lateDeath.DeathHandNumber = 9

	assert.Positive(t, rich.Compare(poor))
	assert.Negative(t, poor.Compare(rich))
	assert.Positive(t, poor.Compare(lateDeath))
	assert.Positive(t, lateDeath.Compare(earlyDeath))
	assert.Zero(t, rich.Compare(rich))
}

func TestPlayerViewHidesHoleCards(t *testing.T) {
	p := NewPlayer(5)
	p.TotalMoney = StartingMoney
	p.Deal(testHole())
	p.Bet(7)

	public := p.View(false)
	require.Equal(t, "active", public.PlayerState.StateType)
	assert.Equal(t, int32(7), public.PlayerState.Details.Bet)
	assert.Empty(t, public.PlayerState.Details.Hand)

	private := p.View(true)
	assert.Equal(t, []string{"AC", "AH"}, private.PlayerState.Details.Hand)

	p.Fold()
	folded := p.View(false)
	assert.Equal(t, "folded", folded.PlayerState.StateType)
	assert.Nil(t, folded.PlayerState.Details)
}
