package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "AC", NewCard(Ace, Clubs).String())
	assert.Equal(t, "KH", NewCard(King, Hearts).String())
	assert.Equal(t, "TS", NewCard(Ten, Spades).String())
	assert.Equal(t, "2D", NewCard(Two, Diamonds).String())
	assert.Equal(t, "9C", NewCard(Nine, Clubs).String())
}

func TestRankOrdering(t *testing.T) {
	assert.True(t, Ace > King)
	assert.True(t, King > Queen)
	assert.True(t, Three > Two)
	assert.Equal(t, 2, int(Two))
	assert.Equal(t, 14, int(Ace))
}
