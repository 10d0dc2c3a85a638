// Package evaluator ranks 7-card poker hands. It wraps the
// chehsunliu/poker lookup-table evaluator behind a small total order so
// the game engine never depends on the library's card type.
package evaluator

import (
	"fmt"
	"strings"

	chpoker "github.com/chehsunliu/poker"

	"github.com/pokerbots/arena/internal/deck"
)

// Evaluator is a stateless, shareable hand ranker.
type Evaluator struct{}

// New creates an Evaluator. A single instance can be shared freely.
func New() *Evaluator {
	return &Evaluator{}
}

// Rank returns the strength of the best 5-card hand within cards.
// Lower values are stronger. Exactly 7 cards are expected.
func (e *Evaluator) Rank(cards []deck.Card) int32 {
	if len(cards) != 7 {
		panic(fmt.Sprintf("evaluator needs 7 cards, got %d", len(cards)))
	}
	converted := make([]chpoker.Card, len(cards))
	for i, c := range cards {
		converted[i] = convert(c)
	}
	return chpoker.Evaluate(converted)
}

// Compare orders two 7-card hands. The result is negative when a is
// stronger, positive when b is stronger, and zero on a tie.
func (e *Evaluator) Compare(a, b []deck.Card) int {
	ra, rb := e.Rank(a), e.Rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// Describe returns a human-readable class for a rank ("Straight", "Pair", ...).
func Describe(rank int32) string {
	return chpoker.RankString(rank)
}

// convert maps a deck card to the library's card type. The library
// parses "<rank><suit>" with a lower-case suit letter.
func convert(c deck.Card) chpoker.Card {
	return chpoker.NewCard(c.Rank.String() + strings.ToLower(c.Suit.String()))
}
