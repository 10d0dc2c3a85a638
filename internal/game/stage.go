package game

// Stage identifies one of the four betting rounds of a hand.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
)

// Next returns the following stage. River wraps back to PreFlop; the
// wrap is only ever taken when a new hand is dealt.
func (s Stage) Next() Stage {
	switch s {
	case PreFlop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	default:
		return PreFlop
	}
}

// String returns the lower-case stage name.
func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}
