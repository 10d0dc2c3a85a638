package game

import "fmt"

// LogEntry is one event in a hand's action log. The string forms are
// what clients see in the actions / previous_actions arrays.
type LogEntry interface {
	String() string
}

// DealEntry opens every hand's log. The dealer index recorded here is
// the button position before it advances for the new hand.
type DealEntry struct {
	HandNumber        int32
	DealerButtonIndex int
}

func (e DealEntry) String() string {
	return fmt.Sprintf("Table dealt round hand number: %d, dealer index: %d.", e.HandNumber, e.DealerButtonIndex)
}

// ActionEntry records the effective action a seat took. A check into a
// live bet is logged as the Fold it became, and a clamped raise is
// logged with the amount actually paid.
type ActionEntry struct {
	Seat   int8
	Action HandAction
}

func (e ActionEntry) String() string {
	return fmt.Sprintf("Player %d took action %s.", e.Seat, e.Action)
}

// AdvanceEntry records a stage transition.
type AdvanceEntry struct {
	To Stage
}

func (e AdvanceEntry) String() string {
	return fmt.Sprintf("Table advanced to %s.", e.To)
}

// ShowdownEntry closes a hand's log with the resolution report.
type ShowdownEntry struct {
	Reason string
}

func (e ShowdownEntry) String() string {
	return fmt.Sprintf("Table evaluated hand with the following result: %s", e.Reason)
}

// entryStrings renders a log for the wire.
func entryStrings(entries []LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
