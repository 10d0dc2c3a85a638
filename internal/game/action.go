package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionKind enumerates the player actions.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

// HandAction is one decision by a player. Amount is meaningful only
// for Raise, where it is the raise over the call amount.
type HandAction struct {
	Kind   ActionKind
	Amount int32
}

// String returns the log form of the action ("Fold", "Raise: 23").
func (a HandAction) String() string {
	switch a.Kind {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return fmt.Sprintf("Raise: %d", a.Amount)
	default:
		return "Unknown"
	}
}

// wireAction is the JSON wire form of a HandAction.
type wireAction struct {
	Action string       `json:"action"`
	Amount *json.Number `json:"amount,omitempty"`
}

// ParseAction decodes a client action frame. The action tag is matched
// case-insensitively. A raise requires an integer amount; quoted
// numbers, floats, and scientific notation are rejected. ParseAction
// never panics, all failures come back as errors.
func ParseAction(data []byte) (HandAction, error) {
	var wire wireAction
	if err := json.Unmarshal(data, &wire); err != nil {
		return HandAction{}, fmt.Errorf("malformed action frame: %w", err)
	}

	switch strings.ToLower(wire.Action) {
	case "fold":
		return HandAction{Kind: Fold}, nil
	case "check":
		return HandAction{Kind: Check}, nil
	case "call":
		return HandAction{Kind: Call}, nil
	case "raise":
		if wire.Amount == nil {
			return HandAction{}, fmt.Errorf("raise is missing an amount")
		}
		n, err := wire.Amount.Int64()
		if err != nil {
			return HandAction{}, fmt.Errorf("raise amount %q is not an integer: %w", wire.Amount.String(), err)
		}
		if n < 0 || n > int64(int32(^uint32(0)>>1)) {
			return HandAction{}, fmt.Errorf("raise amount %d is out of range", n)
		}
		return HandAction{Kind: Raise, Amount: int32(n)}, nil
	default:
		return HandAction{}, fmt.Errorf("unknown action %q", wire.Action)
	}
}

// EmitAction encodes an action in the wire form accepted by ParseAction.
func EmitAction(a HandAction) []byte {
	wire := wireAction{}
	switch a.Kind {
	case Fold:
		wire.Action = "fold"
	case Check:
		wire.Action = "check"
	case Call:
		wire.Action = "call"
	case Raise:
		wire.Action = "raise"
		amount := json.Number(fmt.Sprintf("%d", a.Amount))
		wire.Amount = &amount
	}
	data, err := json.Marshal(wire)
	if err != nil {
		panic(fmt.Sprintf("marshaling a wire action cannot fail: %v", err))
	}
	return data
}
