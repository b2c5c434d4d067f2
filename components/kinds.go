package components

import "fmt"

// ShipType is the behavioural variant of a ship.
type ShipType uint8

const (
	// Greedy fishes a cell until it is empty, then drifts to a random nearby cell.
	Greedy ShipType = iota
	// Lazy never moves.
	Lazy
	// Restless moves one cell right after every catch.
	Restless

	NumShipTypes = 3
)

// Valid reports whether t is one of the defined ship types.
func (t ShipType) Valid() bool { return t < NumShipTypes }

func (t ShipType) String() string {
	switch t {
	case Greedy:
		return "greedy"
	case Lazy:
		return "lazy"
	case Restless:
		return "restless"
	default:
		return fmt.Sprintf("ShipType(%d)", uint8(t))
	}
}

// ShipState is the phase of a ship's state machine.
type ShipState uint8

const (
	StateFloating ShipState = iota
	StateFishing
	StateFinishing
	StateDead

	NumShipStates = 4
)

func (s ShipState) String() string {
	switch s {
	case StateFloating:
		return "floating"
	case StateFishing:
		return "fishing"
	case StateFinishing:
		return "finishing"
	case StateDead:
		return "dead"
	default:
		return fmt.Sprintf("ShipState(%d)", uint8(s))
	}
}
