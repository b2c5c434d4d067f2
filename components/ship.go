// Package components defines the packed per-ship record used by the simulation.
//
// A ship's whole state lives in a single 64-bit word. The field layout table
// below is the only place bit positions are defined; everything else goes
// through Get/With or the typed accessors.
package components

import "fmt"

// Ship is one boat's full state packed into a machine word.
type Ship uint64

// Field identifies one packed field of a Ship.
type Field uint8

const (
	FieldType Field = iota
	FieldState
	FieldCountdown
	FieldCatch
	FieldPosition
	FieldOffsetX
	FieldOffsetY
	numFields
)

// fieldLayout holds shift and width per field, least significant bit first.
// Bits 62-63 are reserved.
var fieldLayout = [numFields]struct {
	shift uint8
	width uint8
	name  string
}{
	FieldType:      {0, 2, "type"},
	FieldState:     {2, 2, "state"},
	FieldCountdown: {4, 2, "countdown"},
	FieldCatch:     {6, 14, "catch"},
	FieldPosition:  {20, 34, "position"},
	FieldOffsetX:   {54, 4, "offset_x"},
	FieldOffsetY:   {58, 4, "offset_y"},
}

// Field capacity limits.
const (
	MaxCountdown = 1<<2 - 1
	MaxCatch     = 1<<14 - 1
	MaxPosition  = 1<<34 - 1

	// OffsetBias maps the signed offset range -8..+7 onto the unsigned 0..15 field.
	OffsetBias = 8
	MinOffset  = -OffsetBias
	MaxOffset  = 1<<4 - 1 - OffsetBias
)

func (f Field) String() string {
	if f >= numFields {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fieldLayout[f].name
}

// Mask returns the unshifted bit mask for the field.
func (f Field) Mask() uint64 {
	if f >= numFields {
		panic(fmt.Sprintf("components: unknown ship field %d", uint8(f)))
	}
	return 1<<fieldLayout[f].width - 1
}

// Get reads the raw value of a field.
func (s Ship) Get(f Field) uint64 {
	mask := f.Mask()
	return uint64(s) >> fieldLayout[f].shift & mask
}

// With returns a copy of s with field f set to v. Bits of v above the
// field width are dropped; callers that care must range-check first.
func (s Ship) With(f Field, v uint64) Ship {
	mask := f.Mask()
	shift := fieldLayout[f].shift
	n := uint64(s) &^ (mask << shift)
	n |= (v & mask) << shift
	return Ship(n)
}

// withChecked is With plus a capacity check.
func (s Ship) withChecked(f Field, v uint64) Ship {
	if v > f.Mask() {
		panic(fmt.Sprintf("components: value %d overflows %s field", v, f))
	}
	return s.With(f, v)
}

// NewShip returns a ship that starts out fishing at position with the given
// net countdown and no pending movement.
func NewShip(t ShipType, position uint64, countdown uint8) Ship {
	var s Ship
	s = s.WithType(t)
	s = s.WithState(StateFishing)
	s = s.WithCountdown(countdown)
	s = s.WithPosition(position)
	s = s.WithOffsetX(0)
	s = s.WithOffsetY(0)
	return s
}

func (s Ship) Type() ShipType    { return ShipType(s.Get(FieldType)) }
func (s Ship) State() ShipState  { return ShipState(s.Get(FieldState)) }
func (s Ship) Countdown() uint8  { return uint8(s.Get(FieldCountdown)) }
func (s Ship) Catch() uint64     { return s.Get(FieldCatch) }
func (s Ship) Position() uint64  { return s.Get(FieldPosition) }
func (s Ship) RawOffsetX() uint8 { return uint8(s.Get(FieldOffsetX)) }
func (s Ship) RawOffsetY() uint8 { return uint8(s.Get(FieldOffsetY)) }

// OffsetX returns the remaining horizontal steps, de-biased to -8..+7.
func (s Ship) OffsetX() int { return int(s.Get(FieldOffsetX)) - OffsetBias }

// OffsetY returns the remaining vertical steps, de-biased to -8..+7.
func (s Ship) OffsetY() int { return int(s.Get(FieldOffsetY)) - OffsetBias }

// Alive reports whether the ship still takes part in the simulation.
func (s Ship) Alive() bool { return s.State() != StateDead }

func (s Ship) WithType(t ShipType) Ship {
	if !t.Valid() {
		panic(fmt.Sprintf("components: invalid ship type %d", uint8(t)))
	}
	return s.With(FieldType, uint64(t))
}

func (s Ship) WithState(st ShipState) Ship {
	return s.withChecked(FieldState, uint64(st))
}

func (s Ship) WithCountdown(c uint8) Ship {
	return s.withChecked(FieldCountdown, uint64(c))
}

func (s Ship) WithCatch(c uint64) Ship {
	return s.withChecked(FieldCatch, c)
}

func (s Ship) WithPosition(p uint64) Ship {
	return s.withChecked(FieldPosition, p)
}

// WithOffsetX stores a signed horizontal offset in -8..+7.
func (s Ship) WithOffsetX(dx int) Ship {
	return s.With(FieldOffsetX, biasOffset(dx))
}

// WithOffsetY stores a signed vertical offset in -8..+7.
func (s Ship) WithOffsetY(dy int) Ship {
	return s.With(FieldOffsetY, biasOffset(dy))
}

// WithRawOffsets stores already-biased offsets as drawn from the movement
// distribution (0..15 each).
func (s Ship) WithRawOffsets(rx, ry uint8) Ship {
	s = s.withChecked(FieldOffsetX, uint64(rx))
	return s.withChecked(FieldOffsetY, uint64(ry))
}

func biasOffset(d int) uint64 {
	if d < MinOffset || d > MaxOffset {
		panic(fmt.Sprintf("components: offset %d outside [%d, %d]", d, MinOffset, MaxOffset))
	}
	return uint64(d + OffsetBias)
}

// String formats the ship for debug logs and test failures.
func (s Ship) String() string {
	return fmt.Sprintf("%s/%s pos=%d catch=%d cd=%d off=(%d,%d)",
		s.Type(), s.State(), s.Position(), s.Catch(), s.Countdown(), s.OffsetX(), s.OffsetY())
}
