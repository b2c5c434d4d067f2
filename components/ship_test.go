package components

import (
	"math/rand"
	"testing"
)

func allFields() []Field {
	return []Field{FieldType, FieldState, FieldCountdown, FieldCatch, FieldPosition, FieldOffsetX, FieldOffsetY}
}

func TestFieldRoundTripLeavesOtherFieldsUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, f := range allFields() {
		t.Run(f.String(), func(t *testing.T) {
			for i := 0; i < 500; i++ {
				before := Ship(rng.Uint64())
				v := rng.Uint64() & f.Mask()

				after := before.With(f, v)
				if got := after.Get(f); got != v {
					t.Fatalf("Get(%s) = %d after With(%d)", f, got, v)
				}

				for _, other := range allFields() {
					if other == f {
						continue
					}
					if before.Get(other) != after.Get(other) {
						t.Fatalf("writing %s changed %s: %d -> %d", f, other, before.Get(other), after.Get(other))
					}
				}

				// Reserved top bits are never touched.
				if uint64(before)>>62 != uint64(after)>>62 {
					t.Fatalf("writing %s changed reserved bits", f)
				}
			}
		})
	}
}

func TestFieldBoundaryValues(t *testing.T) {
	tests := []struct {
		field Field
		max   uint64
	}{
		{FieldType, 3},
		{FieldState, 3},
		{FieldCountdown, MaxCountdown},
		{FieldCatch, MaxCatch},
		{FieldPosition, MaxPosition},
		{FieldOffsetX, 15},
		{FieldOffsetY, 15},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			if tt.field.Mask() != tt.max {
				t.Errorf("Mask() = %d, want %d", tt.field.Mask(), tt.max)
			}
			s := Ship(0).With(tt.field, tt.max)
			if s.Get(tt.field) != tt.max {
				t.Errorf("max value did not round-trip: got %d", s.Get(tt.field))
			}
			// Only this field's bits are set.
			for _, other := range allFields() {
				if other != tt.field && s.Get(other) != 0 {
					t.Errorf("field %s leaked into %s", tt.field, other)
				}
			}
		})
	}
}

func TestWithTruncatesWideValues(t *testing.T) {
	s := Ship(0).With(FieldCountdown, 0b111)
	if s.Countdown() != 0b11 {
		t.Errorf("countdown = %d, want masked value 3", s.Countdown())
	}
	if s.Get(FieldCatch) != 0 {
		t.Errorf("truncated write spilled into catch field: %d", s.Get(FieldCatch))
	}
}

func TestLayoutFillsWordWithReservedTopBits(t *testing.T) {
	var all Ship
	for _, f := range allFields() {
		all = all.With(f, f.Mask())
	}
	if uint64(all) != 1<<62-1 {
		t.Errorf("all fields set = %#x, want %#x", uint64(all), uint64(1<<62-1))
	}
}

func TestOffsetBias(t *testing.T) {
	for d := MinOffset; d <= MaxOffset; d++ {
		s := Ship(0).WithOffsetX(d).WithOffsetY(-d - 1)
		if s.OffsetX() != d {
			t.Errorf("OffsetX round-trip: got %d, want %d", s.OffsetX(), d)
		}
		if s.OffsetY() != -d-1 {
			t.Errorf("OffsetY round-trip: got %d, want %d", s.OffsetY(), -d-1)
		}
		if s.RawOffsetX() != uint8(d+OffsetBias) {
			t.Errorf("raw X = %d, want %d", s.RawOffsetX(), d+OffsetBias)
		}
	}

	if got := Ship(0).OffsetX(); got != -8 {
		t.Errorf("zeroed word decodes to offset %d, want -8", got)
	}
}

func TestNewShip(t *testing.T) {
	s := NewShip(Restless, 12345, 2)

	if s.Type() != Restless {
		t.Errorf("type = %s, want restless", s.Type())
	}
	if s.State() != StateFishing {
		t.Errorf("state = %s, want fishing", s.State())
	}
	if s.Countdown() != 2 {
		t.Errorf("countdown = %d, want 2", s.Countdown())
	}
	if s.Position() != 12345 {
		t.Errorf("position = %d, want 12345", s.Position())
	}
	if s.OffsetX() != 0 || s.OffsetY() != 0 {
		t.Errorf("offsets = (%d,%d), want (0,0)", s.OffsetX(), s.OffsetY())
	}
	if s.Catch() != 0 {
		t.Errorf("catch = %d, want 0", s.Catch())
	}
	if !s.Alive() {
		t.Error("new ship should be alive")
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestPreconditionViolationsPanic(t *testing.T) {
	mustPanic(t, "unknown field get", func() { Ship(0).Get(Field(42)) })
	mustPanic(t, "unknown field with", func() { Ship(0).With(numFields, 1) })
	mustPanic(t, "position overflow", func() { Ship(0).WithPosition(MaxPosition + 1) })
	mustPanic(t, "catch overflow", func() { Ship(0).WithCatch(MaxCatch + 1) })
	mustPanic(t, "countdown overflow", func() { Ship(0).WithCountdown(4) })
	mustPanic(t, "offset too small", func() { Ship(0).WithOffsetX(-9) })
	mustPanic(t, "offset too large", func() { Ship(0).WithOffsetY(8) })
	mustPanic(t, "raw offset overflow", func() { Ship(0).WithRawOffsets(16, 0) })
	mustPanic(t, "bad type", func() { Ship(0).WithType(ShipType(3)) })
}

func TestEnumStrings(t *testing.T) {
	if Greedy.String() != "greedy" || Lazy.String() != "lazy" || Restless.String() != "restless" {
		t.Error("unexpected ship type names")
	}
	if StateDead.String() != "dead" || StateFinishing.String() != "finishing" {
		t.Error("unexpected ship state names")
	}
	if ShipType(9).String() != "ShipType(9)" {
		t.Errorf("unknown type string = %q", ShipType(9).String())
	}
}
