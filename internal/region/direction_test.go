package region

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{North, "north"},
		{East, "east"},
		{South, "south"},
		{West, "west"},
		{Up, "up"},
		{Down, "down"},
		{Direction(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s.Opposite().Opposite() = %s", d, d.Opposite().Opposite())
		}
		dx, dy, dz := d.Delta()
		ox, oy, oz := d.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 || dz+oz != 0 {
			t.Errorf("%s and its opposite do not cancel", d)
		}
		if d.Opposite() == d {
			t.Errorf("%s is its own opposite", d)
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		d          Direction
		dx, dy, dz int
	}{
		{North, 0, -1, 0},
		{East, 1, 0, 0},
		{South, 0, 1, 0},
		{West, -1, 0, 0},
		{Up, 0, 0, 1},
		{Down, 0, 0, -1},
	}
	for _, tc := range tests {
		dx, dy, dz := tc.d.Delta()
		if dx != tc.dx || dy != tc.dy || dz != tc.dz {
			t.Errorf("%s.Delta() = (%d,%d,%d), want (%d,%d,%d)", tc.d, dx, dy, dz, tc.dx, tc.dy, tc.dz)
		}
		if tc.d.IsVertical() != (tc.dz != 0) {
			t.Errorf("%s.IsVertical() = %v", tc.d, tc.d.IsVertical())
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range AllDirections() {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}

	var d Direction
	if err := d.UnmarshalText([]byte("west")); err != nil || d != West {
		t.Errorf("UnmarshalText(west) = %v, %v", d, err)
	}
}
