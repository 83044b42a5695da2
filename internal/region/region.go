// Package region classifies world coordinates. Everything here is pure
// arithmetic on the coordinate triple.
package region

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRoomID is returned when a room id is not of the form proc_x_y_z.
var ErrInvalidRoomID = errors.New("invalid procedural room id")

// RoomIDPrefix prefixes every procedurally generated room id.
const RoomIDPrefix = "proc_"

// Kind is the broad category of a location.
type Kind int

const (
	Wilderness Kind = iota
	Settlement
	Dungeon
	// Void is above the surface; nothing is generated there.
	Void
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Wilderness:
		return "wilderness"
	case Settlement:
		return "settlement"
	case Dungeon:
		return "dungeon"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// MarshalText lets Kind serialize as its name in YAML and JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{Wilderness, Settlement, Dungeon, Void} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return Wilderness, fmt.Errorf("unknown location kind: %s", name)
}

// Size is a settlement tier.
type Size int

const (
	Hamlet Size = iota
	Village
	Town
	City
)

// AllSizes returns every tier, smallest first.
func AllSizes() []Size {
	return []Size{Hamlet, Village, Town, City}
}

// String returns the name of the tier.
func (s Size) String() string {
	switch s {
	case Hamlet:
		return "hamlet"
	case Village:
		return "village"
	case Town:
		return "town"
	case City:
		return "city"
	default:
		return "unknown"
	}
}

// MarshalText lets Size serialize as its name.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a tier name.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSize converts a tier name to a Size.
func ParseSize(name string) (Size, error) {
	switch strings.ToLower(name) {
	case "hamlet":
		return Hamlet, nil
	case "village":
		return Village, nil
	case "town":
		return Town, nil
	case "city":
		return City, nil
	default:
		return Hamlet, fmt.Errorf("unknown settlement size: %s", name)
	}
}

// mod is the non-negative remainder, so negative coordinate sums classify
// the same way as positive ones.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// IsSettlement reports whether a settlement sits at the coordinate.
func IsSettlement(x, y, z int) bool {
	return z == 0 && mod(x+y, 7) == 0
}

// SettlementSize returns the tier at the coordinate, or false when there
// is no settlement there.
func SettlementSize(x, y, z int) (Size, bool) {
	if !IsSettlement(x, y, z) {
		return Hamlet, false
	}
	sum := x + y
	switch {
	case mod(sum, 63) == 0:
		return City, true
	case mod(sum, 21) == 0:
		return Town, true
	default:
		return Village, true
	}
}

// Classify returns the kind of location at the coordinate.
func Classify(x, y, z int) Kind {
	switch {
	case z > 0:
		return Void
	case z < 0:
		return Dungeon
	case IsSettlement(x, y, z):
		return Settlement
	default:
		return Wilderness
	}
}

// RoomID formats the canonical id of a procedural room.
func RoomID(x, y, z int) string {
	return fmt.Sprintf("%s%d_%d_%d", RoomIDPrefix, x, y, z)
}

// IsProcedural reports whether id uses the procedural prefix.
func IsProcedural(id string) bool {
	return strings.HasPrefix(id, RoomIDPrefix)
}

// ParseRoomID extracts the coordinate from a procedural room id.
func ParseRoomID(id string) (x, y, z int, err error) {
	if !IsProcedural(id) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidRoomID, id)
	}
	parts := strings.Split(strings.TrimPrefix(id, RoomIDPrefix), "_")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidRoomID, id)
	}
	coords := make([]int, 3)
	for i, p := range parts {
		v, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidRoomID, id, convErr)
		}
		coords[i] = v
	}
	return coords[0], coords[1], coords[2], nil
}

// Distance is the Euclidean distance of (x, y) from the origin.
func Distance(x, y int) float64 {
	return math.Hypot(float64(x), float64(y))
}
