package region

import "fmt"

// Direction is a way out of a room
type Direction int

const (
	North Direction = iota
	East
	South
	West
	Up
	Down
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(name string) (Direction, error) {
	for _, d := range AllDirections() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Delta returns the coordinate step for the direction. North is -y.
func (d Direction) Delta() (dx, dy, dz int) {
	switch d {
	case North:
		return 0, -1, 0
	case East:
		return 1, 0, 0
	case South:
		return 0, 1, 0
	case West:
		return -1, 0, 0
	case Up:
		return 0, 0, 1
	case Down:
		return 0, 0, -1
	default:
		return 0, 0, 0
	}
}

// IsVertical reports whether the direction changes z
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// CardinalDirections returns the four horizontal directions
func CardinalDirections() []Direction {
	return []Direction{North, East, South, West}
}

// AllDirections returns the cardinal directions followed by up and down
func AllDirections() []Direction {
	return []Direction{North, East, South, West, Up, Down}
}
