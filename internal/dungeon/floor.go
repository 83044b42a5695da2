package dungeon

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lawnchairsociety/procworld/internal/region"
)

// WildernessPortal is the stairs-up target of the top floor.
const WildernessPortal = "wilderness_portal"

// deepDifficulty is where a floor starts counting as deep for prose.
const deepDifficulty = 4

// Floor is one generated dungeon level
type Floor struct {
	Depth          int     `yaml:"depth" json:"depth"` // 0 is the top floor, deeper floors are negative
	Biome          string  `yaml:"biome" json:"biome"`
	Difficulty     int     `yaml:"difficulty" json:"difficulty"`
	RoomCount      int     `yaml:"room_count" json:"roomCount"`
	StairsUpTarget string  `yaml:"stairs_up_target" json:"stairsUpTarget"`
	Cells          []*Cell `yaml:"cells" json:"cells"` // creation order, entrance first

	Entrance   *Cell `yaml:"-" json:"-"`
	StairsDown *Cell `yaml:"-" json:"-"`

	cells map[string]*Cell
}

func newFloor(depth int) *Floor {
	return &Floor{
		Depth:      depth,
		Difficulty: Difficulty(depth),
		cells:      make(map[string]*Cell),
	}
}

// Difficulty returns the difficulty of the floor at depth.
func Difficulty(depth int) int {
	if depth < 0 {
		return 1 - depth
	}
	return 1 + depth
}

// FloorZ returns the room z coordinate of the floor at depth.
func FloorZ(depth int) int {
	return depth - 1
}

// DepthOf returns the floor depth holding rooms at z. Only z < 0 is
// underground.
func DepthOf(z int) int {
	return z + 1
}

func (f *Floor) add(c *Cell) {
	f.cells[cellKey(c.X, c.Y)] = c
	f.Cells = append(f.Cells, c)
}

// GetCell returns the cell at (x, y), or nil if the floor has no room there
func (f *Floor) GetCell(x, y int) *Cell {
	return f.cells[cellKey(x, y)]
}

// RoomID returns the procedural room id of a cell on this floor
func (f *Floor) RoomID(c *Cell) string {
	return region.RoomID(c.X, c.Y, FloorZ(f.Depth))
}

// IsTop returns true for the floor directly below the surface
func (f *Floor) IsTop() bool {
	return f.Depth == 0
}

// IsDeep returns true once a floor is dangerous enough to read as deep
func (f *Floor) IsDeep() bool {
	return f.Difficulty >= deepDifficulty
}

// String returns a string representation of the floor
func (f *Floor) String() string {
	return fmt.Sprintf("%s level (%s, %d rooms)", humanize.Ordinal(f.Difficulty), f.Biome, f.RoomCount)
}

// Bounds returns the smallest rectangle holding every cell
func (f *Floor) Bounds() (minX, minY, maxX, maxY int) {
	for i, c := range f.Cells {
		if i == 0 || c.X < minX {
			minX = c.X
		}
		if i == 0 || c.X > maxX {
			maxX = c.X
		}
		if i == 0 || c.Y < minY {
			minY = c.Y
		}
		if i == 0 || c.Y > maxY {
			maxY = c.Y
		}
	}
	return minX, minY, maxX, maxY
}

// Render draws the floor as ASCII. Each cell is 5 characters wide and 3
// tall:
//
//	  |     (north exit)
//	-[#]-   (west exit, room, east exit)
//	  |     (south exit)
func (f *Floor) Render() string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Depth %d: %s\n", f.Depth, f))
	output.WriteString(strings.Repeat("-", 40) + "\n")

	if len(f.Cells) == 0 {
		output.WriteString("  (No rooms to display)\n")
		return output.String()
	}

	minX, minY, maxX, maxY := f.Bounds()
	for y := minY; y <= maxY; y++ {
		// Top row (north connections)
		for x := minX; x <= maxX; x++ {
			c := f.GetCell(x, y)
			if c != nil && c.HasExit(region.North) {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")

		// Middle row (west-room-east)
		for x := minX; x <= maxX; x++ {
			c := f.GetCell(x, y)
			if c == nil {
				output.WriteString("     ")
				continue
			}
			if c.HasExit(region.West) {
				output.WriteString("-")
			} else {
				output.WriteString(" ")
			}
			output.WriteString("[" + cellSymbol(c) + "]")
			if c.HasExit(region.East) {
				output.WriteString("-")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Bottom row (south connections)
		for x := minX; x <= maxX; x++ {
			c := f.GetCell(x, y)
			if c != nil && c.HasExit(region.South) {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")
	}

	output.WriteString(getLegend())
	return output.String()
}

func cellSymbol(c *Cell) string {
	switch {
	case c.Entrance:
		return "E"
	case c.StairsDown:
		return ">"
	default:
		return "#"
	}
}

func getLegend() string {
	return "\nLegend: [E] entrance  [>] stairs down  [#] room  - | passages\n"
}
