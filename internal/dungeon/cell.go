// Package dungeon generates the maze floors that lie beneath the surface.
package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/procworld/internal/region"
)

// Cell is a single room on a floor
type Cell struct {
	X          int                `yaml:"x" json:"x"`
	Y          int                `yaml:"y" json:"y"`
	Exits      []region.Direction `yaml:"exits" json:"exits"` // kept in north, east, south, west order
	RoomType   string             `yaml:"room_type" json:"roomType"`
	Entrance   bool               `yaml:"entrance,omitempty" json:"entrance,omitempty"`
	StairsDown bool               `yaml:"stairs_down,omitempty" json:"stairsDown,omitempty"`
	Distance   int                `yaml:"distance_from_entrance" json:"distanceFromEntrance"`
}

func newCell(x, y int) *Cell {
	return &Cell{X: x, Y: y, Distance: -1}
}

func cellKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// HasExit returns true if the cell opens in the given direction
func (c *Cell) HasExit(dir region.Direction) bool {
	for _, d := range c.Exits {
		if d == dir {
			return true
		}
	}
	return false
}

// Neighbor returns the coordinates one step away in dir
func (c *Cell) Neighbor(dir region.Direction) (x, y int) {
	dx, dy, _ := dir.Delta()
	return c.X + dx, c.Y + dy
}

func (c *Cell) addExit(dir region.Direction) {
	if c.HasExit(dir) {
		return
	}
	i := 0
	for i < len(c.Exits) && c.Exits[i] < dir {
		i++
	}
	c.Exits = append(c.Exits, 0)
	copy(c.Exits[i+1:], c.Exits[i:])
	c.Exits[i] = dir
}

// connect links two cells in both directions
func connect(from *Cell, dir region.Direction, to *Cell) {
	from.addExit(dir)
	to.addExit(dir.Opposite())
}
