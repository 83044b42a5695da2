package dungeon

import (
	"sync"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/logger"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/rng"
)

const (
	// newestCellChance is how often growth continues from the newest
	// frontier cell instead of a random one. Higher means longer corridors.
	newestCellChance = 0.7
	roomTypeRetries  = 3
)

// Generator builds and caches dungeon floors
type Generator struct {
	tables *gamedata.DungeonTables
	biomes *gamedata.BiomeTables
	engine *narrative.Engine

	floors map[int]*Floor
	mu     sync.RWMutex
}

// NewGenerator creates a floor generator
func NewGenerator(tables *gamedata.DungeonTables, biomes *gamedata.BiomeTables, engine *narrative.Engine) *Generator {
	return &Generator{
		tables: tables,
		biomes: biomes,
		engine: engine,
		floors: make(map[int]*Floor),
	}
}

// GetFloor returns the floor at depth, generating it on first use. Depths
// above zero have no floor.
func (g *Generator) GetFloor(depth int) *Floor {
	if depth > 0 {
		return nil
	}

	g.mu.RLock()
	floor, exists := g.floors[depth]
	g.mu.RUnlock()
	if exists {
		return floor
	}

	// Generated outside the lock; generation reads the cache for the floor above
	floor = g.generateFloor(depth)

	g.mu.Lock()
	defer g.mu.Unlock()

	// Another caller may have finished first; keep theirs
	if existing, exists := g.floors[depth]; exists {
		return existing
	}
	g.floors[depth] = floor
	return floor
}

// HasFloor returns true if the floor has been generated
func (g *Generator) HasFloor(depth int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.floors[depth]
	return exists
}

func (g *Generator) generateFloor(depth int) *Floor {
	f := g.layout(depth)
	g.assignRoomTypes(f, rng.ForCoord(0, 0, depth, "floor_rooms"))
	f.StairsUpTarget = g.stairsUpTarget(depth)

	logger.Debug("Generated dungeon floor", "depth", depth, "biome", f.Biome, "rooms", len(f.Cells))
	return f
}

// layout carves the maze and places the stairs. It depends only on the
// depth, never on neighboring floors.
func (g *Generator) layout(depth int) *Floor {
	f := newFloor(depth)

	r := rng.ForCoord(0, 0, depth, "floor")
	f.Biome = rng.Pick(r, g.tables.Biomes)
	f.RoomCount = g.tables.RoomCount.Roll(r)

	g.growMaze(f, rng.ForCoord(0, 0, depth, "floor_layout"))
	g.placeStairs(f)
	return f
}

// stairsUpTarget is the room the entrance at depth climbs to: the portal
// for the top floor, otherwise the stairs-down cell of the floor above.
// An uncached floor above is laid out but not kept.
func (g *Generator) stairsUpTarget(depth int) string {
	if depth == 0 {
		return WildernessPortal
	}

	g.mu.RLock()
	above, exists := g.floors[depth+1]
	g.mu.RUnlock()
	if !exists {
		above = g.layout(depth + 1)
	}
	if above.StairsDown == nil {
		return ""
	}
	return above.RoomID(above.StairsDown)
}

// growMaze carves a growing-tree maze from (0,0) until the floor has
// RoomCount cells or the frontier runs out.
func (g *Generator) growMaze(f *Floor, r *rng.Rand) {
	start := newCell(0, 0)
	start.Entrance = true
	f.Entrance = start
	f.add(start)

	active := []*Cell{start}
	for len(f.Cells) < f.RoomCount && len(active) > 0 {
		idx := len(active) - 1
		if !r.Chance(newestCellChance) {
			idx = r.Intn(len(active))
		}
		current := active[idx]

		var open []region.Direction
		for _, dir := range region.CardinalDirections() {
			if f.GetCell(current.Neighbor(dir)) == nil {
				open = append(open, dir)
			}
		}
		if len(open) == 0 {
			active = append(active[:idx], active[idx+1:]...)
			continue
		}

		dir := rng.Pick(r, open)
		next := newCell(current.Neighbor(dir))
		connect(current, dir, next)
		f.add(next)
		active = append(active, next)
	}
}

// placeStairs measures every cell's distance from the entrance and puts
// the stairs down in the farthest one. Ties go to the earliest cell.
func (g *Generator) placeStairs(f *Floor) {
	f.Entrance.Distance = 0
	queue := []*Cell{f.Entrance}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dir := range current.Exits {
			next := f.GetCell(current.Neighbor(dir))
			if next != nil && next.Distance < 0 {
				next.Distance = current.Distance + 1
				queue = append(queue, next)
			}
		}
	}

	var farthest *Cell
	for _, c := range f.Cells {
		if c != f.Entrance && (farthest == nil || c.Distance > farthest.Distance) {
			farthest = c
		}
	}
	if farthest != nil {
		farthest.StairsDown = true
		f.StairsDown = farthest
	}
}

// assignRoomTypes draws a type for every ordinary cell, redrawing a few
// times when a neighbor already has the same type.
func (g *Generator) assignRoomTypes(f *Floor, r *rng.Rand) {
	weights := g.tables.RoomTypes[f.Biome]
	for _, c := range f.Cells {
		switch {
		case c.Entrance:
			c.RoomType = gamedata.RoomEntrance
			continue
		case c.StairsDown:
			c.RoomType = gamedata.RoomStairsDown
			continue
		}

		roomType := r.WeightedPick(weights)
		for attempt := 0; attempt < roomTypeRetries && g.neighborHasType(f, c, roomType); attempt++ {
			roomType = r.WeightedPick(weights)
		}
		c.RoomType = roomType
	}
}

func (g *Generator) neighborHasType(f *Floor, c *Cell, roomType string) bool {
	for _, dir := range region.CardinalDirections() {
		if n := f.GetCell(c.Neighbor(dir)); n != nil && n.RoomType == roomType {
			return true
		}
	}
	return false
}

// Context returns the template view of a floor
func (g *Generator) Context(f *Floor) map[string]any {
	biomeName := f.Biome
	if b, ok := g.biomes.Biome(f.Biome); ok {
		biomeName = b.Name
	}
	return map[string]any{
		"depth":      f.Depth,
		"difficulty": f.Difficulty,
		"biome":      biomeName,
		"top":        f.IsTop(),
		"deep":       f.IsDeep(),
	}
}

// Describe renders the name and description of a cell. ctx may carry
// extra keys such as neighbors; floor and room are filled in here.
func (g *Generator) Describe(f *Floor, c *Cell, ctx narrative.Context) (name, description string) {
	if ctx == nil {
		ctx = narrative.Context{}
	}
	ctx["floor"] = g.Context(f)
	ctx["room"] = map[string]any{
		"type":     c.RoomType,
		"distance": c.Distance,
	}

	def := g.tables.Rooms[c.RoomType]
	z := FloorZ(f.Depth)
	if len(def.Names) > 0 {
		seed := rng.Seed(c.X, c.Y, z, "room_name")
		name = g.engine.Render(def.Names[int(seed%uint32(len(def.Names)))], ctx, seed)
	}
	description = g.engine.Render(def.Description, ctx, rng.Seed(c.X, c.Y, z, "room_description"))
	return name, description
}
