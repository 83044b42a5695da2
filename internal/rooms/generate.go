package rooms

import (
	"github.com/lawnchairsociety/procworld/internal/dungeon"
	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/rng"
	"github.com/lawnchairsociety/procworld/internal/world"
)

const (
	maxItems       = 2
	maxEnemies     = 3
	maxResources   = 1
	difficultyRing = 25.0 // wilderness difficulty rises by one per ring
)

// link is a way from one coordinate to another
type link struct {
	dir     region.Direction
	x, y, z int
}

// links returns the coordinates a room connects to, in exit order
func (o *Orchestrator) links(x, y, z int) []link {
	switch region.Classify(x, y, z) {
	case region.Void:
		return nil
	case region.Dungeon:
		return o.dungeonLinks(x, y, z)
	}

	links := make([]link, 0, 5)
	for _, dir := range region.CardinalDirections() {
		dx, dy, _ := dir.Delta()
		links = append(links, link{dir: dir, x: x + dx, y: y + dy, z: z})
	}
	if x == 0 && y == 0 {
		links = append(links, link{dir: region.Down, x: 0, y: 0, z: dungeon.FloorZ(0)})
	}
	return links
}

func (o *Orchestrator) dungeonLinks(x, y, z int) []link {
	f := o.floors.GetFloor(dungeon.DepthOf(z))
	if f == nil {
		return nil
	}
	c := f.GetCell(x, y)
	if c == nil {
		return nil
	}

	links := make([]link, 0, len(c.Exits)+2)
	for _, dir := range c.Exits {
		nx, ny := c.Neighbor(dir)
		links = append(links, link{dir: dir, x: nx, y: ny, z: z})
	}
	if c.Entrance {
		if ux, uy, uz, ok := stairsUp(f); ok {
			links = append(links, link{dir: region.Up, x: ux, y: uy, z: uz})
		}
	}
	if c.StairsDown {
		// Every floor's entrance is at (0, 0)
		links = append(links, link{dir: region.Down, x: 0, y: 0, z: z - 1})
	}
	return links
}

// stairsUp resolves the room the entrance of a floor climbs to
func stairsUp(f *dungeon.Floor) (x, y, z int, ok bool) {
	if f.StairsUpTarget == dungeon.WildernessPortal {
		return 0, 0, 0, true
	}
	x, y, z, err := region.ParseRoomID(f.StairsUpTarget)
	if err != nil {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

// generate builds the room at a coordinate without touching the cache
func (o *Orchestrator) generate(x, y, z int) *world.RoomDefinition {
	links := o.links(x, y, z)
	neighbors := o.neighborContext(links)

	var room *world.RoomDefinition
	switch region.Classify(x, y, z) {
	case region.Settlement:
		room = o.generateSettlementRoom(x, y, neighbors)
	case region.Dungeon:
		room = o.generateDungeonRoom(x, y, z, neighbors)
	case region.Wilderness:
		room = o.generateWildernessRoom(x, y, z, neighbors)
	default:
		return nil
	}
	if room == nil {
		return nil
	}

	room.Exits = o.exits(x, y, z, links)
	return room
}

// neighborContext maps direction names to the cached rooms they lead to
func (o *Orchestrator) neighborContext(links []link) map[string]any {
	neighbors := make(map[string]any, len(links))
	for _, l := range links {
		if room := o.cached(region.RoomID(l.x, l.y, l.z)); room != nil {
			neighbors[l.dir.String()] = room.Context()
		}
	}
	return neighbors
}

func (o *Orchestrator) exits(x, y, z int, links []link) []world.Exit {
	exits := make([]world.Exit, 0, len(links))
	for _, l := range links {
		destID := region.RoomID(l.x, l.y, l.z)
		ctx := narrative.Context{
			"direction": l.dir.String(),
			"vertical":  l.dir.IsVertical(),
		}
		tpl := "exit_unknown"
		if dest := o.cached(destID); dest != nil {
			ctx["destination"] = dest.Context()
			tpl = "exit_known"
		}
		exits = append(exits, world.Exit{
			Direction:     l.dir,
			DestinationID: destID,
			Description:   o.engine.RenderNamed(tpl, ctx, rng.Seed(x, y, z, "exit_"+l.dir.String())),
		})
	}
	return exits
}

func (o *Orchestrator) generateWildernessRoom(x, y, z int, neighbors map[string]any) *world.RoomDefinition {
	var adjacent []string
	for _, dir := range region.CardinalDirections() {
		dx, dy, _ := dir.Delta()
		if room := o.cached(region.RoomID(x+dx, y+dy, z)); room != nil && room.BiomeID != "" {
			adjacent = append(adjacent, room.BiomeID)
		}
	}

	biomeID := o.selector.Select(x, y, z, adjacent)
	def, ok := o.data.Biomes().Biome(biomeID)
	if !ok {
		return nil
	}
	terrain := o.terrain.At(x, y)

	ctx := narrative.Context{
		"biome":   map[string]any{"id": def.ID, "name": def.Name},
		"terrain": terrain.Context(),
		"room":    map[string]any{"x": x, "y": y, "z": z},
	}
	ctx[narrative.NeighborsKey] = neighbors

	room := &world.RoomDefinition{
		ID:      region.RoomID(x, y, z),
		X:       x,
		Y:       y,
		Z:       z,
		Kind:    region.Wilderness,
		BiomeID: def.ID,
		Terrain: &terrain,
	}
	if len(def.Names) > 0 {
		seed := rng.Seed(x, y, z, "room_name")
		room.Name = o.engine.Render(def.Names[int(seed%uint32(len(def.Names)))], ctx, seed)
	}
	room.Description = o.engine.Render(def.Description, ctx, rng.Seed(x, y, z, "room_description"))

	resources := maxResources
	if terrain.Wet {
		resources++
	}
	o.fill(room, def, wildernessDifficulty(x, y), resources)
	return room
}

func (o *Orchestrator) generateDungeonRoom(x, y, z int, neighbors map[string]any) *world.RoomDefinition {
	f := o.floors.GetFloor(dungeon.DepthOf(z))
	if f == nil {
		return nil
	}
	c := f.GetCell(x, y)
	if c == nil {
		return nil
	}

	name, description := o.floors.Describe(f, c, narrative.Context{narrative.NeighborsKey: neighbors})
	room := &world.RoomDefinition{
		ID:          region.RoomID(x, y, z),
		Name:        name,
		Description: description,
		X:           x,
		Y:           y,
		Z:           z,
		Kind:        region.Dungeon,
		BiomeID:     f.Biome,
		Dungeon: &world.DungeonInfo{
			Depth:      f.Depth,
			Difficulty: f.Difficulty,
			RoomType:   c.RoomType,
			Distance:   c.Distance,
			Entrance:   c.Entrance,
			StairsDown: c.StairsDown,
		},
	}

	if !c.Entrance {
		if def, ok := o.data.Biomes().Biome(f.Biome); ok {
			o.fill(room, def, f.Difficulty, maxResources)
		}
	}
	return room
}

func (o *Orchestrator) generateSettlementRoom(x, y int, neighbors map[string]any) *world.RoomDefinition {
	summary := o.Settlement(x, y)
	if summary == nil {
		return nil
	}
	s := summary.Settlement

	ctx := s.Context()
	ctx[narrative.NeighborsKey] = neighbors

	return &world.RoomDefinition{
		ID:          region.RoomID(x, y, 0),
		Name:        o.engine.RenderNamed("settlement_room_name", ctx, s.Seed("room_name")),
		Description: s.Description,
		X:           x,
		Y:           y,
		Z:           0,
		Kind:        region.Settlement,
		BiomeID:     world.SettlementBiome,
		Settlement:  summary,
	}
}

// Settlement runs the settlement pipeline at a surface coordinate. Returns
// nil when no settlement sits there.
func (o *Orchestrator) Settlement(x, y int) *world.SettlementSummary {
	size, ok := region.SettlementSize(x, y, 0)
	if !ok {
		return nil
	}

	s := o.settlements.Generate(x, y, size)
	npcs := o.npcs.Generate(s)
	buildings := o.buildings.Generate(s)
	o.buildings.Assign(buildings, npcs)
	quests := o.quests.Generate(s, npcs, buildings)

	return &world.SettlementSummary{
		Settlement: s,
		NPCs:       npcs,
		Buildings:  buildings,
		Quests:     quests,
	}
}

// fill draws the room's items, enemies and resource nodes from the biome
// pools. Harder rooms can hold more enemies.
func (o *Orchestrator) fill(room *world.RoomDefinition, def gamedata.BiomeDefinition, difficulty, resources int) {
	r := rng.ForCoord(room.X, room.Y, room.Z, "room_content")

	room.Items = nonEmpty(r.WeightedSelectWithoutReplacement(def.Items, r.Range(0, maxItems)))
	enemies := min(maxEnemies, 1+difficulty/2)
	room.Enemies = nonEmpty(r.WeightedSelectWithoutReplacement(def.Enemies, r.Range(0, enemies)))
	room.Resources = nonEmpty(r.WeightedSelectWithoutReplacement(def.Resources, r.Range(0, resources)))
}

func wildernessDifficulty(x, y int) int {
	return 1 + int(region.Distance(x, y)/difficultyRing)
}

func nonEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
