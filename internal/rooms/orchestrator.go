// Package rooms turns coordinates into rooms. Every room it builds is
// cached for the life of the process and, when a store is configured,
// saved so later processes can skip regeneration.
package rooms

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lawnchairsociety/procworld/internal/biome"
	"github.com/lawnchairsociety/procworld/internal/building"
	"github.com/lawnchairsociety/procworld/internal/database"
	"github.com/lawnchairsociety/procworld/internal/dungeon"
	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/logger"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/npc"
	"github.com/lawnchairsociety/procworld/internal/quest"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/settlement"
	"github.com/lawnchairsociety/procworld/internal/world"
)

// AdjacentRoom is a coordinate reachable from a room. BiomeID is empty
// until the neighbor has been generated.
type AdjacentRoom struct {
	Direction region.Direction `yaml:"direction" json:"direction"`
	X         int              `yaml:"x" json:"x"`
	Y         int              `yaml:"y" json:"y"`
	Z         int              `yaml:"z" json:"z"`
	BiomeID   string           `yaml:"biome,omitempty" json:"biomeId,omitempty"`
}

// Orchestrator generates and caches rooms
type Orchestrator struct {
	data        *gamedata.Data
	engine      *narrative.Engine
	settlements *settlement.Generator
	npcs        *npc.Generator
	buildings   *building.Generator
	quests      *quest.Generator
	floors      *dungeon.Generator
	selector    *biome.Selector
	terrain     *biome.Terrain
	repo        database.Repository

	rooms map[string]*world.RoomDefinition
	mu    sync.RWMutex
}

// New wires the generation pipeline over the data tables. repo may be nil,
// in which case nothing is persisted.
func New(data *gamedata.Data, engine *narrative.Engine, repo database.Repository) *Orchestrator {
	if repo == nil {
		repo = database.NoopRepository{}
	}
	return &Orchestrator{
		data:        data,
		engine:      engine,
		settlements: settlement.NewGenerator(data.Settlements(), engine),
		npcs:        npc.NewGenerator(data.NPCs(), data.Settlements(), engine),
		buildings:   building.NewGenerator(data.Buildings(), engine),
		quests:      quest.NewGenerator(data.Quests(), engine),
		floors:      dungeon.NewGenerator(data.Dungeons(), data.Biomes(), engine),
		selector:    biome.NewSelector(data.Biomes()),
		terrain:     biome.NewTerrain(biome.WorldSeed),
		repo:        repo,
		rooms:       make(map[string]*world.RoomDefinition),
	}
}

// Floors returns the dungeon floor generator
func (o *Orchestrator) Floors() *dungeon.Generator {
	return o.floors
}

// Selector returns the biome selector
func (o *Orchestrator) Selector() *biome.Selector {
	return o.selector
}

// Terrain returns the terrain noise
func (o *Orchestrator) Terrain() *biome.Terrain {
	return o.terrain
}

// GetOrGenerateRoom returns the room at a coordinate, from the cache, the
// store, or fresh generation in that order. Returns nil where there is no
// room: above the surface or off a dungeon floor.
func (o *Orchestrator) GetOrGenerateRoom(ctx context.Context, x, y, z int) *world.RoomDefinition {
	if !o.inWorld(x, y, z) {
		return nil
	}

	id := region.RoomID(x, y, z)
	if room := o.cached(id); room != nil {
		return room
	}

	room, err := o.repo.FindRoom(ctx, id)
	if err != nil {
		if !errors.Is(err, database.ErrRoomNotFound) {
			logger.Debug("Room store lookup failed, regenerating", "room", id, "error", err)
		}
		room = nil
	}
	if room != nil {
		return o.store(room)
	}

	start := time.Now()
	room = o.generate(x, y, z)
	if room == nil {
		return nil
	}

	stored := o.store(room)
	if stored != room {
		// Lost the race; the winner already saved its copy
		return stored
	}
	logger.Debug("Generated room", "room", id, "kind", room.Kind.String(), "elapsed", time.Since(start))

	if err := o.repo.SaveRoom(ctx, room); err != nil {
		logger.Debug("Room store save failed", "room", id, "error", err)
	}
	return room
}

// GetOrGenerateRoomWithAdjacent generates the rooms reachable from a
// coordinate before the room itself, so its exits can name them. Only
// direct neighbors are generated.
func (o *Orchestrator) GetOrGenerateRoomWithAdjacent(ctx context.Context, x, y, z int) *world.RoomDefinition {
	if !o.inWorld(x, y, z) {
		return nil
	}
	o.PreGenerateAdjacentRooms(ctx, x, y, z)
	return o.GetOrGenerateRoom(ctx, x, y, z)
}

// PreGenerateAdjacentRooms generates every room reachable from a coordinate
func (o *Orchestrator) PreGenerateAdjacentRooms(ctx context.Context, x, y, z int) {
	for _, l := range o.links(x, y, z) {
		o.GetOrGenerateRoom(ctx, l.x, l.y, l.z)
	}
}

// GetAdjacentRooms lists the coordinates reachable from a room, with the
// biome of each one already generated. Nothing is generated.
func (o *Orchestrator) GetAdjacentRooms(x, y, z int) []AdjacentRoom {
	links := o.links(x, y, z)
	adjacent := make([]AdjacentRoom, 0, len(links))
	for _, l := range links {
		a := AdjacentRoom{Direction: l.dir, X: l.x, Y: l.y, Z: l.z}
		if room := o.cached(region.RoomID(l.x, l.y, l.z)); room != nil {
			a.BiomeID = room.BiomeID
		}
		adjacent = append(adjacent, a)
	}
	return adjacent
}

// HasRoom returns true if the room is cached
func (o *Orchestrator) HasRoom(id string) bool {
	return o.cached(id) != nil
}

// CachedRoomCount returns the number of cached rooms
func (o *Orchestrator) CachedRoomCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.rooms)
}

func (o *Orchestrator) cached(id string) *world.RoomDefinition {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rooms[id]
}

// store caches a room unless another caller got there first, and returns
// whichever copy is cached.
func (o *Orchestrator) store(room *world.RoomDefinition) *world.RoomDefinition {
	o.mu.Lock()
	defer o.mu.Unlock()

	if existing, exists := o.rooms[room.ID]; exists {
		return existing
	}
	o.rooms[room.ID] = room
	return room
}

// inWorld reports whether a room exists at the coordinate
func (o *Orchestrator) inWorld(x, y, z int) bool {
	switch region.Classify(x, y, z) {
	case region.Void:
		return false
	case region.Dungeon:
		f := o.floors.GetFloor(dungeon.DepthOf(z))
		return f != nil && f.GetCell(x, y) != nil
	default:
		return true
	}
}
