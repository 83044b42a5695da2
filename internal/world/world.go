// Package world defines room definitions and the loader that resolves
// room ids to hand-authored or generated rooms.
package world

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/procworld/internal/logger"
	"github.com/lawnchairsociety/procworld/internal/region"
)

// Generator produces procedural rooms. It is implemented by the room
// orchestrator; the interface avoids an import cycle.
type Generator interface {
	GetOrGenerateRoom(ctx context.Context, x, y, z int) *RoomDefinition
	GetOrGenerateRoomWithAdjacent(ctx context.Context, x, y, z int) *RoomDefinition
}

// StaticRoomsFile is the YAML layout of hand-authored rooms.
type StaticRoomsFile struct {
	Rooms []*RoomDefinition `yaml:"rooms"`
}

type World struct {
	Rooms            map[string]*RoomDefinition
	mu               sync.RWMutex
	generator        Generator
	adjacentOnLookup bool
}

// NewWorld creates a world that delegates procedural ids to generator.
// generator may be nil, in which case only static rooms resolve.
func NewWorld(generator Generator) *World {
	return &World{
		Rooms:     make(map[string]*RoomDefinition),
		generator: generator,
	}
}

// SetPregenerateAdjacent makes procedural lookups also generate the rooms
// next door, so exits can name them.
func (w *World) SetPregenerateAdjacent(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.adjacentOnLookup = enabled
}

// LoadStaticRooms reads hand-authored rooms from a YAML file
func (w *World) LoadStaticRooms(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read static rooms file: %w", err)
	}
	return w.ParseStaticRooms(data)
}

// ParseStaticRooms adds hand-authored rooms from YAML data
func (w *World) ParseStaticRooms(data []byte) error {
	var file StaticRoomsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse static rooms: %w", err)
	}

	for i, room := range file.Rooms {
		if room == nil || room.ID == "" {
			return fmt.Errorf("static room %d has no id", i)
		}
		if region.IsProcedural(room.ID) {
			return fmt.Errorf("static room %q uses the procedural id prefix", room.ID)
		}
		room.Static = true
		w.AddRoom(room)
	}

	logger.Info("Loaded static rooms", "rooms", len(file.Rooms))
	return nil
}

func (w *World) AddRoom(room *RoomDefinition) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Rooms[room.ID] = room
}

// GetRoom resolves a room id. Procedural ids go to the generator; anything
// else must be a static room. Unknown and malformed ids return nil.
func (w *World) GetRoom(ctx context.Context, id string) *RoomDefinition {
	w.mu.RLock()
	room := w.Rooms[id]
	generator := w.generator
	adjacent := w.adjacentOnLookup
	w.mu.RUnlock()

	if room != nil {
		return room
	}
	if generator == nil || !region.IsProcedural(id) {
		return nil
	}

	x, y, z, err := region.ParseRoomID(id)
	if err != nil {
		logger.Debug("Ignoring malformed room id", "id", id, "error", err)
		return nil
	}
	if adjacent {
		return generator.GetOrGenerateRoomWithAdjacent(ctx, x, y, z)
	}
	return generator.GetOrGenerateRoom(ctx, x, y, z)
}

// GetStaticRoomIDs returns the ids of the hand-authored rooms, sorted
func (w *World) GetStaticRoomIDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetRoomCount returns the number of static rooms
func (w *World) GetRoomCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.Rooms)
}
