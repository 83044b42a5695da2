package world

import (
	"github.com/lawnchairsociety/procworld/internal/biome"
	"github.com/lawnchairsociety/procworld/internal/building"
	"github.com/lawnchairsociety/procworld/internal/npc"
	"github.com/lawnchairsociety/procworld/internal/quest"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/settlement"
)

// SettlementBiome is the biome id recorded for settlement rooms. It is not
// a biome definition, so it places no constraint on neighbors.
const SettlementBiome = "settlement"

// Exit is a way out of a room.
type Exit struct {
	Direction     region.Direction `yaml:"direction" json:"direction"`
	DestinationID string           `yaml:"destination" json:"destination"`
	Description   string           `yaml:"description,omitempty" json:"description,omitempty"`
}

// SettlementSummary is everything generated for a settlement room.
type SettlementSummary struct {
	Settlement *settlement.Settlement `yaml:"settlement" json:"settlement"`
	NPCs       []*npc.NPC             `yaml:"npcs" json:"npcs"`
	Buildings  []*building.Building   `yaml:"buildings" json:"buildings"`
	Quests     []*quest.Quest         `yaml:"quests" json:"quests"`
}

// DungeonInfo places a room within its dungeon floor.
type DungeonInfo struct {
	Depth      int    `yaml:"depth" json:"depth"`
	Difficulty int    `yaml:"difficulty" json:"difficulty"`
	RoomType   string `yaml:"room_type" json:"roomType"`
	Distance   int    `yaml:"distance" json:"distance"`
	Entrance   bool   `yaml:"entrance,omitempty" json:"entrance,omitempty"`
	StairsDown bool   `yaml:"stairs_down,omitempty" json:"stairsDown,omitempty"`
}

// RoomDefinition is one location, generated or hand-authored.
type RoomDefinition struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	X           int                `yaml:"x" json:"x"`
	Y           int                `yaml:"y" json:"y"`
	Z           int                `yaml:"z" json:"z"`
	Kind        region.Kind        `yaml:"kind" json:"kind"`
	BiomeID     string             `yaml:"biome,omitempty" json:"biome,omitempty"`
	Terrain     *biome.Sample      `yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Exits       []Exit             `yaml:"exits" json:"exits"`
	Items       []string           `yaml:"items,omitempty" json:"items,omitempty"`
	Enemies     []string           `yaml:"enemies,omitempty" json:"enemies,omitempty"`
	Resources   []string           `yaml:"resources,omitempty" json:"resources,omitempty"`
	Settlement  *SettlementSummary `yaml:"settlement,omitempty" json:"settlement,omitempty"`
	Dungeon     *DungeonInfo       `yaml:"dungeon,omitempty" json:"dungeon,omitempty"`
	Static      bool               `yaml:"static,omitempty" json:"static,omitempty"`
}

// GetExit returns the exit in a direction
func (r *RoomDefinition) GetExit(dir region.Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// HasExit returns true if the room has an exit in a direction
func (r *RoomDefinition) HasExit(dir region.Direction) bool {
	_, ok := r.GetExit(dir)
	return ok
}

// ExitDirections returns the directions of the room's exits in order
func (r *RoomDefinition) ExitDirections() []region.Direction {
	dirs := make([]region.Direction, len(r.Exits))
	for i, e := range r.Exits {
		dirs[i] = e.Direction
	}
	return dirs
}

// IsSettlement returns true for settlement rooms
func (r *RoomDefinition) IsSettlement() bool {
	return r.Settlement != nil
}

// Context returns the view of the room seen by its neighbors' templates
func (r *RoomDefinition) Context() map[string]any {
	ctx := map[string]any{
		"id":    r.ID,
		"name":  r.Name,
		"kind":  r.Kind.String(),
		"biome": r.BiomeID,
	}
	if r.Settlement != nil && r.Settlement.Settlement != nil {
		ctx["settlement"] = r.Settlement.Settlement.Name
		ctx["size"] = r.Settlement.Settlement.Size.String()
	}
	return ctx
}
