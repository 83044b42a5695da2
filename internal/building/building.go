// Package building generates the buildings of a settlement and houses its
// NPCs in them.
package building

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/npc"
	"github.com/lawnchairsociety/procworld/internal/rng"
	"github.com/lawnchairsociety/procworld/internal/settlement"
)

// Building sizes
const (
	Small  = "small"
	Medium = "medium"
	Large  = "large"
)

// InventoryItem is one line of a shop's stock.
type InventoryItem struct {
	ItemID       string `yaml:"item_id" json:"itemId"`
	Price        int    `yaml:"price" json:"price"`
	Quantity     int    `yaml:"quantity" json:"quantity"`
	RestockHours int    `yaml:"restock_hours" json:"restockHours"`
}

// Building is a generated building.
type Building struct {
	ID           string          `yaml:"id" json:"id"`
	SettlementID string          `yaml:"settlement_id" json:"settlementId"`
	Name         string          `yaml:"name" json:"name"`
	Type         string          `yaml:"type" json:"type"`
	Size         string          `yaml:"size" json:"size"`
	Description  string          `yaml:"description" json:"description"`
	NPCIDs       []string        `yaml:"npc_ids,omitempty" json:"npcIds,omitempty"`
	Inventory    []InventoryItem `yaml:"inventory,omitempty" json:"inventory,omitempty"`
}

// ID formats the id of the i-th building of a settlement.
func ID(settlementID string, i int) string {
	return fmt.Sprintf("%s_building_%d", settlementID, i)
}

// IsShop reports whether the building sells anything.
func (b *Building) IsShop() bool {
	return len(b.Inventory) > 0
}

// Context returns the template view of the building.
func (b *Building) Context() map[string]any {
	return map[string]any{
		"id":   b.ID,
		"name": b.Name,
		"type": b.Type,
		"size": b.Size,
	}
}

// Generator builds settlement buildings.
type Generator struct {
	tables *gamedata.BuildingTables
	engine *narrative.Engine
}

// NewGenerator creates a building generator.
func NewGenerator(tables *gamedata.BuildingTables, engine *narrative.Engine) *Generator {
	return &Generator{
		tables: tables,
		engine: engine,
	}
}

// Generate builds every building in s.
func (g *Generator) Generate(s *settlement.Settlement) []*Building {
	types := g.Types(s)
	buildings := make([]*Building, 0, len(types))
	for i, t := range types {
		buildings = append(buildings, g.generateBuilding(s, i, t))
	}
	return buildings
}

// Types lists the building types s needs. Only residences repeat.
func (g *Generator) Types(s *settlement.Settlement) []string {
	var types []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id == gamedata.BuildingResidence || !seen[id] {
			seen[id] = true
			types = append(types, id)
		}
	}

	for _, id := range g.tables.SizeBuildings[s.Size.String()] {
		add(id)
	}
	for _, tag := range s.Economy {
		for _, id := range g.tables.EconomyBuildings[tag] {
			add(id)
		}
	}
	extra := g.tables.ExtraResidences[s.Size.String()].Roll(s.Rand("building_residences"))
	for i := 0; i < extra; i++ {
		add(gamedata.BuildingResidence)
	}
	return types
}

func (g *Generator) generateBuilding(s *settlement.Settlement, i int, typeID string) *Building {
	r := s.Rand(fmt.Sprintf("building_%d", i))
	def, _ := g.tables.Type(typeID)

	b := &Building{
		ID:           ID(s.ID, i),
		SettlementID: s.ID,
		Type:         typeID,
		Size:         def.Size,
	}
	if b.Size == "" {
		b.Size = r.WeightedPick(g.tables.SizeWeights[s.Size.String()])
	}
	if b.Size == "" {
		b.Size = Small
	}

	ctx := s.Context()
	ctx["building"] = b.Context()
	if len(def.Names) > 0 {
		b.Name = g.engine.Render(rng.Pick(r, def.Names), ctx, s.Seed(fmt.Sprintf("building_%d_name", i)))
	}
	ctx["building"] = b.Context()
	b.Description = g.engine.Render(def.Description, ctx, s.Seed(fmt.Sprintf("building_%d_description", i)))

	b.Inventory = stock(def.Inventory, s.Wealth)
	return b
}

// stock scales a base inventory by settlement wealth. Richer places keep
// more on the shelves and charge a little more for it.
func stock(base []gamedata.InventoryEntry, wealth int) []InventoryItem {
	if len(base) == 0 {
		return nil
	}
	quantityMultiplier := 0.5 + float64(wealth)/10*1.5
	priceMultiplier := 1 + float64(wealth-5)*0.04

	items := make([]InventoryItem, 0, len(base))
	for _, e := range base {
		items = append(items, InventoryItem{
			ItemID:       e.ItemID,
			Price:        max(1, int(math.Round(float64(e.Price)*priceMultiplier))),
			Quantity:     max(1, int(math.Round(float64(e.Quantity)*quantityMultiplier))),
			RestockHours: e.RestockHours,
		})
	}
	return items
}

// Assign houses each NPC in the first building of the type its role maps
// to, updating both sides. Roles without a mapped type stay unhoused.
func (g *Generator) Assign(buildings []*Building, npcs []*npc.NPC) {
	first := make(map[string]*Building)
	for _, b := range buildings {
		if _, ok := first[b.Type]; !ok {
			first[b.Type] = b
		}
	}

	for _, n := range npcs {
		typeID, ok := g.tables.RoleBuildings[n.Role]
		if !ok {
			continue
		}
		b, ok := first[typeID]
		if !ok {
			continue
		}
		b.NPCIDs = append(b.NPCIDs, n.ID)
		n.BuildingID = b.ID
	}
}

// Find returns the building with the given id, or nil.
func Find(buildings []*Building, id string) *Building {
	for _, b := range buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}
