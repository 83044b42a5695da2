package building

import (
	"reflect"
	"testing"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/npc"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/settlement"
)

type fixture struct {
	data        *gamedata.Data
	settlements *settlement.Generator
	npcs        *npc.Generator
	buildings   *Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data, err := gamedata.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	engine := narrative.NewEngine(data.Templates())
	return &fixture{
		data:        data,
		settlements: settlement.NewGenerator(data.Settlements(), engine),
		npcs:        npc.NewGenerator(data.NPCs(), data.Settlements(), engine),
		buildings:   NewGenerator(data.Buildings(), engine),
	}
}

func TestGenerateDeterministic(t *testing.T) {
	f := newFixture(t)
	s := f.settlements.Generate(0, 21, region.Town)
	if !reflect.DeepEqual(f.buildings.Generate(s), f.buildings.Generate(s)) {
		t.Error("building generation is not deterministic")
	}
}

func TestCityHasMoreBuildingsThanHamlet(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		city := f.buildings.Generate(f.settlements.Generate(i*7, 0, region.City))
		hamlet := f.buildings.Generate(f.settlements.Generate(i*7, 0, region.Hamlet))
		if len(city) <= len(hamlet) {
			t.Errorf("seed %d: city has %d buildings, hamlet %d", i, len(city), len(hamlet))
		}
	}
}

func TestBuildingTypesAndSizes(t *testing.T) {
	f := newFixture(t)
	tables := f.data.Buildings()

	for _, size := range region.AllSizes() {
		for i := 0; i < 10; i++ {
			s := f.settlements.Generate(i*7, 7, size)
			buildings := f.buildings.Generate(s)

			seen := make(map[string]int)
			for j, b := range buildings {
				seen[b.Type]++
				if b.ID != ID(s.ID, j) {
					t.Errorf("ID = %q", b.ID)
				}
				if b.Name == "" || b.Description == "" {
					t.Errorf("%s has no name or description", b.ID)
				}
				def, _ := tables.Type(b.Type)
				if def.Size != "" && b.Size != def.Size {
					t.Errorf("%s size = %s, forced %s", b.Type, b.Size, def.Size)
				}
				if b.Size != Small && b.Size != Medium && b.Size != Large {
					t.Errorf("invalid size %q", b.Size)
				}
				if b.IsShop() != (len(def.Inventory) > 0) {
					t.Errorf("%s shop = %v with %d base lines", b.Type, b.IsShop(), len(def.Inventory))
				}
			}
			for typ, n := range seen {
				if n > 1 && typ != gamedata.BuildingResidence {
					t.Errorf("type %q appears %d times", typ, n)
				}
			}
			for _, typ := range tables.SizeBuildings[size.String()] {
				if seen[typ] == 0 {
					t.Errorf("%s missing required %q", size, typ)
				}
			}
			for _, tag := range s.Economy {
				for _, typ := range tables.EconomyBuildings[tag] {
					if seen[typ] == 0 {
						t.Errorf("%s economy missing %q", tag, typ)
					}
				}
			}
		}
	}
}

func TestStockScalesWithWealth(t *testing.T) {
	base := []gamedata.InventoryEntry{
		{ItemID: "bread", Price: 10, Quantity: 10, RestockHours: 12},
		{ItemID: "candle", Price: 1, Quantity: 1, RestockHours: 24},
	}
	tests := []struct {
		wealth   int
		price    int
		quantity int
	}{
		{wealth: 1, price: 8, quantity: 7},
		{wealth: 5, price: 10, quantity: 13},
		{wealth: 10, price: 12, quantity: 20},
	}

	for _, tt := range tests {
		items := stock(base, tt.wealth)
		if len(items) != 2 {
			t.Fatalf("stock returned %d lines", len(items))
		}
		if items[0].Price != tt.price || items[0].Quantity != tt.quantity {
			t.Errorf("wealth %d: price %d qty %d, want %d and %d",
				tt.wealth, items[0].Price, items[0].Quantity, tt.price, tt.quantity)
		}
		if items[1].Price < 1 || items[1].Quantity < 1 {
			t.Errorf("wealth %d: cheap line fell below 1: %+v", tt.wealth, items[1])
		}
		if items[0].RestockHours != 12 {
			t.Errorf("restock hours changed: %d", items[0].RestockHours)
		}
	}
	if stock(nil, 5) != nil {
		t.Error("empty base should have no inventory")
	}
}

func TestAssign(t *testing.T) {
	f := newFixture(t)
	roleBuildings := f.data.Buildings().RoleBuildings

	for _, size := range region.AllSizes() {
		s := f.settlements.Generate(0, 63, size)
		npcs := f.npcs.Generate(s)
		buildings := f.buildings.Generate(s)
		f.buildings.Assign(buildings, npcs)

		for _, n := range npcs {
			typ, mapped := roleBuildings[n.Role]
			if n.BuildingID == "" {
				if !mapped {
					continue
				}
				for _, b := range buildings {
					if b.Type == typ {
						t.Errorf("%s (%s) unhoused though a %s exists", n.ID, n.Role, typ)
						break
					}
				}
				continue
			}
			b := Find(buildings, n.BuildingID)
			if b == nil {
				t.Fatalf("%s housed in unknown building %s", n.ID, n.BuildingID)
			}
			if b.Type != typ {
				t.Errorf("%s (%s) housed in a %s, want %s", n.ID, n.Role, b.Type, typ)
			}
			found := false
			for _, id := range b.NPCIDs {
				found = found || id == n.ID
			}
			if !found {
				t.Errorf("%s does not list %s", b.ID, n.ID)
			}
		}

		for _, b := range buildings {
			for _, id := range b.NPCIDs {
				if n := npc.Find(npcs, id); n == nil || n.BuildingID != b.ID {
					t.Errorf("%s lists %s which does not point back", b.ID, id)
				}
			}
		}
	}
}

func TestAssignSkipsUnmappedRoles(t *testing.T) {
	g := &Generator{tables: &gamedata.BuildingTables{RoleBuildings: map[string]string{"guard": "barracks"}}}
	buildings := []*Building{{ID: "b0", Type: "barracks"}, {ID: "b1", Type: "barracks"}}
	npcs := []*npc.NPC{{ID: "n0", Role: "guard"}, {ID: "n1", Role: "thief"}, {ID: "n2", Role: "guard"}}

	g.Assign(buildings, npcs)

	if npcs[0].BuildingID != "b0" || npcs[2].BuildingID != "b0" {
		t.Errorf("guards housed in %q and %q, want b0", npcs[0].BuildingID, npcs[2].BuildingID)
	}
	if npcs[1].BuildingID != "" {
		t.Errorf("thief housed in %q", npcs[1].BuildingID)
	}
	if len(buildings[1].NPCIDs) != 0 {
		t.Errorf("second barracks got %v", buildings[1].NPCIDs)
	}
}
