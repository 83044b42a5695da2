package gamedata

import (
	"github.com/lawnchairsociety/procworld/internal/rng"
)

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Roll draws a value from the range.
func (r Range) Roll(rand *rng.Rand) int {
	return rand.Range(r.Min, r.Max)
}

// Culture supplies naming material for a settlement and its people.
type Culture struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Prefixes    []string `yaml:"prefixes"`
	Suffixes    []string `yaml:"suffixes"`
	MaleNames   []string `yaml:"male_names"`
	FemaleNames []string `yaml:"female_names"`
}

// ProblemDefinition is a kind of trouble a settlement can have.
type ProblemDefinition struct {
	Type  string `yaml:"type"`
	Short string `yaml:"short"` // template
	Long  string `yaml:"long"`  // template
}

// SettlementTables drives the settlement generator. Size-keyed maps use
// the tier names hamlet, village, town and city.
type SettlementTables struct {
	Cultures     []Culture                 `yaml:"cultures"`
	Economies    []string                  `yaml:"economies"`
	EconomyCount map[string]Range          `yaml:"economy_count"`
	Population   map[string]Range          `yaml:"population"`
	FoundingAge  map[string]Range          `yaml:"founding_age"`
	WealthBase   map[string]int            `yaml:"wealth_base"`
	DefenseBase  map[string]int            `yaml:"defense_base"`
	WealthBonus  map[string]int            `yaml:"wealth_bonus"`
	DefenseBonus map[string]int            `yaml:"defense_bonus"`
	Problems     []ProblemDefinition       `yaml:"problems"`
	Severity     map[string][]rng.Weighted `yaml:"severity"`
	History      map[string][]string       `yaml:"history"` // event type -> templates
}

// Culture returns a culture by id.
func (t *SettlementTables) Culture(id string) (Culture, bool) {
	for _, c := range t.Cultures {
		if c.ID == id {
			return c, true
		}
	}
	return Culture{}, false
}

// Greeting is a greeting template, optionally tied to a personality trait.
type Greeting struct {
	Trait string `yaml:"trait,omitempty"`
	Text  string `yaml:"text"`
}

// RoleDefinition describes an NPC occupation.
type RoleDefinition struct {
	ID               string     `yaml:"id"`
	Title            string     `yaml:"title"`
	Traits           []string   `yaml:"traits"`
	Wealth           int        `yaml:"wealth"`
	Secretive        bool       `yaml:"secretive,omitempty"`
	MaxRelationships int        `yaml:"max_relationships,omitempty"`
	Topics           []string   `yaml:"topics"`
	Greetings        []Greeting `yaml:"greetings"`
}

// SecretDefinition is a kind of secret an NPC can keep.
type SecretDefinition struct {
	Type string `yaml:"type"`
	Text string `yaml:"text"` // template
}

// Surnames holds the surname pools.
type Surnames struct {
	Occupational []string `yaml:"occupational"`
	Locational   []string `yaml:"locational"`
	Descriptive  []string `yaml:"descriptive"`
}

// Pools returns the non-empty pools in a fixed order.
func (s Surnames) Pools() [][]string {
	var pools [][]string
	for _, p := range [][]string{s.Occupational, s.Locational, s.Descriptive} {
		if len(p) > 0 {
			pools = append(pools, p)
		}
	}
	return pools
}

// NPCTables drives the NPC generator.
type NPCTables struct {
	Roles         []RoleDefinition    `yaml:"roles"`
	SizeRoles     map[string][]string `yaml:"size_roles"`
	EconomyRoles  map[string][]string `yaml:"economy_roles"`
	ExtraRoles    []string            `yaml:"extra_roles"`
	ExtraCount    map[string]Range    `yaml:"extra_count"`
	Surnames      Surnames            `yaml:"surnames"`
	Secrets       []SecretDefinition  `yaml:"secrets"`
	Relationships map[string][]string `yaml:"relationships"` // type -> templates
}

// Role returns a role by id.
func (t *NPCTables) Role(id string) (RoleDefinition, bool) {
	for _, r := range t.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return RoleDefinition{}, false
}

// InventoryEntry is a base shop stock line before wealth scaling.
type InventoryEntry struct {
	ItemID       string `yaml:"item"`
	Price        int    `yaml:"price"`
	Quantity     int    `yaml:"quantity"`
	RestockHours int    `yaml:"restock_hours"`
}

// BuildingType describes a kind of building.
type BuildingType struct {
	ID          string           `yaml:"id"`
	Names       []string         `yaml:"names"` // templates
	Description string           `yaml:"description"`
	Size        string           `yaml:"size,omitempty"` // forced size, if any
	Inventory   []InventoryEntry `yaml:"inventory,omitempty"`
}

// BuildingTables drives the building generator.
type BuildingTables struct {
	Types            []BuildingType            `yaml:"types"`
	SizeBuildings    map[string][]string       `yaml:"size_buildings"`
	EconomyBuildings map[string][]string       `yaml:"economy_buildings"`
	ExtraResidences  map[string]Range          `yaml:"extra_residences"`
	SizeWeights      map[string][]rng.Weighted `yaml:"size_weights"`
	RoleBuildings    map[string]string         `yaml:"role_buildings"`
}

// Type returns a building type by id.
func (t *BuildingTables) Type(id string) (BuildingType, bool) {
	for _, b := range t.Types {
		if b.ID == id {
			return b, true
		}
	}
	return BuildingType{}, false
}

// QuestTemplate is the shape of a generated quest.
type QuestTemplate struct {
	Type        string   `yaml:"type"`
	Name        string   `yaml:"name"`        // template
	Description string   `yaml:"description"` // template
	Objectives  []string `yaml:"objectives"`
	Difficulty  string   `yaml:"difficulty"`
}

// RewardBase is the unscaled reward for a difficulty.
type RewardBase struct {
	Gold  int      `yaml:"gold"`
	XP    int      `yaml:"xp"`
	Items []string `yaml:"items,omitempty"`
}

// QuestTables drives the quest generator.
type QuestTables struct {
	Problem          map[string]QuestTemplate `yaml:"problem"` // problem type -> template
	Secret           map[string]QuestTemplate `yaml:"secret"`  // secret type -> template
	Side             []QuestTemplate          `yaml:"side"`
	SideCount        map[string]Range         `yaml:"side_count"`
	Items            []string                 `yaml:"items"`
	Destinations     []string                 `yaml:"destinations"`
	Rewards          map[string]RewardBase    `yaml:"rewards"`
	WealthMultiplier []float64                `yaml:"wealth_multiplier"` // index = wealth-1
}

// RoomTypeDefinition describes a dungeon room type.
type RoomTypeDefinition struct {
	Names       []string `yaml:"names"`
	Description string   `yaml:"description"` // template
}

// DungeonTables drives the floor generator.
type DungeonTables struct {
	Biomes    []string                      `yaml:"biomes"`
	RoomCount Range                         `yaml:"room_count"`
	RoomTypes map[string][]rng.Weighted     `yaml:"room_types"` // biome -> weighted room types
	Rooms     map[string]RoomTypeDefinition `yaml:"rooms"`
}

// Favor names a weighting rule applied by the biome selector.
type Favor string

const (
	FavorNone           Favor = ""
	FavorNearOrigin     Favor = "near_origin"
	FavorDepth          Favor = "depth"
	FavorMediumDistance Favor = "medium_distance"
)

// BiomeDefinition describes an environment.
type BiomeDefinition struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Surface     bool           `yaml:"surface"`
	Underground bool           `yaml:"underground"`
	Weight      float64        `yaml:"weight"`
	Favor       Favor          `yaml:"favor,omitempty"`
	Compatible  []string       `yaml:"compatible"`
	Names       []string       `yaml:"names"`       // room name templates
	Description string         `yaml:"description"` // template
	Items       []rng.Weighted `yaml:"items"`
	Enemies     []rng.Weighted `yaml:"enemies"`
	Resources   []rng.Weighted `yaml:"resources"`
}

// BiomeTables lists every biome.
type BiomeTables struct {
	Biomes []BiomeDefinition `yaml:"biomes"`
}

// Biome returns a biome by id.
func (t *BiomeTables) Biome(id string) (BiomeDefinition, bool) {
	for _, b := range t.Biomes {
		if b.ID == id {
			return b, true
		}
	}
	return BiomeDefinition{}, false
}
