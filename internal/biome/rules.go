// Package biome picks the environment of a surface or underground
// coordinate from the biomes already generated around it.
package biome

import (
	"github.com/lawnchairsociety/procworld/internal/gamedata"
)

// Rules defines which biomes may sit next to each other
type Rules struct {
	// CanConnect is symmetric: setting a-b also sets b-a
	CanConnect map[string]map[string]bool
}

// NewRules builds the compatibility relation from the biome tables
func NewRules(tables *gamedata.BiomeTables) *Rules {
	r := &Rules{
		CanConnect: make(map[string]map[string]bool),
	}
	for _, b := range tables.Biomes {
		// A biome always borders itself
		r.setCanConnect(b.ID, b.ID, true)
		for _, other := range b.Compatible {
			r.setCanConnect(b.ID, other, true)
		}
	}
	return r
}

// setCanConnect sets bidirectional connection permission
func (r *Rules) setCanConnect(b1, b2 string, allowed bool) {
	if r.CanConnect[b1] == nil {
		r.CanConnect[b1] = make(map[string]bool)
	}
	if r.CanConnect[b2] == nil {
		r.CanConnect[b2] = make(map[string]bool)
	}
	r.CanConnect[b1][b2] = allowed
	r.CanConnect[b2][b1] = allowed
}

// Known returns true if the biome takes part in the relation
func (r *Rules) Known(id string) bool {
	_, ok := r.CanConnect[id]
	return ok
}

// CanBiomesConnect returns true if two biomes can be adjacent
func (r *Rules) CanBiomesConnect(b1, b2 string) bool {
	if r.CanConnect[b1] == nil {
		return false
	}
	return r.CanConnect[b1][b2]
}
