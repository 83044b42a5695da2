package biome

import (
	"math"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/rng"
)

// Weight multipliers for favored biomes.
const (
	nearOriginRadius    = 20.0
	nearOriginBoost     = 2.0
	depthBoostPerLevel  = 0.5
	mediumDistanceMin   = 15.0
	mediumDistanceMax   = 60.0
	mediumDistanceBoost = 2.5
)

// Selector chooses biomes under the compatibility rules
type Selector struct {
	tables *gamedata.BiomeTables
	rules  *Rules
}

// NewSelector creates a selector over the biome tables
func NewSelector(tables *gamedata.BiomeTables) *Selector {
	return &Selector{
		tables: tables,
		rules:  NewRules(tables),
	}
}

// Rules returns the compatibility relation in use
func (s *Selector) Rules() *Rules {
	return s.rules
}

// Candidates returns the biomes of the layer at z that are compatible
// with every neighbor. Neighbors that are not biomes, such as settlements,
// place no constraint.
func (s *Selector) Candidates(z int, neighbors []string) []gamedata.BiomeDefinition {
	known := s.knownNeighbors(neighbors)

	var candidates []gamedata.BiomeDefinition
	for _, b := range s.tables.Biomes {
		if !inLayer(b, z) {
			continue
		}
		ok := true
		for _, n := range known {
			if !s.rules.CanBiomesConnect(b.ID, n) {
				ok = false
				break
			}
		}
		if ok {
			candidates = append(candidates, b)
		}
	}
	return candidates
}

// Select picks the biome at (x, y, z) given the biomes of its generated
// neighbors, in neighbor order. When no biome fits every neighbor the
// first neighbor's biome is reused so the map stays connected. Returns ""
// when z has no biome layer.
func (s *Selector) Select(x, y, z int, neighbors []string) string {
	candidates := s.Candidates(z, neighbors)
	if len(candidates) == 0 {
		if known := s.knownNeighbors(neighbors); len(known) > 0 {
			return known[0]
		}
		return ""
	}

	weights := make([]float64, len(candidates))
	for i, b := range candidates {
		weights[i] = b.Weight * Multiplier(b.Favor, x, y, z)
	}
	idx := rng.ForCoord(x, y, z, "biome").WeightedIndex(weights)
	if idx < 0 {
		return candidates[0].ID
	}
	return candidates[idx].ID
}

func (s *Selector) knownNeighbors(neighbors []string) []string {
	known := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		if s.rules.Known(n) {
			known = append(known, n)
		}
	}
	return known
}

func inLayer(b gamedata.BiomeDefinition, z int) bool {
	switch {
	case z == 0:
		return b.Surface
	case z < 0:
		return b.Underground
	default:
		return false
	}
}

// Multiplier returns the weight multiplier a favor rule gives at a
// coordinate. Wilderness thins out away from the origin, caves grow more
// common with depth, and ruins cluster in a ring at medium distance.
func Multiplier(favor gamedata.Favor, x, y, z int) float64 {
	switch favor {
	case gamedata.FavorNearOrigin:
		closeness := math.Max(0, 1-region.Distance(x, y)/nearOriginRadius)
		return 1 + nearOriginBoost*closeness
	case gamedata.FavorDepth:
		return 1 + depthBoostPerLevel*math.Abs(float64(z))
	case gamedata.FavorMediumDistance:
		d := region.Distance(x, y)
		if d >= mediumDistanceMin && d <= mediumDistanceMax {
			return mediumDistanceBoost
		}
		return 1
	default:
		return 1
	}
}
