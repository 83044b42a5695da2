package biome

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// WorldSeed seeds the terrain noise. Terrain must be identical in every
// process, so it is a constant rather than configuration.
const WorldSeed int64 = 20240611

const (
	highElevation = 0.65
	wetMoisture   = 0.6
)

// Sample is the terrain at one surface coordinate
type Sample struct {
	Elevation float64 `yaml:"elevation" json:"elevation"` // 0..1
	Moisture  float64 `yaml:"moisture" json:"moisture"`   // 0..1
	High      bool    `yaml:"high" json:"high"`
	Wet       bool    `yaml:"wet" json:"wet"`
}

// Context returns the template view of the sample
func (s Sample) Context() map[string]any {
	return map[string]any{
		"elevation": s.Elevation,
		"moisture":  s.Moisture,
		"high":      s.High,
		"wet":       s.Wet,
	}
}

// Terrain samples elevation and moisture noise fields
type Terrain struct {
	elevation opensimplex.Noise
	moisture  opensimplex.Noise
}

// NewTerrain creates terrain noise for a seed. Two independent layers use
// seed and seed+1.
func NewTerrain(seed int64) *Terrain {
	return &Terrain{
		elevation: opensimplex.NewNormalized(seed),
		moisture:  opensimplex.NewNormalized(seed + 1),
	}
}

// At samples the terrain at (x, y)
func (t *Terrain) At(x, y int) Sample {
	fx, fy := float64(x), float64(y)
	s := Sample{
		Elevation: octaveNoise(t.elevation, fx, fy, 4, 0.08, 0.5),
		Moisture:  octaveNoise(t.moisture, fx, fy, 3, 0.06, 0.5),
	}
	s.High = s.Elevation >= highElevation
	s.Wet = s.Moisture >= wetMoisture
	return s
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
