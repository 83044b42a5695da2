// Package settlement generates the settlement found at a surface coordinate.
package settlement

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/rng"
)

// Problem severities, mildest first.
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// History event types.
const (
	EventFounding   = "founding"
	EventDisaster   = "disaster"
	EventProsperity = "prosperity"
	EventConflict   = "conflict"
	EventDiscovery  = "discovery"
)

var laterEvents = []string{EventDisaster, EventProsperity, EventConflict, EventDiscovery}

// Problem is a current trouble in the settlement.
type Problem struct {
	Type             string `yaml:"type" json:"type"`
	Severity         string `yaml:"severity" json:"severity"`
	ShortDescription string `yaml:"short_description" json:"shortDescription"`
	Description      string `yaml:"description" json:"description"`
	DurationDays     int    `yaml:"duration_days" json:"durationDays"`
}

// HistoryEvent is one entry in a settlement's past.
type HistoryEvent struct {
	Type        string `yaml:"type" json:"type"`
	YearsAgo    int    `yaml:"years_ago" json:"yearsAgo"`
	Description string `yaml:"description" json:"description"`
}

// Settlement is a generated settlement.
type Settlement struct {
	ID            string         `yaml:"id" json:"id"`
	X             int            `yaml:"x" json:"x"`
	Y             int            `yaml:"y" json:"y"`
	Name          string         `yaml:"name" json:"name"`
	Size          region.Size    `yaml:"size" json:"size"`
	Population    int            `yaml:"population" json:"population"`
	// PopulationMin and PopulationMax are the range for the settlement's size
	PopulationMin int            `yaml:"population_min" json:"populationMin"`
	PopulationMax int            `yaml:"population_max" json:"populationMax"`
	Economy       []string       `yaml:"economy" json:"economy"`
	Culture       string         `yaml:"culture" json:"culture"`
	CultureName   string         `yaml:"culture_name" json:"cultureName"`
	Problem       *Problem       `yaml:"problem,omitempty" json:"problem,omitempty"`
	History       []HistoryEvent `yaml:"history" json:"history"`
	Wealth        int            `yaml:"wealth" json:"wealth"`
	Defense       int            `yaml:"defense" json:"defense"`
	FoundingAge   int            `yaml:"founding_age" json:"foundingAge"`
	Description   string         `yaml:"description" json:"description"`
}

// ID formats the id of the settlement at (x, y).
func ID(x, y int) string {
	return fmt.Sprintf("settlement_%d_%d", x, y)
}

// Seed derives the seed for one of the settlement's random streams.
func (s *Settlement) Seed(salt string) uint32 {
	return rng.Seed(s.X, s.Y, 0, salt)
}

// Rand returns the LCG stream for salt at the settlement's coordinate.
func (s *Settlement) Rand(salt string) *rng.Rand {
	return rng.ForCoord(s.X, s.Y, 0, salt)
}

// Context returns the template context describing the settlement.
func (s *Settlement) Context() narrative.Context {
	m := map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"size":       s.Size.String(),
		"population": humanize.Comma(int64(s.Population)),
		"culture":    s.CultureName,
		"economy":    s.Economy,
		"wealth":     s.Wealth,
		"defense":    s.Defense,
		"founded":    s.FoundingAge,
	}
	if s.Problem != nil {
		m["problem"] = map[string]any{
			"type":     s.Problem.Type,
			"severity": s.Problem.Severity,
			"duration": s.Problem.DurationDays,
			"short":    s.Problem.ShortDescription,
		}
	}
	return narrative.Context{"settlement": m}
}

// Generator builds settlements from the settlement tables.
type Generator struct {
	tables *gamedata.SettlementTables
	engine *narrative.Engine
}

// NewGenerator creates a settlement generator.
func NewGenerator(tables *gamedata.SettlementTables, engine *narrative.Engine) *Generator {
	return &Generator{
		tables: tables,
		engine: engine,
	}
}

// Generate builds the settlement at (x, y) with the given size. Every
// attribute draws from its own seed so they vary independently.
func (g *Generator) Generate(x, y int, size region.Size) *Settlement {
	s := &Settlement{
		ID:   ID(x, y),
		X:    x,
		Y:    y,
		Size: size,
	}
	sizeKey := size.String()

	culture := rng.Pick(s.Rand("culture"), g.tables.Cultures)
	s.Culture = culture.ID
	s.CultureName = culture.Name

	nameRand := s.Rand("name")
	// Casers hold state, so each call gets its own
	s.Name = cases.Title(language.English).String(rng.Pick(nameRand, culture.Prefixes) + rng.Pick(nameRand, culture.Suffixes))

	econCount := g.tables.EconomyCount[sizeKey].Roll(s.Rand("economy_count"))
	shuffled := rng.Shuffle(s.Rand("economy"), g.tables.Economies)
	if econCount > len(shuffled) {
		econCount = len(shuffled)
	}
	if econCount < 1 {
		econCount = 1
	}
	s.Economy = append([]string(nil), shuffled[:econCount]...)

	popRange := g.tables.Population[sizeKey]
	s.PopulationMin, s.PopulationMax = popRange.Min, popRange.Max
	s.Population = popRange.Roll(s.Rand("population"))

	wealth := g.tables.WealthBase[sizeKey]
	defense := g.tables.DefenseBase[sizeKey]
	for _, tag := range s.Economy {
		wealth += g.tables.WealthBonus[tag]
		defense += g.tables.DefenseBonus[tag]
	}
	s.Wealth = clamp(wealth+s.Rand("wealth").Range(-2, 2), 1, 10)
	s.Defense = clamp(defense+s.Rand("defense").Range(-2, 2), 1, 10)

	s.FoundingAge = g.tables.FoundingAge[sizeKey].Roll(s.Rand("founding_age"))

	// Problem and history templates read the settlement context, so both
	// run after the core attributes are fixed.
	s.Problem = g.generateProblem(s)
	s.History = g.generateHistory(s)
	s.Description = g.engine.RenderNamed("settlement_description", s.Context(), s.Seed("description"))

	return s
}

func (g *Generator) generateProblem(s *Settlement) *Problem {
	r := s.Rand("problem")
	if r.Chance(0.4) {
		return nil
	}

	def := rng.Pick(r, g.tables.Problems)
	p := &Problem{
		Type:         def.Type,
		Severity:     r.WeightedPick(g.tables.Severity[s.Size.String()]),
		DurationDays: r.Range(1, 30),
	}
	if p.Severity == "" {
		p.Severity = SeverityMinor
	}

	ctx := s.Context()
	ctx["problem"] = map[string]any{
		"type":     p.Type,
		"severity": p.Severity,
		"duration": p.DurationDays,
	}
	p.ShortDescription = g.engine.Render(def.Short, ctx, s.Seed("problem_short"))
	p.Description = g.engine.Render(def.Long, ctx, s.Seed("problem_long"))
	return p
}

func (g *Generator) generateHistory(s *Settlement) []HistoryEvent {
	r := s.Rand("history")
	ctx := s.Context()

	events := []HistoryEvent{{
		Type:        EventFounding,
		YearsAgo:    s.FoundingAge,
		Description: g.renderEvent(EventFounding, ctx, s.Seed("history_founding")),
	}}

	extra := 1 + s.FoundingAge/100
	for i := 0; i < extra; i++ {
		eventType := rng.Pick(r, laterEvents)
		yearsAgo := 1
		if s.FoundingAge > 1 {
			yearsAgo = r.Range(1, s.FoundingAge-1)
		}
		events = append(events, HistoryEvent{
			Type:        eventType,
			YearsAgo:    yearsAgo,
			Description: g.renderEvent(eventType, ctx, s.Seed(fmt.Sprintf("history_%d", i))),
		})
	}

	// Oldest first
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].YearsAgo > events[j].YearsAgo
	})
	return events
}

func (g *Generator) renderEvent(eventType string, ctx narrative.Context, seed uint32) string {
	templates := g.tables.History[eventType]
	if len(templates) == 0 {
		return ""
	}
	tpl := templates[int(seed%uint32(len(templates)))]
	return g.engine.Render(tpl, ctx, seed)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
