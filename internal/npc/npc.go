// Package npc generates the inhabitants of a settlement and the
// relationships between them.
package npc

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/rng"
	"github.com/lawnchairsociety/procworld/internal/settlement"
)

// Genders
const (
	Male   = "male"
	Female = "female"
)

// Relationship types. Family only joins the candidate pool some of the time.
const (
	RelationFriend   = "friend"
	RelationBusiness = "business"
	RelationRival    = "rival"
	RelationFamily   = "family"
)

const (
	defaultMaxRelationships = 2
	secretChance            = 0.3
	secretiveSecretChance   = 0.5
	singleSecretChance      = 0.8
	familyChance            = 0.2
)

// Secret is something an NPC would rather nobody knew.
type Secret struct {
	Type string `yaml:"type" json:"type"`
	Text string `yaml:"text" json:"text"`
}

// Relationship links an NPC to another NPC in the same settlement.
type Relationship struct {
	TargetNPCID string `yaml:"target_npc_id" json:"targetNpcId"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
}

// NPC is a generated settlement inhabitant.
type NPC struct {
	ID            string         `yaml:"id" json:"id"`
	SettlementID  string         `yaml:"settlement_id" json:"settlementId"`
	Name          string         `yaml:"name" json:"name"`
	FirstName     string         `yaml:"first_name" json:"firstName"`
	Surname       string         `yaml:"surname" json:"surname"`
	Gender        string         `yaml:"gender" json:"gender"`
	Role          string         `yaml:"role" json:"role"`
	Title         string         `yaml:"title" json:"title"`
	Traits        []string       `yaml:"traits" json:"traits"`
	Age           int            `yaml:"age" json:"age"`
	Wealth        int            `yaml:"wealth" json:"wealth"`
	Greeting      string         `yaml:"greeting" json:"greeting"`
	Topics        []string       `yaml:"topics" json:"topics"`
	Secrets       []Secret       `yaml:"secrets,omitempty" json:"secrets,omitempty"`
	Relationships []Relationship `yaml:"relationships,omitempty" json:"relationships,omitempty"`
	BuildingID    string         `yaml:"building_id,omitempty" json:"buildingId,omitempty"`
}

// ID formats the id of the i-th NPC of a settlement.
func ID(settlementID string, i int) string {
	return fmt.Sprintf("%s_npc_%d", settlementID, i)
}

// HasTrait reports whether the NPC has a personality trait.
func (n *NPC) HasTrait(trait string) bool {
	for _, t := range n.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Context returns the template view of the NPC.
func (n *NPC) Context() map[string]any {
	return map[string]any{
		"id":         n.ID,
		"name":       n.Name,
		"first_name": n.FirstName,
		"surname":    n.Surname,
		"gender":     n.Gender,
		"role":       strings.ToLower(n.Title),
		"title":      n.Title,
		"traits":     n.Traits,
		"age":        n.Age,
	}
}

// Generator builds the NPCs of a settlement.
type Generator struct {
	tables   *gamedata.NPCTables
	cultures *gamedata.SettlementTables
	engine   *narrative.Engine
}

// NewGenerator creates an NPC generator. Culture naming material comes
// from the settlement tables.
func NewGenerator(tables *gamedata.NPCTables, cultures *gamedata.SettlementTables, engine *narrative.Engine) *Generator {
	return &Generator{
		tables:   tables,
		cultures: cultures,
		engine:   engine,
	}
}

// Generate builds every NPC living in s. Relationships are filled in once
// the whole population exists.
func (g *Generator) Generate(s *settlement.Settlement) []*NPC {
	roles := g.Roles(s)
	npcs := make([]*NPC, 0, len(roles))
	for i, role := range roles {
		npcs = append(npcs, g.generateNPC(s, i, role))
	}
	g.relate(s, npcs)
	return npcs
}

// Roles lists the roles s needs, in generation order: the size minimum,
// the mayor, economy roles, then extra generic roles which may repeat.
func (g *Generator) Roles(s *settlement.Settlement) []string {
	var roles []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			roles = append(roles, id)
		}
	}

	for _, id := range g.tables.SizeRoles[s.Size.String()] {
		add(id)
	}
	add(gamedata.RoleMayor)
	for _, tag := range s.Economy {
		for _, id := range g.tables.EconomyRoles[tag] {
			add(id)
		}
	}

	r := s.Rand("npc_roles")
	extra := g.tables.ExtraCount[s.Size.String()].Roll(r)
	if len(g.tables.ExtraRoles) > 0 {
		for i := 0; i < extra; i++ {
			roles = append(roles, rng.Pick(r, g.tables.ExtraRoles))
		}
	}
	return roles
}

func (g *Generator) generateNPC(s *settlement.Settlement, i int, roleID string) *NPC {
	r := s.Rand(fmt.Sprintf("npc_%d", i))
	role, _ := g.tables.Role(roleID)
	culture, _ := g.cultures.Culture(s.Culture)

	n := &NPC{
		ID:           ID(s.ID, i),
		SettlementID: s.ID,
		Role:         roleID,
		Title:        role.Title,
		Topics:       append([]string(nil), role.Topics...),
	}

	firstNames := culture.FemaleNames
	n.Gender = Female
	if r.Chance(0.5) {
		n.Gender = Male
		firstNames = culture.MaleNames
	}
	if len(firstNames) > 0 {
		n.FirstName = rng.Pick(r, firstNames)
	}
	if pools := g.tables.Surnames.Pools(); len(pools) > 0 {
		n.Surname = rng.Pick(r, rng.Pick(r, pools))
	}
	n.Name = strings.TrimSpace(n.FirstName + " " + n.Surname)

	if len(role.Traits) > 0 {
		traits := rng.Shuffle(r, role.Traits)
		n.Traits = traits[:r.Range(1, min(3, len(traits)))]
	}
	n.Age = r.Range(18, 70)
	n.Wealth = clamp(role.Wealth+(s.Wealth-5)/2+r.Range(-1, 1), 1, 10)

	ctx := s.Context()
	ctx["npc"] = n.Context()
	n.Greeting = g.greeting(role, n, r, ctx, s.Seed(fmt.Sprintf("npc_%d_greeting", i)))

	chance := secretChance
	if role.Secretive {
		chance = secretiveSecretChance
	}
	if len(g.tables.Secrets) > 0 && r.Chance(chance) {
		count := 1
		if !r.Chance(singleSecretChance) {
			count = 2
		}
		defs := rng.Shuffle(r, g.tables.Secrets)
		for j, def := range defs[:min(count, len(defs))] {
			n.Secrets = append(n.Secrets, Secret{
				Type: def.Type,
				Text: g.engine.Render(def.Text, ctx, s.Seed(fmt.Sprintf("npc_%d_secret_%d", i, j))),
			})
		}
	}

	return n
}

// greeting prefers a template keyed to one of the NPC's traits, then any
// of the role's templates, then the shared fallback.
func (g *Generator) greeting(role gamedata.RoleDefinition, n *NPC, r *rng.Rand, ctx narrative.Context, seed uint32) string {
	var matched []gamedata.Greeting
	for _, gr := range role.Greetings {
		if gr.Trait != "" && n.HasTrait(gr.Trait) {
			matched = append(matched, gr)
		}
	}
	if len(matched) == 0 {
		matched = role.Greetings
	}
	if len(matched) == 0 {
		return g.engine.RenderNamed("npc_fallback_greeting", ctx, seed)
	}
	return g.engine.Render(rng.Pick(r, matched).Text, ctx, seed)
}

func (g *Generator) relate(s *settlement.Settlement, npcs []*NPC) {
	for i, n := range npcs {
		others := make([]*NPC, 0, len(npcs)-1)
		for _, other := range npcs {
			if other.ID != n.ID {
				others = append(others, other)
			}
		}
		if len(others) == 0 {
			continue
		}

		r := s.Rand(fmt.Sprintf("npc_rel_%d", i))
		role, _ := g.tables.Role(n.Role)
		limit := role.MaxRelationships
		if limit <= 0 {
			limit = defaultMaxRelationships
		}
		count := r.Range(1, min(limit, len(others)))

		types := []string{RelationFriend, RelationBusiness, RelationRival}
		if r.Chance(familyChance) {
			types = append(types, RelationFamily)
		}

		ctx := s.Context()
		ctx["npc"] = n.Context()
		for _, target := range rng.Shuffle(r, others)[:count] {
			relType := rng.Pick(r, types)
			ctx["target"] = target.Context()

			var desc string
			if templates := g.tables.Relationships[relType]; len(templates) > 0 {
				desc = g.engine.Render(rng.Pick(r, templates), ctx,
					s.Seed(fmt.Sprintf("npc_rel_%d_%s", i, target.ID)))
			}
			n.Relationships = append(n.Relationships, Relationship{
				TargetNPCID: target.ID,
				Type:        relType,
				Description: desc,
			})
		}
	}
}

// Find returns the NPC with the given id, or nil.
func Find(npcs []*NPC, id string) *NPC {
	for _, n := range npcs {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// FindByRole returns the first NPC with the given role, or nil.
func FindByRole(npcs []*NPC, role string) *NPC {
	for _, n := range npcs {
		if n.Role == role {
			return n
		}
	}
	return nil
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
