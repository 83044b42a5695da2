package quest

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lawnchairsociety/procworld/internal/building"
	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/npc"
	"github.com/lawnchairsociety/procworld/internal/rng"
	"github.com/lawnchairsociety/procworld/internal/settlement"
)

const secretQuestChance = 0.3

// Generator builds settlement quests.
type Generator struct {
	tables *gamedata.QuestTables
	engine *narrative.Engine
}

// NewGenerator creates a quest generator.
func NewGenerator(tables *gamedata.QuestTables, engine *narrative.Engine) *Generator {
	return &Generator{
		tables: tables,
		engine: engine,
	}
}

// Generate builds the quests s offers: one for its problem, some from
// NPC secrets, and a few side errands. npcs and buildings must already be
// generated and assigned.
func (g *Generator) Generate(s *settlement.Settlement, npcs []*npc.NPC, buildings []*building.Building) []*Quest {
	if len(npcs) == 0 {
		return nil
	}

	var quests []*Quest
	add := func(q *Quest) {
		if q != nil {
			q.ID = ID(s.ID, len(quests))
			quests = append(quests, q)
		}
	}

	add(g.problemQuest(s, npcs))
	for _, n := range npcs {
		for j, secret := range n.Secrets {
			add(g.secretQuest(s, n, j, secret))
		}
	}
	for _, q := range g.sideQuests(s, npcs, buildings) {
		add(q)
	}
	return quests
}

func (g *Generator) problemQuest(s *settlement.Settlement, npcs []*npc.NPC) *Quest {
	if s.Problem == nil {
		return nil
	}
	tpl, ok := g.tables.Problem[s.Problem.Type]
	if !ok {
		return nil
	}

	giver := npc.FindByRole(npcs, gamedata.RoleMayor)
	if giver == nil {
		giver = npc.FindByRole(npcs, gamedata.RoleGuard)
	}
	if giver == nil {
		giver = npcs[0]
	}

	difficulty := tpl.Difficulty
	switch s.Problem.Severity {
	case settlement.SeverityMinor:
		difficulty = DifficultyEasy
	case settlement.SeveritySevere:
		difficulty = DifficultyHard
	}

	ctx := g.context(s, giver)
	ctx["problem"] = map[string]any{
		"type":     s.Problem.Type,
		"severity": s.Problem.Severity,
		"duration": s.Problem.DurationDays,
	}
	q := g.build(s, tpl, ctx, ctx, "quest_problem", difficulty)
	q.Category = QuestCategoryProblem
	q.Source = "problem:" + s.Problem.Type
	q.GiverNPCID = giver.ID
	return q
}

func (g *Generator) secretQuest(s *settlement.Settlement, holder *npc.NPC, j int, secret npc.Secret) *Quest {
	salt := fmt.Sprintf("quest_secret_%s_%d", holder.ID, j)
	if !s.Rand(salt).Chance(secretQuestChance) {
		return nil
	}
	tpl, ok := g.tables.Secret[secret.Type]
	if !ok {
		return nil
	}

	ctx := g.context(s, holder)
	q := g.build(s, tpl, ctx, ctx, salt, tpl.Difficulty)
	q.Category = QuestCategorySecret
	q.Source = "secret:" + holder.ID
	q.GiverNPCID = holder.ID
	return q
}

func (g *Generator) sideQuests(s *settlement.Settlement, npcs []*npc.NPC, buildings []*building.Building) []*Quest {
	if len(g.tables.Side) == 0 {
		return nil
	}
	r := s.Rand("quest_side")
	count := g.tables.SideCount[s.Size.String()].Roll(r)
	title := cases.Title(language.English)

	quests := make([]*Quest, 0, count)
	for i := 0; i < count; i++ {
		tpl := rng.Pick(r, g.tables.Side)
		giver := rng.Pick(r, npcs)

		var item string
		if len(g.tables.Items) > 0 {
			item = rng.Pick(r, g.tables.Items)
		}
		destination := g.destination(r, giver, buildings)

		ctx := g.context(s, giver)
		ctx["item"] = item
		ctx["destination"] = destination
		nameCtx := g.context(s, giver)
		nameCtx["item"] = title.String(item)
		nameCtx["destination"] = destination

		q := g.build(s, tpl, nameCtx, ctx, fmt.Sprintf("quest_side_%d", i), tpl.Difficulty)
		q.Category = QuestCategorySide
		q.Source = "side:" + tpl.Type
		q.GiverNPCID = giver.ID
		quests = append(quests, q)
	}
	return quests
}

// destination picks from the fixed destinations and every building the
// giver does not live in.
func (g *Generator) destination(r *rng.Rand, giver *npc.NPC, buildings []*building.Building) string {
	candidates := append([]string(nil), g.tables.Destinations...)
	for _, b := range buildings {
		if b.ID != giver.BuildingID && b.Type != gamedata.BuildingResidence {
			candidates = append(candidates, b.Name)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return rng.Pick(r, candidates)
}

func (g *Generator) context(s *settlement.Settlement, giver *npc.NPC) narrative.Context {
	ctx := s.Context()
	ctx["giver"] = giver.Context()
	return ctx
}

func (g *Generator) build(s *settlement.Settlement, tpl gamedata.QuestTemplate, nameCtx, ctx narrative.Context, salt, difficulty string) *Quest {
	objectives := make([]QuestObjective, 0, len(tpl.Objectives))
	for _, o := range tpl.Objectives {
		objectives = append(objectives, QuestObjective{Description: o})
	}
	return &Quest{
		SettlementID: s.ID,
		Name:         g.engine.Render(tpl.Name, nameCtx, s.Seed(salt+"_name")),
		Description:  g.engine.Render(tpl.Description, ctx, s.Seed(salt+"_description")),
		Type:         QuestType(tpl.Type),
		Objectives:   objectives,
		Rewards:      g.rewards(difficulty, s.Wealth),
		Difficulty:   difficulty,
		Status:       StatusAvailable,
	}
}

// rewards scales the difficulty's base reward by settlement wealth.
func (g *Generator) rewards(difficulty string, wealth int) QuestReward {
	base := g.tables.Rewards[difficulty]
	multiplier := 1.0
	if n := len(g.tables.WealthMultiplier); n > 0 {
		multiplier = g.tables.WealthMultiplier[min(max(wealth, 1), n)-1]
	}
	return QuestReward{
		Gold:       int(math.Round(float64(base.Gold) * multiplier)),
		Experience: int(math.Round(float64(base.XP) * multiplier)),
		Items:      append([]string(nil), base.Items...),
	}
}
