package gamedata

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/procworld/internal/catalog"
	"github.com/lawnchairsociety/procworld/internal/region"
)

// Role, building and room type ids the generators rely on by name.
const (
	RoleMayor         = "mayor"
	RoleGuard         = "guard"
	BuildingResidence = "residence"
	RoomEntrance      = "entrance"
	RoomStairsDown    = "stairs_down"
)

// RequiredTemplates are named templates the generators render directly.
var RequiredTemplates = []string{
	"settlement_description",
	"settlement_room_name",
	"exit_known",
	"exit_unknown",
	"npc_fallback_greeting",
}

// Difficulties are the quest difficulty levels with reward rows.
var Difficulties = []string{"easy", "medium", "hard"}

// Validate checks that the tables are complete and reference each other
// consistently. Every problem found is reported.
func (d *Data) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	s := d.settlements
	if len(s.Cultures) == 0 {
		add("settlements: no cultures")
	}
	for _, c := range s.Cultures {
		if len(c.Prefixes) == 0 || len(c.Suffixes) == 0 || len(c.MaleNames) == 0 || len(c.FemaleNames) == 0 {
			add("settlements: culture %q is missing naming material", c.ID)
		}
	}
	if len(s.Economies) == 0 {
		add("settlements: no economies")
	}
	if len(s.Problems) == 0 {
		add("settlements: no problems")
	}
	for _, size := range region.AllSizes() {
		name := size.String()
		if _, ok := s.EconomyCount[name]; !ok {
			add("settlements: economy_count missing %s", name)
		}
		if _, ok := s.Population[name]; !ok {
			add("settlements: population missing %s", name)
		}
		if _, ok := s.FoundingAge[name]; !ok {
			add("settlements: founding_age missing %s", name)
		}
		if _, ok := s.WealthBase[name]; !ok {
			add("settlements: wealth_base missing %s", name)
		}
		if _, ok := s.DefenseBase[name]; !ok {
			add("settlements: defense_base missing %s", name)
		}
		if len(s.Severity[name]) == 0 {
			add("settlements: severity missing %s", name)
		}
		if _, ok := d.npcs.ExtraCount[name]; !ok {
			add("npcs: extra_count missing %s", name)
		}
		if _, ok := d.buildings.ExtraResidences[name]; !ok {
			add("buildings: extra_residences missing %s", name)
		}
		if len(d.buildings.SizeWeights[name]) == 0 {
			add("buildings: size_weights missing %s", name)
		}
		if _, ok := d.quests.SideCount[name]; !ok {
			add("quests: side_count missing %s", name)
		}
	}
	if len(s.History["founding"]) == 0 {
		add("settlements: no founding history templates")
	}

	economies := make(map[string]bool, len(s.Economies))
	for _, e := range s.Economies {
		economies[e] = true
	}

	n := d.npcs
	roleExists := func(id, where string) {
		if _, ok := n.Role(id); !ok {
			add("npcs: unknown role %q in %s", id, where)
		}
	}
	roleExists(RoleMayor, "required roles")
	for size, roles := range n.SizeRoles {
		for _, r := range roles {
			roleExists(r, "size_roles."+size)
		}
	}
	for econ, roles := range n.EconomyRoles {
		if !economies[econ] {
			add("npcs: economy_roles references unknown economy %q", econ)
		}
		for _, r := range roles {
			roleExists(r, "economy_roles."+econ)
		}
	}
	for _, r := range n.ExtraRoles {
		roleExists(r, "extra_roles")
	}
	for _, r := range n.Roles {
		if len(r.Traits) == 0 {
			add("npcs: role %q has no traits", r.ID)
		}
	}
	if len(n.Surnames.Pools()) == 0 {
		add("npcs: no surnames")
	}
	if len(n.Secrets) == 0 {
		add("npcs: no secrets")
	}

	b := d.buildings
	typeExists := func(id, where string) {
		if _, ok := b.Type(id); !ok {
			add("buildings: unknown type %q in %s", id, where)
		}
	}
	typeExists(BuildingResidence, "required types")
	for size, types := range b.SizeBuildings {
		for _, t := range types {
			typeExists(t, "size_buildings."+size)
		}
	}
	for econ, types := range b.EconomyBuildings {
		if !economies[econ] {
			add("buildings: economy_buildings references unknown economy %q", econ)
		}
		for _, t := range types {
			typeExists(t, "economy_buildings."+econ)
		}
	}
	for role, t := range b.RoleBuildings {
		roleExists(role, "role_buildings")
		typeExists(t, "role_buildings."+role)
	}
	for _, t := range b.Types {
		if len(t.Names) == 0 {
			add("buildings: type %q has no names", t.ID)
		}
	}

	q := d.quests
	for _, p := range s.Problems {
		if _, ok := q.Problem[p.Type]; !ok {
			add("quests: no problem quest for %q", p.Type)
		}
	}
	for _, diff := range Difficulties {
		if _, ok := q.Rewards[diff]; !ok {
			add("quests: rewards missing %s", diff)
		}
	}
	if len(q.WealthMultiplier) != 10 {
		add("quests: wealth_multiplier needs 10 entries, has %d", len(q.WealthMultiplier))
	}
	if len(q.Side) == 0 {
		add("quests: no side quests")
	}

	biomeIDs := make(map[string]bool, len(d.biomes.Biomes))
	for _, bio := range d.biomes.Biomes {
		biomeIDs[bio.ID] = true
	}
	for _, bio := range d.biomes.Biomes {
		for _, c := range bio.Compatible {
			if !biomeIDs[c] {
				add("biomes: %q lists unknown compatible biome %q", bio.ID, c)
			}
		}
		if len(bio.Names) == 0 {
			add("biomes: %q has no names", bio.ID)
		}
	}

	dg := d.dungeons
	if len(dg.Biomes) == 0 {
		add("dungeons: no biomes")
	}
	if dg.RoomCount.Min < 2 || dg.RoomCount.Max < dg.RoomCount.Min {
		add("dungeons: invalid room_count %d-%d", dg.RoomCount.Min, dg.RoomCount.Max)
	}
	for _, id := range dg.Biomes {
		if !biomeIDs[id] {
			add("dungeons: unknown biome %q", id)
		}
		if len(dg.RoomTypes[id]) == 0 {
			add("dungeons: no room types for biome %q", id)
		}
		for _, rt := range dg.RoomTypes[id] {
			if _, ok := dg.Rooms[rt.ID]; !ok {
				add("dungeons: room type %q has no definition", rt.ID)
			}
		}
	}
	for _, id := range []string{RoomEntrance, RoomStairsDown} {
		if _, ok := dg.Rooms[id]; !ok {
			add("dungeons: missing %s room definition", id)
		}
	}

	for _, name := range RequiredTemplates {
		if _, ok := d.templates[name]; !ok {
			add("templates: missing %q", name)
		}
	}

	if err := d.catalog.Validate(d.catalogRefs()); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// catalogRefs collects every catalog id the other tables mention.
func (d *Data) catalogRefs() *catalog.Refs {
	refs := catalog.NewRefs()
	for _, t := range d.buildings.Types {
		for _, inv := range t.Inventory {
			refs.Item(inv.ItemID, "building "+t.ID)
		}
	}
	for _, bio := range d.biomes.Biomes {
		for _, w := range bio.Items {
			refs.Item(w.ID, "biome "+bio.ID)
		}
		for _, w := range bio.Enemies {
			refs.Enemy(w.ID, "biome "+bio.ID)
		}
		for _, w := range bio.Resources {
			refs.Resource(w.ID, "biome "+bio.ID)
		}
	}
	for diff, r := range d.quests.Rewards {
		for _, item := range r.Items {
			refs.Item(item, "quest reward "+diff)
		}
	}
	return refs
}
