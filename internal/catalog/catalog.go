// Package catalog holds the static item, enemy and resource-node tables.
// Generators only ever reference these by id.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ItemDefinition describes an item that can appear in shops, loot or rewards.
type ItemDefinition struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Type        string  `yaml:"type" json:"type"`
	Value       int     `yaml:"value" json:"value"`
	Weight      float64 `yaml:"weight" json:"weight"`
	Tier        int     `yaml:"tier,omitempty" json:"tier,omitempty"` // 1=common .. 5=legendary
}

// EnemyDefinition describes an enemy that can be placed in a room.
type EnemyDefinition struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Level       int      `yaml:"level" json:"level"`
	Loot        []string `yaml:"loot,omitempty" json:"loot,omitempty"`
}

// ResourceDefinition describes a harvestable resource node.
type ResourceDefinition struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Yields      string `yaml:"yields" json:"yields"` // item id
	Skill       string `yaml:"skill,omitempty" json:"skill,omitempty"`
}

// Catalog is the full set of definition tables, keyed by id.
type Catalog struct {
	Items     map[string]ItemDefinition     `yaml:"items"`
	Enemies   map[string]EnemyDefinition    `yaml:"enemies"`
	Resources map[string]ResourceDefinition `yaml:"resources"`
}

// Parse decodes a catalog from YAML and checks its internal references.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, errors.New("catalog has no items")
	}
	if err := c.validateInternal(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFromYAML loads a catalog from a YAML file.
func LoadFromYAML(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// HasItem reports whether an item id exists.
func (c *Catalog) HasItem(id string) bool {
	_, ok := c.Items[id]
	return ok
}

// HasEnemy reports whether an enemy id exists.
func (c *Catalog) HasEnemy(id string) bool {
	_, ok := c.Enemies[id]
	return ok
}

// HasResource reports whether a resource id exists.
func (c *Catalog) HasResource(id string) bool {
	_, ok := c.Resources[id]
	return ok
}

// Item returns an item definition by id.
func (c *Catalog) Item(id string) (ItemDefinition, bool) {
	def, ok := c.Items[id]
	return def, ok
}

// ItemIDsByTier returns the sorted ids of all items of a tier.
func (c *Catalog) ItemIDsByTier(tier int) []string {
	var ids []string
	for id, def := range c.Items {
		if def.Tier == tier {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Refs lists ids that other tables reference.
type Refs struct {
	Items     map[string]string // id -> where it was referenced
	Enemies   map[string]string
	Resources map[string]string
}

// NewRefs creates an empty reference set.
func NewRefs() *Refs {
	return &Refs{
		Items:     make(map[string]string),
		Enemies:   make(map[string]string),
		Resources: make(map[string]string),
	}
}

// Item records a reference to an item id.
func (r *Refs) Item(id, source string) {
	if _, seen := r.Items[id]; !seen {
		r.Items[id] = source
	}
}

// Enemy records a reference to an enemy id.
func (r *Refs) Enemy(id, source string) {
	if _, seen := r.Enemies[id]; !seen {
		r.Enemies[id] = source
	}
}

// Resource records a reference to a resource id.
func (r *Refs) Resource(id, source string) {
	if _, seen := r.Resources[id]; !seen {
		r.Resources[id] = source
	}
}

// Validate returns an error naming every referenced id the catalog lacks.
func (c *Catalog) Validate(refs *Refs) error {
	var errs []error
	for _, id := range sortedKeys(refs.Items) {
		if !c.HasItem(id) {
			errs = append(errs, fmt.Errorf("unknown item %q referenced by %s", id, refs.Items[id]))
		}
	}
	for _, id := range sortedKeys(refs.Enemies) {
		if !c.HasEnemy(id) {
			errs = append(errs, fmt.Errorf("unknown enemy %q referenced by %s", id, refs.Enemies[id]))
		}
	}
	for _, id := range sortedKeys(refs.Resources) {
		if !c.HasResource(id) {
			errs = append(errs, fmt.Errorf("unknown resource %q referenced by %s", id, refs.Resources[id]))
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) validateInternal() error {
	refs := NewRefs()
	for id, enemy := range c.Enemies {
		for _, item := range enemy.Loot {
			refs.Item(item, "enemy "+id)
		}
	}
	for id, res := range c.Resources {
		refs.Item(res.Yields, "resource "+id)
	}
	return c.Validate(refs)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
