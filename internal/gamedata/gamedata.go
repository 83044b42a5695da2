// Package gamedata loads the static tables the generators draw from.
// The tables ship embedded in the binary; a directory with the same file
// names can replace them.
package gamedata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/procworld/internal/catalog"
	"github.com/lawnchairsociety/procworld/internal/logger"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrMissingTable is returned when a required table file is absent.
var ErrMissingTable = errors.New("missing data table")

// Table file names.
const (
	SettlementsFile = "settlements.yaml"
	NPCsFile        = "npcs.yaml"
	BuildingsFile   = "buildings.yaml"
	QuestsFile      = "quests.yaml"
	DungeonsFile    = "dungeons.yaml"
	BiomesFile      = "biomes.yaml"
	TemplatesFile   = "templates.yaml"
	CatalogFile     = "catalog.yaml"
)

// Provider is the read-only view of the static tables.
type Provider interface {
	Settlements() *SettlementTables
	NPCs() *NPCTables
	Buildings() *BuildingTables
	Quests() *QuestTables
	Dungeons() *DungeonTables
	Biomes() *BiomeTables
	Templates() map[string]string
	Catalog() *catalog.Catalog
}

// Data is a loaded, validated set of tables.
type Data struct {
	settlements *SettlementTables
	npcs        *NPCTables
	buildings   *BuildingTables
	quests      *QuestTables
	dungeons    *DungeonTables
	biomes      *BiomeTables
	templates   map[string]string
	catalog     *catalog.Catalog
}

var _ Provider = (*Data)(nil)

func (d *Data) Settlements() *SettlementTables { return d.settlements }
func (d *Data) NPCs() *NPCTables               { return d.npcs }
func (d *Data) Buildings() *BuildingTables     { return d.buildings }
func (d *Data) Quests() *QuestTables           { return d.quests }
func (d *Data) Dungeons() *DungeonTables       { return d.dungeons }
func (d *Data) Biomes() *BiomeTables           { return d.biomes }
func (d *Data) Templates() map[string]string   { return d.templates }
func (d *Data) Catalog() *catalog.Catalog      { return d.catalog }

// LoadDefault loads the embedded tables.
func LoadDefault() (*Data, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded data: %w", err)
	}
	return Load(sub)
}

// LoadDir loads tables from a directory on disk.
func LoadDir(dir string) (*Data, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads every table from fsys and validates cross references.
// Any missing or malformed table is an error.
func Load(fsys fs.FS) (*Data, error) {
	d := &Data{
		settlements: &SettlementTables{},
		npcs:        &NPCTables{},
		buildings:   &BuildingTables{},
		quests:      &QuestTables{},
		dungeons:    &DungeonTables{},
		biomes:      &BiomeTables{},
	}

	tables := []struct {
		file   string
		target any
	}{
		{SettlementsFile, d.settlements},
		{NPCsFile, d.npcs},
		{BuildingsFile, d.buildings},
		{QuestsFile, d.quests},
		{DungeonsFile, d.dungeons},
		{BiomesFile, d.biomes},
	}
	for _, tbl := range tables {
		if err := decodeFile(fsys, tbl.file, tbl.target); err != nil {
			return nil, err
		}
	}

	var templates struct {
		Templates map[string]string `yaml:"templates"`
	}
	if err := decodeFile(fsys, TemplatesFile, &templates); err != nil {
		return nil, err
	}
	d.templates = templates.Templates

	raw, err := readFile(fsys, CatalogFile)
	if err != nil {
		return nil, err
	}
	d.catalog, err = catalog.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", CatalogFile, err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game data: %w", err)
	}

	logger.Info("Game data loaded",
		"cultures", len(d.settlements.Cultures),
		"roles", len(d.npcs.Roles),
		"building_types", len(d.buildings.Types),
		"biomes", len(d.biomes.Biomes),
		"templates", len(d.templates),
		"items", len(d.catalog.Items))
	return d, nil
}

func readFile(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	data, err := readFile(fsys, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
