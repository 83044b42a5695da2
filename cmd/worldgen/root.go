package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/procworld/internal/config"
	"github.com/lawnchairsociety/procworld/internal/database"
	"github.com/lawnchairsociety/procworld/internal/gamedata"
	"github.com/lawnchairsociety/procworld/internal/logger"
	"github.com/lawnchairsociety/procworld/internal/narrative"
	"github.com/lawnchairsociety/procworld/internal/rooms"
	"github.com/lawnchairsociety/procworld/internal/world"
)

// Output formats
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// options holds the persistent flags shared by every subcommand
type options struct {
	configPath  string
	loggingPath string
	format      string
}

// app is everything a subcommand needs, built once per invocation
type app struct {
	cfg          *config.WorldConfig
	orchestrator *rooms.Orchestrator
	world        *world.World
	store        database.Store
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "worldgen",
		Short: "Deterministic procedural world generator",
		Long: `worldgen prints the rooms, settlements and dungeon floors generated for
world coordinates. The same coordinate always produces the same output.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format != formatYAML && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q (want yaml or json)", opts.format)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "worldgen.yaml", "Path to generator config YAML file")
	rootCmd.PersistentFlags().StringVar(&opts.loggingPath, "logging", "logging.yaml", "Path to logging config YAML file")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", formatYAML, "Output format: yaml or json")

	rootCmd.AddCommand(newRoomCmd(opts))
	rootCmd.AddCommand(newSettlementCmd(opts))
	rootCmd.AddCommand(newFloorCmd(opts))
	rootCmd.AddCommand(newRegionCmd(opts))

	return rootCmd
}

// setup loads configuration and data and wires the generator. The returned
// cleanup closes the room store.
func setup(ctx context.Context, opts *options) (*app, func(), error) {
	logConfig, _ := logger.LoadConfig(opts.loggingPath)
	if err := logger.Initialize(logConfig); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	data, err := loadData(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load data tables: %w", err)
	}

	engine := narrative.NewEngine(data.Templates())
	engine.SetMaxDepth(cfg.Generation.MaxTemplateDepth)

	store, err := database.OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open room store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warning("Failed to close room store", "error", err)
		}
	}

	orchestrator := rooms.New(data, engine, store)
	w := world.NewWorld(orchestrator)
	w.SetPregenerateAdjacent(cfg.Generation.PregenerateAdjacent)
	if cfg.StaticRooms != "" {
		if err := w.LoadStaticRooms(cfg.StaticRooms); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	return &app{cfg: cfg, orchestrator: orchestrator, world: w, store: store}, cleanup, nil
}

func loadData(dir string) (*gamedata.Data, error) {
	if dir == "" {
		return gamedata.LoadDefault()
	}
	return gamedata.LoadDir(dir)
}

// write encodes v in the selected format
func write(w io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// parseInts converts positional coordinate arguments
func parseInts(args []string, names ...string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", names[i], arg)
		}
		values[i] = v
	}
	return values, nil
}
