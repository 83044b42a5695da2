package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/procworld/internal/biome"
	"github.com/lawnchairsociety/procworld/internal/dungeon"
	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/rooms"
	"github.com/lawnchairsociety/procworld/internal/world"
)

// roomOutput is a room plus, on request, the coordinates around it
type roomOutput struct {
	Room     *world.RoomDefinition `yaml:"room" json:"room"`
	Adjacent []rooms.AdjacentRoom  `yaml:"adjacent,omitempty" json:"adjacent,omitempty"`
}

func newRoomCmd(opts *options) *cobra.Command {
	var adjacent bool

	cmd := &cobra.Command{
		Use:   "room (ID | X Y Z)",
		Short: "Print the room at a coordinate or with an id",
		Long: `Print a room. With one argument it is looked up by id, so static rooms
resolve too. With three it is generated at the coordinate.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected a room id or X Y Z, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()

			var room *world.RoomDefinition
			if len(args) == 1 {
				room = a.world.GetRoom(cmd.Context(), args[0])
				if room == nil {
					return fmt.Errorf("no room with id %q", args[0])
				}
			} else {
				xyz, err := parseInts(args, "X", "Y", "Z")
				if err != nil {
					return err
				}
				if adjacent {
					room = a.orchestrator.GetOrGenerateRoomWithAdjacent(cmd.Context(), xyz[0], xyz[1], xyz[2])
				} else {
					room = a.orchestrator.GetOrGenerateRoom(cmd.Context(), xyz[0], xyz[1], xyz[2])
				}
				if room == nil {
					return fmt.Errorf("nothing exists at (%d, %d, %d)", xyz[0], xyz[1], xyz[2])
				}
			}

			out := roomOutput{Room: room}
			if adjacent && !room.Static {
				out.Adjacent = a.orchestrator.GetAdjacentRooms(room.X, room.Y, room.Z)
			}
			return write(cmd.OutOrStdout(), opts.format, out)
		},
	}

	cmd.Flags().BoolVar(&adjacent, "adjacent", false, "Generate the neighboring rooms first and list them")
	return cmd
}

func newSettlementCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "settlement X Y",
		Short: "Print the settlement at a surface coordinate",
		Long:  `Print a settlement with its NPCs, buildings and quests.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xy, err := parseInts(args, "X", "Y")
			if err != nil {
				return err
			}

			a, cleanup, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()

			summary := a.orchestrator.Settlement(xy[0], xy[1])
			if summary == nil {
				return fmt.Errorf("no settlement at (%d, %d)", xy[0], xy[1])
			}
			return write(cmd.OutOrStdout(), opts.format, summary)
		},
	}
}

func newFloorCmd(opts *options) *cobra.Command {
	var cells bool

	cmd := &cobra.Command{
		Use:   "floor DEPTH",
		Short: "Draw the dungeon floor at a depth",
		Long: `Draw a dungeon floor as an ASCII map. Depth 0 is the floor below the
surface and deeper floors are negative.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := parseInts(args, "DEPTH")
			if err != nil {
				return err
			}

			a, cleanup, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()

			f := a.orchestrator.Floors().GetFloor(depth[0])
			if f == nil {
				return fmt.Errorf("no floor at depth %d", depth[0])
			}
			if cells {
				return write(cmd.OutOrStdout(), opts.format, f)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), f.Render())
			return err
		},
	}

	cmd.Flags().BoolVar(&cells, "cells", false, "Print the floor's cells instead of the map")
	return cmd
}

// regionOutput explains how a coordinate is classified
type regionOutput struct {
	ID         string        `yaml:"id" json:"id"`
	Kind       region.Kind   `yaml:"kind" json:"kind"`
	Size       string        `yaml:"size,omitempty" json:"size,omitempty"`
	Distance   float64       `yaml:"distance" json:"distance"`
	FloorDepth *int          `yaml:"floor_depth,omitempty" json:"floorDepth,omitempty"`
	Terrain    *biome.Sample `yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Candidates []string      `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Biome      string        `yaml:"biome,omitempty" json:"biome,omitempty"`
}

func newRegionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "region X Y Z",
		Short: "Classify a coordinate without generating it",
		Long: `Classify a coordinate and show the biomes it could take with no
neighbors generated.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			xyz, err := parseInts(args, "X", "Y", "Z")
			if err != nil {
				return err
			}
			x, y, z := xyz[0], xyz[1], xyz[2]

			a, cleanup, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := regionOutput{
				ID:       region.RoomID(x, y, z),
				Kind:     region.Classify(x, y, z),
				Distance: region.Distance(x, y),
			}
			if size, ok := region.SettlementSize(x, y, z); ok {
				out.Size = size.String()
			}

			switch out.Kind {
			case region.Wilderness:
				terrain := a.orchestrator.Terrain().At(x, y)
				out.Terrain = &terrain
			case region.Dungeon:
				depth := dungeon.DepthOf(z)
				out.FloorDepth = &depth
			}
			if out.Kind == region.Wilderness || out.Kind == region.Dungeon {
				for _, b := range a.orchestrator.Selector().Candidates(z, nil) {
					out.Candidates = append(out.Candidates, b.ID)
				}
				out.Biome = a.orchestrator.Selector().Select(x, y, z, nil)
			}
			return write(cmd.OutOrStdout(), opts.format, out)
		},
	}
}
