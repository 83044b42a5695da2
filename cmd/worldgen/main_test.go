package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// run executes the CLI with config files that do not exist, so every
// setting is a default.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "worldgen.yaml"),
		"--logging", filepath.Join(dir, "logging.yaml"),
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRoomCommand(t *testing.T) {
	out, err := run(t, "room", "1", "0", "0", "--adjacent", "--format", "json")
	if err != nil {
		t.Fatalf("room: %v", err)
	}

	var got struct {
		Room struct {
			ID    string `json:"id"`
			Kind  string `json:"kind"`
			Exits []struct {
				Direction string `json:"direction"`
			} `json:"exits"`
		} `json:"room"`
		Adjacent []struct {
			BiomeID string `json:"biomeId"`
		} `json:"adjacent"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Room.ID != "proc_1_0_0" || got.Room.Kind != "wilderness" || len(got.Room.Exits) != 4 {
		t.Errorf("unexpected room %+v", got.Room)
	}
	if len(got.Adjacent) != 4 {
		t.Fatalf("expected 4 adjacent rooms, got %d", len(got.Adjacent))
	}
	for _, a := range got.Adjacent {
		if a.BiomeID == "" {
			t.Error("adjacent rooms should be generated with --adjacent")
		}
	}
}

func TestRoomCommandByID(t *testing.T) {
	out, err := run(t, "room", "proc_0_0_-1")
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	var got map[string]map[string]any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got["room"]["kind"] != "dungeon" {
		t.Errorf("kind = %v", got["room"]["kind"])
	}
}

func TestStaticRoomsFromConfig(t *testing.T) {
	dir := t.TempDir()
	roomsFile := filepath.Join(dir, "rooms.yaml")
	configFile := filepath.Join(dir, "worldgen.yaml")
	if err := os.WriteFile(roomsFile, []byte("rooms:\n  - id: shrine\n    name: Wayside Shrine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configFile, []byte("static_rooms: "+roomsFile+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configFile, "--logging", filepath.Join(dir, "logging.yaml"), "room", "shrine"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("room shrine: %v", err)
	}
	if !strings.Contains(out.String(), "Wayside Shrine") {
		t.Errorf("output = %s", out.String())
	}
}

func TestSettlementCommand(t *testing.T) {
	out, err := run(t, "settlement", "0", "63", "--format", "json")
	if err != nil {
		t.Fatalf("settlement: %v", err)
	}
	var got struct {
		Settlement struct {
			Size string `json:"size"`
		} `json:"settlement"`
		NPCs []json.RawMessage `json:"npcs"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Settlement.Size != "city" || len(got.NPCs) == 0 {
		t.Errorf("unexpected settlement: size %q with %d NPCs", got.Settlement.Size, len(got.NPCs))
	}

	if _, err := run(t, "settlement", "1", "1"); err == nil {
		t.Error("expected an error where there is no settlement")
	}
}

func TestFloorCommand(t *testing.T) {
	out, err := run(t, "floor", "0")
	if err != nil {
		t.Fatalf("floor: %v", err)
	}
	if !strings.HasPrefix(out, "Depth 0:") {
		t.Errorf("unexpected map header: %q", strings.SplitN(out, "\n", 2)[0])
	}

	if _, err := run(t, "floor", "2"); err == nil {
		t.Error("expected an error above the surface")
	}
}

func TestRegionCommand(t *testing.T) {
	out, err := run(t, "region", "0", "21", "0", "--format", "json")
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	var got regionOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Kind.String() != "settlement" || got.Size != "town" {
		t.Errorf("unexpected region %+v", got)
	}

	out, err = run(t, "region", "--format", "json", "--", "3", "4", "-2")
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	got = regionOutput{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.FloorDepth == nil || *got.FloorDepth != -1 || got.Distance != 5 || got.Biome == "" {
		t.Errorf("unexpected region %+v", got)
	}
}

func TestBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"region", "0", "0", "0", "--format", "xml"}},
		{"non-numeric coordinate", []string{"room", "1", "north", "0"}},
		{"two coordinates", []string{"room", "1", "2"}},
		{"nothing above", []string{"room", "0", "0", "1"}},
		{"unknown static room", []string{"room", "nowhere"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(t, tc.args...); err == nil {
				t.Errorf("expected an error for %v", tc.args)
			}
		})
	}
}
