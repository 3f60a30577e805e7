package dungeon

import (
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := Config{RoomCount: 12, MapWidth: 5, MapHeight: 5, Seed: 42}
	rooms := NewGenerator(cfg).Generate()

	data := Snapshot("Cellar of the Drowned Rat", cfg.Seed, cfg.MapWidth, cfg.MapHeight, rooms)

	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	if err := SaveSnapshot(data, path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Name != data.Name {
		t.Errorf("Name = %q, want %q", loaded.Name, data.Name)
	}
	if loaded.Seed != cfg.Seed {
		t.Errorf("Seed = %d, want %d", loaded.Seed, cfg.Seed)
	}
	if loaded.Width != cfg.MapWidth || loaded.Height != cfg.MapHeight {
		t.Errorf("dimensions = %dx%d, want %dx%d", loaded.Width, loaded.Height, cfg.MapWidth, cfg.MapHeight)
	}

	restored, err := loaded.ToRooms()
	if err != nil {
		t.Fatalf("ToRooms failed: %v", err)
	}

	if len(restored) != len(rooms) {
		t.Fatalf("restored %d rooms, want %d", len(restored), len(rooms))
	}

	for i := range rooms {
		want, got := rooms[i], restored[i]
		if got.ID != want.ID || got.Name != want.Name || got.Description != want.Description {
			t.Errorf("room %d text fields differ after round trip", i)
		}
		if got.X != want.X || got.Y != want.Y || got.Type != want.Type {
			t.Errorf("room %d position/type differ after round trip", i)
		}
		if got.HasEnemies != want.HasEnemies || got.HasTreasure != want.HasTreasure {
			t.Errorf("room %d flags differ after round trip", i)
		}
		if len(got.Connections) != len(want.Connections) {
			t.Errorf("room %d has %d connections, want %d", i, len(got.Connections), len(want.Connections))
			continue
		}
		for j := range want.Connections {
			if got.Connections[j] != want.Connections[j] {
				t.Errorf("room %d connection %d = %q, want %q", i, j, got.Connections[j], want.Connections[j])
			}
		}
	}
}

func TestToRoomsRejectsUnknownType(t *testing.T) {
	data := &DungeonData{
		Rooms: []RoomData{
			{ID: "entrance", Type: "entrance"},
			{ID: "room-1", Type: "ballroom"},
		},
	}

	if _, err := data.ToRooms(); err == nil {
		t.Error("expected error for unknown room type")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
