package dungeon

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DungeonData represents a serialized dungeon for persistence
type DungeonData struct {
	Name    string     `yaml:"name"`
	Seed    int64      `yaml:"seed"`
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	SavedAt time.Time  `yaml:"saved_at"`
	Rooms   []RoomData `yaml:"rooms"`
}

// RoomData represents a serialized room
type RoomData struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Type        string   `yaml:"type"`
	Connections []string `yaml:"connections,omitempty"`
	HasEnemies  bool     `yaml:"has_enemies,omitempty"`
	HasTreasure bool     `yaml:"has_treasure,omitempty"`
}

// Snapshot converts a generated room list into its serializable form.
// Room order is preserved so the entrance stays first.
func Snapshot(name string, seed int64, width, height int, rooms []*Room) *DungeonData {
	data := &DungeonData{
		Name:    name,
		Seed:    seed,
		Width:   width,
		Height:  height,
		SavedAt: time.Now(),
		Rooms:   make([]RoomData, 0, len(rooms)),
	}

	for _, room := range rooms {
		connections := make([]string, len(room.Connections))
		copy(connections, room.Connections)

		data.Rooms = append(data.Rooms, RoomData{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			X:           room.X,
			Y:           room.Y,
			Type:        room.Type.String(),
			Connections: connections,
			HasEnemies:  room.HasEnemies,
			HasTreasure: room.HasTreasure,
		})
	}

	return data
}

// ToRooms rebuilds the room list from serialized form
func (d *DungeonData) ToRooms() ([]*Room, error) {
	rooms := make([]*Room, 0, len(d.Rooms))

	for _, rd := range d.Rooms {
		roomType, ok := ParseRoomType(rd.Type)
		if !ok {
			return nil, fmt.Errorf("room %q has unknown type %q", rd.ID, rd.Type)
		}

		connections := make([]string, len(rd.Connections))
		copy(connections, rd.Connections)

		rooms = append(rooms, &Room{
			ID:          rd.ID,
			Name:        rd.Name,
			Description: rd.Description,
			X:           rd.X,
			Y:           rd.Y,
			Type:        roomType,
			Connections: connections,
			HasEnemies:  rd.HasEnemies,
			HasTreasure: rd.HasTreasure,
		})
	}

	return rooms, nil
}

// SaveSnapshot writes a dungeon snapshot to a YAML file
func SaveSnapshot(data *DungeonData, filename string) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal dungeon data: %w", err)
	}

	if err := os.WriteFile(filename, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write dungeon file: %w", err)
	}

	return nil
}

// LoadSnapshot reads a dungeon snapshot from a YAML file
func LoadSnapshot(filename string) (*DungeonData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read dungeon file: %w", err)
	}

	var dungeonData DungeonData
	if err := yaml.Unmarshal(data, &dungeonData); err != nil {
		return nil, fmt.Errorf("failed to parse dungeon YAML: %w", err)
	}

	return &dungeonData, nil
}
