package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/emberforge/taverntale/server/internal/dungeon"
)

func main() {
	roomCount := flag.Int("rooms", 10, "Number of rooms to generate")
	width := flag.Int("width", 5, "Map grid width")
	height := flag.Int("height", 5, "Map grid height")
	seed := flag.Int64("seed", 0, "Generation seed (0 for random)")
	name := flag.String("name", "Unnamed Dungeon", "Dungeon name")
	inputFile := flag.String("input", "", "Render an existing dungeon YAML instead of generating")
	saveFile := flag.String("save", "", "Save the generated dungeon as YAML")
	outputFile := flag.String("output", "", "Output file for the map (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	var data *dungeon.DungeonData

	if *inputFile != "" {
		loaded, err := dungeon.LoadSnapshot(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading dungeon file: %v\n", err)
			os.Exit(1)
		}
		data = loaded
	} else {
		gen := dungeon.NewGenerator(dungeon.Config{
			RoomCount: *roomCount,
			MapWidth:  *width,
			MapHeight: *height,
			Seed:      *seed,
		})
		rooms := gen.Generate()
		data = dungeon.Snapshot(*name, gen.Seed(), *width, *height, rooms)
	}

	if *saveFile != "" {
		if err := dungeon.SaveSnapshot(data, *saveFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving dungeon: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dungeon saved to %s\n", *saveFile)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s (Seed: %d, Rooms: %d, Grid: %dx%d)\n",
		data.Name, data.Seed, len(data.Rooms), data.Width, data.Height))
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	renderDungeon(&output, data)

	if *showLegend {
		output.WriteString(getLegend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

type gridPos struct {
	X, Y int
}

func renderDungeon(output *strings.Builder, data *dungeon.DungeonData) {
	if len(data.Rooms) == 0 {
		output.WriteString("  (No rooms to display)\n")
		return
	}

	roomMap := make(map[string]*dungeon.RoomData)
	posToRoom := make(map[gridPos]string)
	for i := range data.Rooms {
		room := &data.Rooms[i]
		roomMap[room.ID] = room
		posToRoom[gridPos{X: room.X, Y: room.Y}] = room.ID
	}

	// Render the grid. Each cell is 5 chars wide, 3 rows tall:
	//   |     (north connection)
	// -[R]-   (west-room-east)
	//   |     (south connection)
	for y := 0; y < data.Height; y++ {
		// Top row (north connections)
		for x := 0; x < data.Width; x++ {
			room := roomAt(roomMap, posToRoom, x, y)
			if room != nil && connectsTo(room, roomMap, x, y-1) {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")

		// Middle row (west-room-east)
		for x := 0; x < data.Width; x++ {
			room := roomAt(roomMap, posToRoom, x, y)
			if room == nil {
				output.WriteString("     ")
				continue
			}
			if connectsTo(room, roomMap, x-1, y) {
				output.WriteString("-")
			} else {
				output.WriteString(" ")
			}
			output.WriteString("[")
			output.WriteString(roomSymbol(room))
			output.WriteString("]")
			if connectsTo(room, roomMap, x+1, y) {
				output.WriteString("-")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Bottom row (south connections)
		for x := 0; x < data.Width; x++ {
			room := roomAt(roomMap, posToRoom, x, y)
			if room != nil && connectsTo(room, roomMap, x, y+1) {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")
	}

	// Print room list in placement order
	output.WriteString("\nRoom Details:\n")
	for i := range data.Rooms {
		room := &data.Rooms[i]

		details := fmt.Sprintf("  [%s] %-30s (%d,%d) %s",
			roomSymbol(room), truncate(room.Name, 30), room.X, room.Y, room.Type)

		var markers []string
		if room.HasEnemies {
			markers = append(markers, "enemies")
		}
		if room.HasTreasure {
			markers = append(markers, "treasure")
		}
		if len(markers) > 0 {
			details += " [" + strings.Join(markers, ", ") + "]"
		}

		output.WriteString(details + "\n")
	}
}

func roomAt(roomMap map[string]*dungeon.RoomData, posToRoom map[gridPos]string, x, y int) *dungeon.RoomData {
	id, ok := posToRoom[gridPos{X: x, Y: y}]
	if !ok {
		return nil
	}
	return roomMap[id]
}

// connectsTo reports whether room has a connection to the room at (x, y).
func connectsTo(room *dungeon.RoomData, roomMap map[string]*dungeon.RoomData, x, y int) bool {
	for _, id := range room.Connections {
		other, ok := roomMap[id]
		if ok && other.X == x && other.Y == y {
			return true
		}
	}
	return false
}

func roomSymbol(room *dungeon.RoomData) string {
	switch room.Type {
	case "entrance":
		return "E"
	case "chamber":
		return "#"
	case "corridor":
		return "."
	case "treasure":
		return "$"
	case "boss":
		return "B"
	case "exit":
		return "X"
	case "secret":
		return "?"
	default:
		return " "
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func getLegend() string {
	return `
Legend:
  [E] Entrance
  [#] Chamber
  [.] Corridor
  [$] Treasure room
  [B] Boss room
  [X] Exit
  [?] Secret room

  Connections:
  -   Horizontal passage (east-west)
  |   Vertical passage (north-south)
`
}
