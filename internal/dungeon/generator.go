// Package dungeon implements the procedural dungeon map generator.
//
// A dungeon is a set of typed, named rooms placed on a rectangular grid. The
// generator grows a spanning tree outward from a randomly placed entrance so
// every room is reachable, then adds a few extra loop connections for
// navigational variety. Generation is a single greedy forward pass: no
// backtracking, no retries. If the frontier of placeable cells runs dry
// before the requested room count is reached, the dungeon comes back shorter
// than requested rather than failing.
package dungeon

import (
	"fmt"
	"math/rand"
	"time"
)

// Config contains parameters for dungeon generation
type Config struct {
	RoomCount int   // Number of rooms to place (best effort, see frontier exhaustion)
	MapWidth  int   // Grid width in cells
	MapHeight int   // Grid height in cells
	Seed      int64 // Random seed (0 = use current time)
}

// DefaultConfig returns reasonable defaults for a short delve
func DefaultConfig() Config {
	return Config{
		RoomCount: 10,
		MapWidth:  5,
		MapHeight: 5,
	}
}

// Generator builds dungeons from a seeded random source. Each Generator owns
// its own rand.Rand, so concurrent generators never contend on shared state.
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a new dungeon generator
func NewGenerator(config Config) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	config.Seed = seed

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
// Useful for persisting alongside the generated dungeon.
func (g *Generator) Seed() int64 {
	return g.config.Seed
}

// frontierCell is an empty grid cell adjacent to an already-placed room,
// tagged with the index of that parent room.
type frontierCell struct {
	x, y   int
	parent int
}

// weighted general type pool: chamber and corridor are the common picks,
// entrance only ever applies to the first room and is re-mapped to chamber
// when rolled for any other slot.
var generalTypePool = []RoomType{
	RoomTypeEntrance,
	RoomTypeChamber, RoomTypeChamber, RoomTypeChamber,
	RoomTypeCorridor, RoomTypeCorridor,
	RoomTypeTreasure, RoomTypeTreasure,
	RoomTypeBoss,
	RoomTypeExit,
	RoomTypeSecret,
}

// Generate creates a dungeon and returns its rooms in placement order.
// The first room is always the entrance. Degenerate inputs (non-positive
// room count or dimensions) produce an empty result rather than an error.
func (g *Generator) Generate() []*Room {
	width := g.config.MapWidth
	height := g.config.MapHeight
	count := g.config.RoomCount

	if width < 1 || height < 1 || count < 1 {
		return []*Room{}
	}

	// Dense grid of room indices, -1 for empty cells
	grid := make([]int, width*height)
	for i := range grid {
		grid[i] = -1
	}

	rooms := make([]*Room, 0, count)

	// Place the entrance on a random cell of a random grid edge
	ex, ey := g.randomEdgeCell(width, height)
	entrance := g.newRoom("entrance", RoomTypeEntrance, ex, ey)
	entrance.HasEnemies = g.rng.Float64() < 0.2
	entrance.HasTreasure = g.rng.Float64() < 0.1
	grid[ey*width+ex] = 0
	rooms = append(rooms, entrance)

	// Frontier expansion: grow a spanning tree one room at a time
	frontier := g.emptyNeighbors(grid, width, height, ex, ey, 0)

	for len(rooms) < count && len(frontier) > 0 {
		idx := g.rng.Intn(len(frontier))
		cell := frontier[idx]

		// Drop every frontier entry at this position; a cell adjacent to
		// several placed rooms is listed once per parent.
		frontier = removePosition(frontier, cell.x, cell.y)

		roomNum := len(rooms)
		roomType := g.rollRoomType(roomNum, count, rooms)

		room := g.newRoom(fmt.Sprintf("room-%d", roomNum), roomType, cell.x, cell.y)
		room.HasEnemies = roomType == RoomTypeBoss || g.rng.Float64() < 0.4
		room.HasTreasure = roomType == RoomTypeTreasure || g.rng.Float64() < 0.3

		room.Connect(rooms[cell.parent])

		grid[cell.y*width+cell.x] = roomNum
		rooms = append(rooms, room)

		frontier = append(frontier, g.emptyNeighbors(grid, width, height, cell.x, cell.y, roomNum)...)
	}

	g.addLoopConnections(grid, width, height, rooms)

	return rooms
}

// randomEdgeCell picks a uniformly random cell along a uniformly random grid edge
func (g *Generator) randomEdgeCell(width, height int) (int, int) {
	switch g.rng.Intn(4) {
	case 0: // top
		return g.rng.Intn(width), 0
	case 1: // right
		return width - 1, g.rng.Intn(height)
	case 2: // bottom
		return g.rng.Intn(width), height - 1
	default: // left
		return 0, g.rng.Intn(height)
	}
}

// emptyNeighbors returns the empty 4-directional neighbors of (x, y),
// tagged with parent as their placement parent.
func (g *Generator) emptyNeighbors(grid []int, width, height, x, y, parent int) []frontierCell {
	var cells []frontierCell
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		if grid[ny*width+nx] != -1 {
			continue
		}
		cells = append(cells, frontierCell{x: nx, y: ny, parent: parent})
	}
	return cells
}

// removePosition removes every frontier entry at the given position
func removePosition(frontier []frontierCell, x, y int) []frontierCell {
	kept := frontier[:0]
	for _, c := range frontier {
		if c.x != x || c.y != y {
			kept = append(kept, c)
		}
	}
	return kept
}

// rollRoomType decides the type of the room about to be placed. roomNum is
// its placement index (entrance = 0) and placed holds the rooms placed so far.
func (g *Generator) rollRoomType(roomNum, count int, placed []*Room) RoomType {
	// Final room is the objective: boss or exit
	if roomNum == count-1 {
		if g.rng.Float64() < 0.7 {
			return RoomTypeBoss
		}
		return RoomTypeExit
	}

	// Second-to-last room has an elevated treasure chance
	if roomNum == count-2 {
		if g.rng.Float64() < 0.6 {
			return RoomTypeTreasure
		}
		return g.pickGeneralType(true)
	}

	roomType := g.pickGeneralType(false)

	// Soft cap: once specials exceed 30% of placed rooms, force further
	// special rolls down to chamber or corridor. The ratio only looks at
	// rooms already placed, which is the intended balancing behavior.
	if roomType.IsSpecial() && specialRatio(placed) > 0.3 {
		if g.rng.Float64() < 0.7 {
			return RoomTypeChamber
		}
		return RoomTypeCorridor
	}

	return roomType
}

// pickGeneralType draws from the weighted general pool. A rolled entrance is
// re-mapped to chamber; exit is skipped as well when excludeExit is set (the
// second-to-last slot never produces a premature exit).
func (g *Generator) pickGeneralType(excludeExit bool) RoomType {
	for {
		roomType := generalTypePool[g.rng.Intn(len(generalTypePool))]
		if roomType == RoomTypeEntrance {
			return RoomTypeChamber
		}
		if excludeExit && roomType == RoomTypeExit {
			continue
		}
		return roomType
	}
}

// specialRatio returns the fraction of placed rooms that are special types
func specialRatio(placed []*Room) float64 {
	if len(placed) == 0 {
		return 0
	}
	specials := 0
	for _, r := range placed {
		if r.Type.IsSpecial() {
			specials++
		}
	}
	return float64(specials) / float64(len(placed))
}

// addLoopConnections makes floor(roomCount * 0.2) attempts to add an extra
// edge between a random room and a grid-adjacent placed room it isn't already
// connected to. Attempts with no candidate are skipped, never retried, so the
// pass is strictly additive and never duplicates an edge.
func (g *Generator) addLoopConnections(grid []int, width, height int, rooms []*Room) {
	if len(rooms) < 2 {
		return
	}

	attempts := g.config.RoomCount * 2 / 10

	for i := 0; i < attempts; i++ {
		room := rooms[g.rng.Intn(len(rooms))]

		var candidates []*Room
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, ny := room.X+d[0], room.Y+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			idx := grid[ny*width+nx]
			if idx == -1 {
				continue
			}
			neighbor := rooms[idx]
			if !room.IsConnectedTo(neighbor.ID) {
				candidates = append(candidates, neighbor)
			}
		}

		if len(candidates) == 0 {
			continue
		}

		room.Connect(candidates[g.rng.Intn(len(candidates))])
	}
}

// newRoom creates a room with a generated name and description for its type
func (g *Generator) newRoom(id string, roomType RoomType, x, y int) *Room {
	return &Room{
		ID:          id,
		Name:        g.roomName(roomType),
		Description: g.roomDescription(roomType),
		X:           x,
		Y:           y,
		Type:        roomType,
		Connections: make([]string, 0, 4),
	}
}
