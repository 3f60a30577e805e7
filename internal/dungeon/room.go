package dungeon

// RoomType represents the category of a generated room
type RoomType int

const (
	RoomTypeEntrance RoomType = iota // Entrance - where the party comes in (always exactly one)
	RoomTypeChamber                  // General chamber
	RoomTypeCorridor                 // Connecting corridor
	RoomTypeTreasure                 // Treasure room - guaranteed loot
	RoomTypeBoss                     // Boss room - guaranteed enemies
	RoomTypeExit                     // Exit - alternate terminal room
	RoomTypeSecret                   // Secret room
)

// String returns the string representation of a RoomType
func (t RoomType) String() string {
	switch t {
	case RoomTypeEntrance:
		return "entrance"
	case RoomTypeChamber:
		return "chamber"
	case RoomTypeCorridor:
		return "corridor"
	case RoomTypeTreasure:
		return "treasure"
	case RoomTypeBoss:
		return "boss"
	case RoomTypeExit:
		return "exit"
	case RoomTypeSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// IsSpecial returns true for room types subject to the special-room ratio cap
func (t RoomType) IsSpecial() bool {
	return t == RoomTypeBoss || t == RoomTypeTreasure || t == RoomTypeSecret
}

// ParseRoomType converts a string to a RoomType
func ParseRoomType(s string) (RoomType, bool) {
	switch s {
	case "entrance":
		return RoomTypeEntrance, true
	case "chamber":
		return RoomTypeChamber, true
	case "corridor":
		return RoomTypeCorridor, true
	case "treasure":
		return RoomTypeTreasure, true
	case "boss":
		return RoomTypeBoss, true
	case "exit":
		return RoomTypeExit, true
	case "secret":
		return RoomTypeSecret, true
	default:
		return RoomTypeChamber, false
	}
}

// Room is a single node in a generated dungeon graph.
type Room struct {
	ID          string   // "entrance" for the start room, "room-N" for the rest
	Name        string   // Generated flavor name: "<prefix> <suffix>"
	Description string   // One sentence of flavor text keyed by type
	X, Y        int      // Grid coordinates
	Type        RoomType // Room category
	Connections []string // IDs of rooms with a traversable link, kept symmetric
	HasEnemies  bool
	HasTreasure bool
}

// IsConnectedTo returns true if the room has a connection to the given room ID
func (r *Room) IsConnectedTo(id string) bool {
	for _, c := range r.Connections {
		if c == id {
			return true
		}
	}
	return false
}

// Connect adds a bidirectional connection between two rooms.
// Duplicate edges are ignored so connection lists stay symmetric.
func (r *Room) Connect(other *Room) {
	if other == nil || other.ID == r.ID || r.IsConnectedTo(other.ID) {
		return
	}
	r.Connections = append(r.Connections, other.ID)
	other.Connections = append(other.Connections, r.ID)
}
