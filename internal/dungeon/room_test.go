package dungeon

import "testing"

func TestRoomTypeString(t *testing.T) {
	tests := []struct {
		roomType RoomType
		want     string
	}{
		{RoomTypeEntrance, "entrance"},
		{RoomTypeChamber, "chamber"},
		{RoomTypeCorridor, "corridor"},
		{RoomTypeTreasure, "treasure"},
		{RoomTypeBoss, "boss"},
		{RoomTypeExit, "exit"},
		{RoomTypeSecret, "secret"},
		{RoomType(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.roomType.String(); got != tc.want {
			t.Errorf("RoomType(%d).String() = %q, want %q", tc.roomType, got, tc.want)
		}
	}
}

func TestParseRoomType(t *testing.T) {
	// Every type must round-trip through its string form
	types := []RoomType{
		RoomTypeEntrance, RoomTypeChamber, RoomTypeCorridor,
		RoomTypeTreasure, RoomTypeBoss, RoomTypeExit, RoomTypeSecret,
	}

	for _, roomType := range types {
		parsed, ok := ParseRoomType(roomType.String())
		if !ok {
			t.Errorf("ParseRoomType(%q) not recognized", roomType.String())
		}
		if parsed != roomType {
			t.Errorf("ParseRoomType(%q) = %v, want %v", roomType.String(), parsed, roomType)
		}
	}

	if _, ok := ParseRoomType("ballroom"); ok {
		t.Error("ParseRoomType should reject unknown type strings")
	}
}

func TestRoomTypeIsSpecial(t *testing.T) {
	specials := map[RoomType]bool{
		RoomTypeEntrance: false,
		RoomTypeChamber:  false,
		RoomTypeCorridor: false,
		RoomTypeTreasure: true,
		RoomTypeBoss:     true,
		RoomTypeExit:     false,
		RoomTypeSecret:   true,
	}

	for roomType, want := range specials {
		if got := roomType.IsSpecial(); got != want {
			t.Errorf("%s.IsSpecial() = %v, want %v", roomType, got, want)
		}
	}
}

func TestRoomConnect(t *testing.T) {
	a := &Room{ID: "entrance"}
	b := &Room{ID: "room-1"}

	a.Connect(b)

	if !a.IsConnectedTo("room-1") {
		t.Error("a should be connected to b")
	}
	if !b.IsConnectedTo("entrance") {
		t.Error("b should be connected back to a")
	}

	// Duplicate connects are ignored from either side
	a.Connect(b)
	b.Connect(a)

	if len(a.Connections) != 1 {
		t.Errorf("a has %d connections, want 1", len(a.Connections))
	}
	if len(b.Connections) != 1 {
		t.Errorf("b has %d connections, want 1", len(b.Connections))
	}
}

func TestRoomConnectSelf(t *testing.T) {
	a := &Room{ID: "room-1"}
	a.Connect(a)

	if len(a.Connections) != 0 {
		t.Errorf("self-connect produced %d connections, want 0", len(a.Connections))
	}
}
