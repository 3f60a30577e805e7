// Package expedition tracks a party's progress through a generated dungeon.
//
// The generator hands over an immutable room list; everything that changes
// during play (current position, explored flags, completion flags) lives
// here. Movement is only allowed along connection edges.
package expedition

import (
	"errors"
	"sync"

	"github.com/emberforge/taverntale/server/internal/dungeon"
)

var (
	ErrNoRooms     = errors.New("expedition: dungeon has no rooms")
	ErrUnknownRoom = errors.New("expedition: no such room")
	ErrNoPath      = errors.New("expedition: no connection to that room")
	ErrNotExplored = errors.New("expedition: room has not been explored")
)

// Expedition is one party's walk through one dungeon
type Expedition struct {
	rooms     map[string]*dungeon.Room
	order     []string // room IDs in placement order
	current   string
	explored  map[string]bool
	completed map[string]bool
	mu        sync.RWMutex
}

// New starts an expedition at the entrance of the given dungeon.
// The entrance counts as explored immediately.
func New(rooms []*dungeon.Room) (*Expedition, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}

	e := &Expedition{
		rooms:     make(map[string]*dungeon.Room, len(rooms)),
		order:     make([]string, 0, len(rooms)),
		explored:  make(map[string]bool),
		completed: make(map[string]bool),
	}

	for _, room := range rooms {
		e.rooms[room.ID] = room
		e.order = append(e.order, room.ID)
	}

	entrance := rooms[0]
	e.current = entrance.ID
	e.explored[entrance.ID] = true

	return e, nil
}

// Current returns the room the party is in
func (e *Expedition) Current() *dungeon.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rooms[e.current]
}

// Room returns a room by ID
func (e *Expedition) Room(id string) (*dungeon.Room, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	room, ok := e.rooms[id]
	return room, ok
}

// Rooms returns the dungeon's rooms in placement order
func (e *Expedition) Rooms() []*dungeon.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rooms := make([]*dungeon.Room, 0, len(e.order))
	for _, id := range e.order {
		rooms = append(rooms, e.rooms[id])
	}
	return rooms
}

// Enter moves the party into a room connected to the current one and marks
// it explored. Returns the entered room.
func (e *Expedition) Enter(roomID string) (*dungeon.Room, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[roomID]
	if !ok {
		return nil, ErrUnknownRoom
	}

	if roomID != e.current && !e.rooms[e.current].IsConnectedTo(roomID) {
		return nil, ErrNoPath
	}

	e.current = roomID
	e.explored[roomID] = true
	return room, nil
}

// Explored returns true if the room has been entered at least once
func (e *Expedition) Explored(roomID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.explored[roomID]
}

// Complete marks an explored room as completed (its encounter resolved).
// Rooms the party has never entered cannot be completed.
func (e *Expedition) Complete(roomID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.rooms[roomID]; !ok {
		return ErrUnknownRoom
	}
	if !e.explored[roomID] {
		return ErrNotExplored
	}

	e.completed[roomID] = true
	return nil
}

// Completed returns true if the room has been marked completed
func (e *Expedition) Completed(roomID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.completed[roomID]
}

// Progress returns explored and completed counts against the room total
func (e *Expedition) Progress() (explored, completed, total int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.explored), len(e.completed), len(e.rooms)
}

// IsFullyExplored returns true once every room has been entered
func (e *Expedition) IsFullyExplored() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.explored) == len(e.rooms)
}
