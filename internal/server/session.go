package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/emberforge/taverntale/server/internal/database"
	"github.com/emberforge/taverntale/server/internal/dungeon"
	"github.com/emberforge/taverntale/server/internal/expedition"
	"github.com/emberforge/taverntale/server/internal/logger"
)

// Request is a single client message. Action selects the operation; the
// other fields apply only to the actions that use them.
type Request struct {
	Action    string `json:"action"`
	Name      string `json:"name,omitempty"`
	Rooms     int    `json:"rooms,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	DungeonID string `json:"dungeon_id,omitempty"`
	RoomID    string `json:"room_id,omitempty"`
}

// Response is the server's reply to a single request.
type Response struct {
	Action   string           `json:"action"`
	OK       bool             `json:"ok"`
	Error    string           `json:"error,omitempty"`
	Dungeon  *DungeonPayload  `json:"dungeon,omitempty"`
	Room     *RoomPayload     `json:"room,omitempty"`
	Dungeons []DungeonSummary `json:"dungeons,omitempty"`
	Progress *ProgressPayload `json:"progress,omitempty"`
}

// DungeonSummary is dungeon metadata without the room list.
type DungeonSummary struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Seed      int64     `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	RoomCount int       `json:"room_count"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DungeonPayload is a full dungeon: metadata plus rooms in placement order.
type DungeonPayload struct {
	DungeonSummary
	Rooms []RoomPayload `json:"rooms"`
}

// RoomPayload is a room plus this expedition's per-room state.
type RoomPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Type        string   `json:"type"`
	Connections []string `json:"connections"`
	HasEnemies  bool     `json:"has_enemies"`
	HasTreasure bool     `json:"has_treasure"`
	Explored    bool     `json:"explored"`
	Completed   bool     `json:"completed"`
	Current     bool     `json:"current"`
}

// ProgressPayload reports exploration progress through the dungeon.
type ProgressPayload struct {
	Explored  int `json:"explored"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// session is one client's state: at most one active expedition at a time.
// Sessions are independent; there is no cross-client game state.
type session struct {
	srv    *Server
	exp    *expedition.Expedition
	record *database.DungeonRecord
}

// handle dispatches one request and builds the reply. It never returns an
// error; protocol-level failures become error responses.
func (s *session) handle(req Request) Response {
	switch req.Action {
	case "generate":
		return s.handleGenerate(req)
	case "load":
		return s.handleLoad(req)
	case "list":
		return s.handleList(req)
	case "look":
		return s.handleLook(req)
	case "enter":
		return s.handleEnter(req)
	case "complete":
		return s.handleComplete(req)
	default:
		return s.fail(req, fmt.Sprintf("unknown action %q", req.Action))
	}
}

func (s *session) fail(req Request, msg string) Response {
	return Response{Action: req.Action, OK: false, Error: msg}
}

// handleGenerate creates a new dungeon, persists it, and starts an
// expedition at its entrance. Omitted parameters fall back to the server's
// generator defaults.
func (s *session) handleGenerate(req Request) Response {
	defaults := s.srv.cfg.Generator

	cfg := dungeon.Config{
		RoomCount: req.Rooms,
		MapWidth:  req.Width,
		MapHeight: req.Height,
		Seed:      req.Seed,
	}
	if cfg.RoomCount == 0 {
		cfg.RoomCount = defaults.RoomCount
	}
	if cfg.MapWidth == 0 {
		cfg.MapWidth = defaults.MapWidth
	}
	if cfg.MapHeight == 0 {
		cfg.MapHeight = defaults.MapHeight
	}

	if cfg.RoomCount < 1 || cfg.MapWidth < 1 || cfg.MapHeight < 1 {
		return s.fail(req, "rooms, width, and height must be positive")
	}
	if defaults.MaxRoomCount > 0 && cfg.RoomCount > defaults.MaxRoomCount {
		return s.fail(req, fmt.Sprintf("room count %d exceeds maximum %d", cfg.RoomCount, defaults.MaxRoomCount))
	}
	if defaults.MaxDimension > 0 && (cfg.MapWidth > defaults.MaxDimension || cfg.MapHeight > defaults.MaxDimension) {
		return s.fail(req, fmt.Sprintf("grid dimensions exceed maximum %d", defaults.MaxDimension))
	}

	name := req.Name
	if name == "" {
		name = "Unnamed Delve"
	}

	gen := dungeon.NewGenerator(cfg)
	rooms := gen.Generate()

	var record *database.DungeonRecord
	if s.srv.db != nil {
		var err error
		record, err = s.srv.db.SaveDungeon(name, gen.Seed(), cfg.MapWidth, cfg.MapHeight, rooms)
		if err != nil {
			logger.Error("Failed to persist dungeon", "name", name, "error", err)
			return s.fail(req, "failed to save dungeon")
		}
	}

	exp, err := expedition.New(rooms)
	if err != nil {
		return s.fail(req, err.Error())
	}
	s.exp = exp
	s.record = record

	logger.Info("Dungeon generated",
		"name", name,
		"seed", gen.Seed(),
		"rooms", len(rooms),
		"requested", cfg.RoomCount)

	return Response{
		Action:   req.Action,
		OK:       true,
		Dungeon:  s.dungeonPayload(name, gen.Seed(), cfg.MapWidth, cfg.MapHeight),
		Room:     s.roomPayload(exp.Current()),
		Progress: s.progressPayload(),
	}
}

// handleLoad fetches a saved dungeon and starts a fresh expedition on it.
func (s *session) handleLoad(req Request) Response {
	if s.srv.db == nil {
		return s.fail(req, "no dungeon storage configured")
	}
	if req.DungeonID == "" {
		return s.fail(req, "dungeon_id is required")
	}

	record, rooms, err := s.srv.db.GetDungeon(req.DungeonID)
	if err != nil {
		if errors.Is(err, database.ErrDungeonNotFound) {
			return s.fail(req, "dungeon not found")
		}
		logger.Error("Failed to load dungeon", "dungeon_id", req.DungeonID, "error", err)
		return s.fail(req, "failed to load dungeon")
	}

	exp, err := expedition.New(rooms)
	if err != nil {
		return s.fail(req, err.Error())
	}
	s.exp = exp
	s.record = record

	return Response{
		Action:   req.Action,
		OK:       true,
		Dungeon:  s.dungeonPayload(record.Name, record.Seed, record.Width, record.Height),
		Room:     s.roomPayload(exp.Current()),
		Progress: s.progressPayload(),
	}
}

func (s *session) handleList(req Request) Response {
	if s.srv.db == nil {
		return s.fail(req, "no dungeon storage configured")
	}

	records, err := s.srv.db.ListDungeons()
	if err != nil {
		logger.Error("Failed to list dungeons", "error", err)
		return s.fail(req, "failed to list dungeons")
	}

	summaries := make([]DungeonSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, DungeonSummary{
			ID:        r.ID,
			Name:      r.Name,
			Seed:      r.Seed,
			Width:     r.Width,
			Height:    r.Height,
			RoomCount: r.RoomCount,
			CreatedAt: r.CreatedAt,
		})
	}

	return Response{Action: req.Action, OK: true, Dungeons: summaries}
}

func (s *session) handleLook(req Request) Response {
	if s.exp == nil {
		return s.fail(req, "no active expedition")
	}

	return Response{
		Action:   req.Action,
		OK:       true,
		Room:     s.roomPayload(s.exp.Current()),
		Progress: s.progressPayload(),
	}
}

func (s *session) handleEnter(req Request) Response {
	if s.exp == nil {
		return s.fail(req, "no active expedition")
	}
	if req.RoomID == "" {
		return s.fail(req, "room_id is required")
	}

	room, err := s.exp.Enter(req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, expedition.ErrUnknownRoom):
			return s.fail(req, "no such room")
		case errors.Is(err, expedition.ErrNoPath):
			return s.fail(req, "no connection to that room")
		default:
			return s.fail(req, err.Error())
		}
	}

	return Response{
		Action:   req.Action,
		OK:       true,
		Room:     s.roomPayload(room),
		Progress: s.progressPayload(),
	}
}

func (s *session) handleComplete(req Request) Response {
	if s.exp == nil {
		return s.fail(req, "no active expedition")
	}
	if req.RoomID == "" {
		return s.fail(req, "room_id is required")
	}

	if err := s.exp.Complete(req.RoomID); err != nil {
		switch {
		case errors.Is(err, expedition.ErrUnknownRoom):
			return s.fail(req, "no such room")
		case errors.Is(err, expedition.ErrNotExplored):
			return s.fail(req, "room has not been explored")
		default:
			return s.fail(req, err.Error())
		}
	}

	room, _ := s.exp.Room(req.RoomID)
	return Response{
		Action:   req.Action,
		OK:       true,
		Room:     s.roomPayload(room),
		Progress: s.progressPayload(),
	}
}

func (s *session) dungeonPayload(name string, seed int64, width, height int) *DungeonPayload {
	rooms := s.exp.Rooms()

	payload := &DungeonPayload{
		DungeonSummary: DungeonSummary{
			Name:      name,
			Seed:      seed,
			Width:     width,
			Height:    height,
			RoomCount: len(rooms),
		},
		Rooms: make([]RoomPayload, 0, len(rooms)),
	}
	if s.record != nil {
		payload.ID = s.record.ID
		payload.CreatedAt = s.record.CreatedAt
	}

	for _, room := range rooms {
		payload.Rooms = append(payload.Rooms, *s.roomPayload(room))
	}

	return payload
}

func (s *session) roomPayload(room *dungeon.Room) *RoomPayload {
	connections := make([]string, len(room.Connections))
	copy(connections, room.Connections)

	return &RoomPayload{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		X:           room.X,
		Y:           room.Y,
		Type:        room.Type.String(),
		Connections: connections,
		HasEnemies:  room.HasEnemies,
		HasTreasure: room.HasTreasure,
		Explored:    s.exp.Explored(room.ID),
		Completed:   s.exp.Completed(room.ID),
		Current:     s.exp.Current().ID == room.ID,
	}
}

func (s *session) progressPayload() *ProgressPayload {
	explored, completed, total := s.exp.Progress()
	return &ProgressPayload{Explored: explored, Completed: completed, Total: total}
}
