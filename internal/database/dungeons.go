package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emberforge/taverntale/server/internal/dungeon"
)

// ErrDungeonNotFound is returned when a dungeon lookup fails.
var ErrDungeonNotFound = errors.New("dungeon not found")

// DungeonRecord is the stored metadata of a generated dungeon.
type DungeonRecord struct {
	ID        string
	Name      string
	Seed      int64
	Width     int
	Height    int
	RoomCount int
	CreatedAt time.Time
}

// SaveDungeon stores a generated room list under a fresh UUID and returns
// the metadata record. The room slice is written in placement order.
func (d *Database) SaveDungeon(name string, seed int64, width, height int, rooms []*dungeon.Room) (*DungeonRecord, error) {
	if len(rooms) == 0 {
		return nil, errors.New("cannot save a dungeon with no rooms")
	}

	record := &DungeonRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Seed:      seed,
		Width:     width,
		Height:    height,
		RoomCount: len(rooms),
		CreatedAt: time.Now(),
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		d.qb.Build(`INSERT INTO dungeons (id, name, seed, width, height, room_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
		record.ID, record.Name, record.Seed, record.Width, record.Height, record.RoomCount, record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert dungeon: %w", err)
	}

	insertRoom := d.qb.Build(`INSERT INTO dungeon_rooms
		(dungeon_id, position, room_id, name, description, x, y, type, connections, has_enemies, has_treasure)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	for i, room := range rooms {
		_, err = tx.Exec(insertRoom,
			record.ID, i, room.ID, room.Name, room.Description,
			room.X, room.Y, room.Type.String(),
			strings.Join(room.Connections, ","),
			room.HasEnemies, room.HasTreasure,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert room %s: %w", room.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dungeon: %w", err)
	}

	return record, nil
}

// GetDungeon loads a dungeon's metadata and its rooms in placement order.
func (d *Database) GetDungeon(id string) (*DungeonRecord, []*dungeon.Room, error) {
	var record DungeonRecord

	err := d.db.QueryRow(
		d.qb.Build(`SELECT id, name, seed, width, height, room_count, created_at
			FROM dungeons WHERE id = ?`),
		id,
	).Scan(&record.ID, &record.Name, &record.Seed, &record.Width, &record.Height, &record.RoomCount, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrDungeonNotFound
		}
		return nil, nil, fmt.Errorf("failed to load dungeon: %w", err)
	}

	rows, err := d.db.Query(
		d.qb.Build(`SELECT room_id, name, description, x, y, type, connections, has_enemies, has_treasure
			FROM dungeon_rooms WHERE dungeon_id = ? ORDER BY position`),
		id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*dungeon.Room, 0, record.RoomCount)
	for rows.Next() {
		var room dungeon.Room
		var typeStr, connections string

		err := rows.Scan(&room.ID, &room.Name, &room.Description,
			&room.X, &room.Y, &typeStr, &connections,
			&room.HasEnemies, &room.HasTreasure)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan room: %w", err)
		}

		roomType, ok := dungeon.ParseRoomType(typeStr)
		if !ok {
			return nil, nil, fmt.Errorf("room %s has unknown type %q", room.ID, typeStr)
		}
		room.Type = roomType

		if connections != "" {
			room.Connections = strings.Split(connections, ",")
		} else {
			room.Connections = []string{}
		}

		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return &record, rooms, nil
}

// ListDungeons returns metadata for all saved dungeons, newest first.
func (d *Database) ListDungeons() ([]*DungeonRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, name, seed, width, height, room_count, created_at
			FROM dungeons ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	defer rows.Close()

	var records []*DungeonRecord
	for rows.Next() {
		var record DungeonRecord
		err := rows.Scan(&record.ID, &record.Name, &record.Seed,
			&record.Width, &record.Height, &record.RoomCount, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dungeon: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dungeons: %w", err)
	}

	return records, nil
}

// DeleteDungeon removes a dungeon and its rooms (cascade).
func (d *Database) DeleteDungeon(id string) error {
	result, err := d.db.Exec(d.qb.Build(`DELETE FROM dungeons WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete dungeon: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrDungeonNotFound
	}

	return nil
}
