package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/procworld/internal/region"
	"github.com/lawnchairsociety/procworld/internal/world"
)

// Content categories in the room_contents table.
const (
	contentItem     = "item"
	contentEnemy    = "enemy"
	contentResource = "resource"
)

// SQLStore persists rooms in SQLite or PostgreSQL.
type SQLStore struct {
	db      *sqlx.DB
	dialect dialect
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*SQLStore, error) {
	return OpenWithConfig(DefaultSQLiteConfig(path))
}

// OpenWithConfig opens the SQL store selected by cfg.Driver.
func OpenWithConfig(cfg Config) (*SQLStore, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Postgres.ConnectionString()
	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sqlx.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverPostgres {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	} else {
		// PRAGMAs are per connection; a single connection keeps them applied
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range d.init {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	s := &SQLStore{
		db:      db,
		dialect: d,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying sqlx.DB for advanced operations.
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLStore) migrate() error {
	migrations := []string{
		// Rooms table; data holds the room without exits and contents
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			kind TEXT NOT NULL,
			biome TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at %s DEFAULT CURRENT_TIMESTAMP
		)`, s.dialect.timestamp),

		// Exits table
		`CREATE TABLE IF NOT EXISTS room_exits (
			room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			direction TEXT NOT NULL,
			destination_id TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (room_id, position)
		)`,

		// Items, enemies and resource nodes
		`CREATE TABLE IF NOT EXISTS room_contents (
			room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			position INTEGER NOT NULL,
			content_id TEXT NOT NULL,
			PRIMARY KEY (room_id, category, position)
		)`,

		// Indexes for common queries
		`CREATE INDEX IF NOT EXISTS idx_rooms_coords ON rooms(x, y, z)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

type roomRow struct {
	ID   string `db:"id"`
	Data string `db:"data"`
}

type exitRow struct {
	Direction     string `db:"direction"`
	DestinationID string `db:"destination_id"`
	Description   string `db:"description"`
}

type contentRow struct {
	Category  string `db:"category"`
	ContentID string `db:"content_id"`
}

// FindRoom loads a saved room with its exits and contents.
func (s *SQLStore) FindRoom(ctx context.Context, id string) (*world.RoomDefinition, error) {
	var row roomRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT id, data FROM rooms WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}

	var room world.RoomDefinition
	if err := json.Unmarshal([]byte(row.Data), &room); err != nil {
		return nil, fmt.Errorf("failed to decode room %s: %w", id, err)
	}

	var exits []exitRow
	err = s.db.SelectContext(ctx, &exits,
		s.db.Rebind("SELECT direction, destination_id, description FROM room_exits WHERE room_id = ? ORDER BY position"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load exits of room %s: %w", id, err)
	}
	room.Exits = make([]world.Exit, 0, len(exits))
	for _, e := range exits {
		dir, err := region.ParseDirection(e.Direction)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", id, err)
		}
		room.Exits = append(room.Exits, world.Exit{
			Direction:     dir,
			DestinationID: e.DestinationID,
			Description:   e.Description,
		})
	}

	var contents []contentRow
	err = s.db.SelectContext(ctx, &contents,
		s.db.Rebind("SELECT category, content_id FROM room_contents WHERE room_id = ? ORDER BY category, position"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contents of room %s: %w", id, err)
	}
	for _, c := range contents {
		switch c.Category {
		case contentItem:
			room.Items = append(room.Items, c.ContentID)
		case contentEnemy:
			room.Enemies = append(room.Enemies, c.ContentID)
		case contentResource:
			room.Resources = append(room.Resources, c.ContentID)
		}
	}

	return &room, nil
}

// SaveRoom writes a room, its exits and its contents in one transaction.
func (s *SQLStore) SaveRoom(ctx context.Context, room *world.RoomDefinition) error {
	// Exits and contents live in their own tables
	body := *room
	body.Exits = nil
	body.Items = nil
	body.Enemies = nil
	body.Resources = nil
	data, err := json.Marshal(&body)
	if err != nil {
		return fmt.Errorf("failed to encode room %s: %w", room.ID, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO rooms (id, x, y, z, kind, biome, name, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			x = excluded.x, y = excluded.y, z = excluded.z,
			kind = excluded.kind, biome = excluded.biome, name = excluded.name,
			data = excluded.data, updated_at = CURRENT_TIMESTAMP`),
		room.ID, room.X, room.Y, room.Z, room.Kind.String(), room.BiomeID, room.Name, string(data))
	if err != nil {
		return fmt.Errorf("failed to save room %s: %w", room.ID, err)
	}

	for _, table := range []string{"room_exits", "room_contents"} {
		if _, err := tx.ExecContext(ctx, s.db.Rebind("DELETE FROM "+table+" WHERE room_id = ?"), room.ID); err != nil {
			return fmt.Errorf("failed to clear %s of room %s: %w", table, room.ID, err)
		}
	}

	for i, e := range room.Exits {
		_, err = tx.ExecContext(ctx,
			s.db.Rebind("INSERT INTO room_exits (room_id, position, direction, destination_id, description) VALUES (?, ?, ?, ?, ?)"),
			room.ID, i, e.Direction.String(), e.DestinationID, e.Description)
		if err != nil {
			return fmt.Errorf("failed to save exit %s of room %s: %w", e.Direction, room.ID, err)
		}
	}

	contents := []struct {
		category string
		ids      []string
	}{
		{contentItem, room.Items},
		{contentEnemy, room.Enemies},
		{contentResource, room.Resources},
	}
	for _, c := range contents {
		for i, contentID := range c.ids {
			_, err = tx.ExecContext(ctx,
				s.db.Rebind("INSERT INTO room_contents (room_id, category, position, content_id) VALUES (?, ?, ?, ?)"),
				room.ID, c.category, i, contentID)
			if err != nil {
				return fmt.Errorf("failed to save %s %s of room %s: %w", c.category, contentID, room.ID, err)
			}
		}
	}

	return tx.Commit()
}
