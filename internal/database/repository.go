// Package database persists generated rooms. Persistence is optional:
// rooms are a pure function of their coordinates, so a store only saves
// the cost of regenerating them.
package database

//go:generate mockgen -destination=mock/mock_repository.go -package=databasemock github.com/lawnchairsociety/procworld/internal/database Repository

import (
	"context"
	"errors"

	"github.com/lawnchairsociety/procworld/internal/world"
)

// ErrRoomNotFound is returned when a room has not been saved.
var ErrRoomNotFound = errors.New("room not found")

// Repository loads and saves generated rooms.
type Repository interface {
	// FindRoom returns a saved room, or ErrRoomNotFound.
	FindRoom(ctx context.Context, id string) (*world.RoomDefinition, error)

	// SaveRoom stores a room with its exits and contents, replacing any
	// earlier copy.
	SaveRoom(ctx context.Context, room *world.RoomDefinition) error
}

// Store is a Repository holding a connection that must be closed.
type Store interface {
	Repository
	Close() error
}

// NoopRepository stores nothing. It is the default when no store is
// configured.
type NoopRepository struct{}

// FindRoom always reports the room as missing.
func (NoopRepository) FindRoom(ctx context.Context, id string) (*world.RoomDefinition, error) {
	return nil, ErrRoomNotFound
}

// SaveRoom discards the room.
func (NoopRepository) SaveRoom(ctx context.Context, room *world.RoomDefinition) error {
	return nil
}

// Close does nothing.
func (NoopRepository) Close() error {
	return nil
}
