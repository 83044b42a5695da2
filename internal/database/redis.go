package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/lawnchairsociety/procworld/internal/world"
)

const roomKeyPrefix = "room:"

// RedisStore keeps rooms as JSON documents under room:<id>.
type RedisStore struct {
	client redis.Cmdable
	closer func() error
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. ttl of zero keeps rooms forever.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	return &RedisStore{
		client: client,
		closer: func() error { return nil },
		ttl:    ttl,
	}, nil
}

// OpenRedis connects to the Redis server in cfg and checks it is reachable.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	s, err := NewRedisStore(client, cfg.TTL)
	if err != nil {
		return nil, err
	}
	s.closer = client.Close
	return s, nil
}

func roomKey(id string) string {
	return roomKeyPrefix + id
}

// FindRoom loads a saved room.
func (s *RedisStore) FindRoom(ctx context.Context, id string) (*world.RoomDefinition, error) {
	result, err := s.client.Get(ctx, roomKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}

	var room world.RoomDefinition
	if err := json.Unmarshal([]byte(result), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room %s: %w", id, err)
	}
	return &room, nil
}

// SaveRoom stores a room, replacing any earlier copy.
func (s *RedisStore) SaveRoom(ctx context.Context, room *world.RoomDefinition) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room %s: %w", room.ID, err)
	}
	if err := s.client.Set(ctx, roomKey(room.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save room %s: %w", room.ID, err)
	}
	return nil
}

// Close closes the connection if the store opened it.
func (s *RedisStore) Close() error {
	return s.closer()
}
