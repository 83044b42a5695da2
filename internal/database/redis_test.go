package database

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := NewRedisStore(client, ttl)
	require.NoError(t, err)
	return s, mr
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	_, err := NewRedisStore(nil, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "client cannot be nil")
}

func TestRedisStore_SaveAndFind(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	ctx := context.Background()
	room := testRoom("proc_3_-2_0")

	require.NoError(t, s.SaveRoom(ctx, room))
	require.True(t, mr.Exists("room:proc_3_-2_0"))
	require.Zero(t, mr.TTL("room:proc_3_-2_0"))

	got, err := s.FindRoom(ctx, room.ID)
	require.NoError(t, err)

	want, err := json.Marshal(room)
	require.NoError(t, err)
	have, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(have))
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := setupRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveRoom(ctx, testRoom("proc_1_0_0")))
	require.Equal(t, time.Hour, mr.TTL("room:proc_1_0_0"))

	mr.FastForward(2 * time.Hour)
	_, err := s.FindRoom(ctx, "proc_1_0_0")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRedisStore_FindMissing(t *testing.T) {
	s, _ := setupRedisStore(t, 0)
	_, err := s.FindRoom(context.Background(), "proc_5_5_0")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRedisStore_CorruptedData(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	require.NoError(t, mr.Set("room:proc_2_2_0", "{not json"))

	_, err := s.FindRoom(context.Background(), "proc_2_2_0")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRoomNotFound)
	require.Contains(t, err.Error(), "failed to unmarshal room")
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := setupRedisStore(t, 0)
	mr.Close()

	_, err := s.FindRoom(context.Background(), "proc_0_0_0")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRoomNotFound)
	require.Error(t, s.SaveRoom(context.Background(), testRoom("proc_0_0_0")))
}

func TestOpenRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err := OpenStore(context.Background(), Config{Driver: DriverRedis, Redis: RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	require.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())
}
