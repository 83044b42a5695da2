package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

// postgresTestEnv selects the PostgreSQL server the integration tests run
// against. They are skipped unless PROCWORLD_TEST_POSTGRES is true.
type postgresTestEnv struct {
	Enabled  bool   `env:"PROCWORLD_TEST_POSTGRES"`
	Host     string `env:"PROCWORLD_TEST_POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"PROCWORLD_TEST_POSTGRES_PORT" envDefault:"5435"`
	User     string `env:"PROCWORLD_TEST_POSTGRES_USER" envDefault:"procworld"`
	Password string `env:"PROCWORLD_TEST_POSTGRES_PASSWORD" envDefault:"procworld"`
	Database string `env:"PROCWORLD_TEST_POSTGRES_DATABASE" envDefault:"procworld_test"`
}

// skipIfNoPostgres skips the test unless a PostgreSQL server is configured
func skipIfNoPostgres(t *testing.T) *Config {
	t.Helper()
	var e postgresTestEnv
	if err := env.Parse(&e); err != nil {
		t.Fatalf("bad PostgreSQL test environment: %v", err)
	}
	if !e.Enabled {
		t.Skip("Skipping PostgreSQL test: PROCWORLD_TEST_POSTGRES not set")
	}

	return &Config{
		Driver: DriverPostgres,
		Postgres: PostgresConfig{
			Host:            e.Host,
			Port:            e.Port,
			User:            e.User,
			Password:        e.Password,
			Database:        e.Database,
			SSLMode:         "disable",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
		},
	}
}

// setupPostgresTestStore opens a PostgreSQL connection for testing and clears test data
func setupPostgresTestStore(t *testing.T, cfg *Config) *SQLStore {
	s, err := OpenWithConfig(*cfg)
	if err != nil {
		t.Fatalf("Failed to open PostgreSQL database: %v", err)
	}

	clean := func() {
		for _, table := range []string{"room_contents", "room_exits", "rooms"} {
			if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
				t.Logf("could not clear %s: %v", table, err)
			}
		}
	}
	clean()

	t.Cleanup(func() {
		clean()
		s.Close()
	})

	return s
}

func TestPostgres_SaveAndFind(t *testing.T) {
	cfg := skipIfNoPostgres(t)
	s := setupPostgresTestStore(t, cfg)
	ctx := context.Background()

	room := testRoom("proc_3_-2_0")
	if err := s.SaveRoom(ctx, room); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	room.Name = "Windswept Wilds"
	if err := s.SaveRoom(ctx, room); err != nil {
		t.Fatalf("second SaveRoom: %v", err)
	}

	got, err := s.FindRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("FindRoom: %v", err)
	}
	if got.Name != room.Name || len(got.Exits) != len(room.Exits) || len(got.Items) != len(room.Items) {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if _, err := s.FindRoom(ctx, "proc_9_9_9"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("FindRoom(missing) error = %v", err)
	}
}
