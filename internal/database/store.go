package database

import (
	"context"
	"fmt"

	"github.com/lawnchairsociety/procworld/internal/logger"
)

// OpenStore opens the store selected by cfg.Driver. The "none" driver
// returns a NoopRepository.
func OpenStore(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case "", DriverNone:
		return NoopRepository{}, nil
	case DriverSQLite, DriverPostgres:
		s, err := OpenWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened room store", "driver", cfg.Driver)
		return s, nil
	case DriverRedis:
		s, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened room store", "driver", cfg.Driver, "addr", cfg.Redis.Addr)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.Driver)
	}
}
