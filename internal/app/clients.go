package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/edulearn-backend/internal/data/db"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/realtime/bus"
)

type Clients struct {
	Postgres *db.PostgresService
	Redis    *goredis.Client
	Bus      bus.Bus
	Media    *objectStore
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	pg, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(pg.DB()); err != nil {
			_ = pg.Close()
			return Clients{}, fmt.Errorf("postgres automigrate: %w", err)
		}
		if err := db.EnsureIndexes(pg.DB()); err != nil {
			_ = pg.Close()
			return Clients{}, fmt.Errorf("postgres indexes: %w", err)
		}
	}

	// Redis (optional): without it events stay on this instance.
	var (
		rdb *goredis.Client
		b   bus.Bus
	)
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		b, err = bus.NewRedisBus(log, rdb, cfg.RedisChannel)
		if err != nil {
			_ = rdb.Close()
			_ = pg.Close()
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set; realtime events are delivered in-process only")
		b = bus.NewLocalBus()
	}

	media, err := resolveObjectStore(ctx, log, cfg)
	if err != nil {
		_ = b.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = pg.Close()
		return Clients{}, err
	}

	return Clients{
		Postgres: pg,
		Redis:    rdb,
		Bus:      b,
		Media:    media,
	}, nil
}

func (c Clients) Close(log *logger.Logger) {
	if c.Media != nil && c.Media.close != nil {
		if err := c.Media.close(); err != nil {
			log.Warn("close object store", "error", err)
		}
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn("close redis", "error", err)
		}
	}
	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			log.Warn("close postgres", "error", err)
		}
	}
}
