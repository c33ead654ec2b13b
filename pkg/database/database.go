package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoecream/shoecare-api/pkg/config"
)

func Connect(ctx context.Context, storeCfg config.StoreConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(storeCfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	cfg.MinConns = int32(storeCfg.MinConns)
	cfg.MaxConns = int32(storeCfg.MaxConns)
	cfg.MaxConnLifetime = storeCfg.MaxLifetime
	cfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.NewWithConfig(ctx, cfg)
}
