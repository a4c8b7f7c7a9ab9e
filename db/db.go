package db

import (
	"context"
	"fmt"

	"cafe-gandom/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

func Init(ctx context.Context, cfg config.DBConfig) error {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	var err error
	Pool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		return err
	}
	if err := Pool.Ping(ctx); err != nil {
		Pool.Close()
		Pool = nil
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
	}
}
