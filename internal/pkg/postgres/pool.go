package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"dispatcher/internal/pkg/config"
	"dispatcher/pkg/logger"
	"dispatcher/pkg/retrier"
	"dispatcher/pkg/retrier/backoff_adapter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Снимок пишется одной транзакцией, больше пары соединений не нужно.
const (
	maxConns          = 4
	minConns          = 1
	maxConnLifetime   = time.Hour
	healthCheckPeriod = 30 * time.Second
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	return NewConnPoolFromDSN(ctx, log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
	), DSN(cfg))
}

// NewConnPoolFromDSN создает пул по готовой строке подключения и ждет доступности базы.
func NewConnPoolFromDSN(ctx context.Context, log logger.Logger, connString string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	if err := waitForDatabase(ctx, log, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

// DSN собирает строку подключения, экранируя логин и пароль.
func DSN(cfg *config.Database) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   "/" + cfg.DBName,
	}
	if cfg.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return dsn.String()
}

func waitForDatabase(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	var attempt uint64
	cfg := retrier.Exponential(5*time.Second, 30*time.Second, 2*time.Minute).
		WithOnRetry(func(err error, wait time.Duration) {
			log.Warn("database is not ready",
				logger.NewField("attempt", attempt),
				logger.NewField("retry_in", wait),
				logger.NewField("error", err),
			)
		})

	err := backoff_adapter.New(cfg).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return pool.Ping(ctx)
	})
	if err != nil {
		log.Error("database is unreachable",
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		)
		return fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connection established", logger.NewField("attempts", attempt))
	return nil
}
