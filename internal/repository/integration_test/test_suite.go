package integration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatcher/internal/pkg/postgres"
	"dispatcher/pkg/logger/zap_adapter"
	"dispatcher/pkg/querier"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	poolInstance *pgxpool.Pool
	poolOnce     sync.Once
	poolErr      error
)

// GetPool поднимает один контейнер Postgres на весь пакет тестов и накатывает миграции.
func GetPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	poolOnce.Do(func() {
		ctx := context.Background()

		container, err := tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("dispatcher"),
			tcpostgres.WithUsername("dispatcher"),
			tcpostgres.WithPassword("dispatcher"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			poolErr = err
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			poolErr = err
			return
		}

		log := zap_adapter.NewNop()
		pool, err := postgres.NewConnPoolFromDSN(ctx, log, dsn)
		if err != nil {
			poolErr = err
			return
		}

		if err := postgres.Migrate(ctx, log, pool); err != nil {
			poolErr = err
			return
		}
		poolInstance = pool
	})

	require.NoError(t, poolErr)
	return poolInstance
}

func GetQuerier(t *testing.T) *querier.Querier {
	t.Helper()
	return querier.New(GetPool(t), pgxv5.DefaultCtxGetter)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier(t).Exec(ctx, `
		TRUNCATE TABLE orders, drivers, customers;
	`)
	require.NoError(t, err)
}
