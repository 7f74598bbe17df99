//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=jobs_test
package jobs

import (
	"context"

	"dispatcher/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Snapshotter interface {
	Snapshot(ctx context.Context) error
}
