package kafka

import (
	"context"
	"fmt"
	"time"

	"dispatcher/pkg/logger"
	"dispatcher/pkg/retrier"
	"dispatcher/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

var connectRetry = retrier.Exponential(time.Second, 30*time.Second, 2*time.Minute)

// NewSaramaConfig общая конфигурация клиента для consumer и producer.
func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.Strategy = rebalanceStrategy

	return cfg, nil
}

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	var attempt uint64
	retryConfig := connectRetry.WithOnRetry(func(err error, wait time.Duration) {
		log.Warn("kafka is not ready",
			logger.NewField("attempt", attempt),
			logger.NewField("retry_in", wait),
			logger.NewField("error", err),
		)
	})

	err := backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close kafka probe client", logger.NewField("error", err))
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.Error("kafka is unreachable",
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		)
		return fmt.Errorf("connect to kafka: %w", err)
	}

	log.Info("kafka connection established", logger.NewField("attempts", attempt))
	return nil
}
