package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"dispatcher/internal/dto"
	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
	"dispatcher/pkg/retrier"
	"dispatcher/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

const recipientKindHeader = "recipient_kind"

// KafkaNotifier публикует уведомления в топик. Notify не блокирует вызывающего:
// уведомление кладется в буфер, отправкой с ретраями занимается Run.
// При переполненном буфере уведомление отбрасывается.
type KafkaNotifier struct {
	log      handlerLogger
	producer sarama.SyncProducer
	topic    string
	retrier  Retrier

	queue   chan entities.Notification
	started atomic.Bool
	stopped chan struct{}
}

func NewKafkaNotifier(log handlerLogger, producer sarama.SyncProducer, topic string, retrier Retrier, bufferSize int) *KafkaNotifier {
	return &KafkaNotifier{
		log: log.With(
			logger.NewField("component", "notifications"),
			logger.NewField("topic", topic),
		),
		producer: producer,
		topic:    topic,
		retrier:  retrier,
		queue:    make(chan entities.Notification, bufferSize),
		stopped:  make(chan struct{}),
	}
}

// NewPublishRetrier ретраит только ошибки, после которых брокер может ответить успешно.
func NewPublishRetrier(maxElapsedTime time.Duration) *backoff_adapter.Retrier {
	return backoff_adapter.New(
		retrier.Exponential(100*time.Millisecond, 2*time.Second, maxElapsedTime).
			WithShouldRetry(IsRetriable),
	)
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification entities.Notification) {
	select {
	case n.queue <- notification:
	default:
		DroppedTotal.Inc()
		n.log.Warn("notification buffer is full, dropping",
			logger.NewField("order", notification.OrderID),
			logger.NewField("recipient", notification.RecipientID),
		)
	}
}

// Run отправляет уведомления из буфера до отмены ctx (блокирующий вызов).
func (n *KafkaNotifier) Run(ctx context.Context) error {
	n.started.Store(true)
	defer close(n.stopped)

	for {
		select {
		case <-ctx.Done():
			return nil
		case notification := <-n.queue:
			n.publish(ctx, notification)
		}
	}
}

// Close дожидается остановки Run, отправляет остаток буфера и закрывает продюсера.
func (n *KafkaNotifier) Close(ctx context.Context) error {
	if n.started.Load() {
		select {
		case <-n.stopped:
		case <-ctx.Done():
			return fmt.Errorf("wait notifier stop: %w", ctx.Err())
		}
	}

drain:
	for {
		select {
		case notification := <-n.queue:
			n.publish(ctx, notification)
		default:
			break drain
		}
	}

	return n.producer.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, notification entities.Notification) {
	start := time.Now()
	defer func() {
		PublishDuration.Observe(time.Since(start).Seconds())
	}()

	kind := notification.RecipientKind.String()
	payload, err := json.Marshal(dto.NewNotificationEvent(&notification))
	if err != nil {
		PublishedTotal.WithLabelValues(kind, "failed").Inc()
		n.log.Error("marshal notification",
			logger.NewField("order", notification.OrderID),
			logger.NewField("error", err),
		)
		return
	}

	message := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(notification.RecipientID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(recipientKindHeader), Value: []byte(kind)},
		},
	}

	var partition int32
	var offset int64
	err = n.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var sendErr error
		partition, offset, sendErr = n.producer.SendMessage(message)
		return sendErr
	})
	if err != nil {
		PublishedTotal.WithLabelValues(kind, "failed").Inc()
		n.log.Error("publish notification",
			logger.NewField("order", notification.OrderID),
			logger.NewField("recipient", notification.RecipientID),
			logger.NewField("error", err),
		)
		return
	}

	PublishedTotal.WithLabelValues(kind, "published").Inc()
	n.log.Info("notification published",
		logger.NewField("order", notification.OrderID),
		logger.NewField("recipient", notification.RecipientID),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
}

var retriableErrors = []error{
	sarama.ErrOutOfBrokers,
	sarama.ErrNotConnected,
	sarama.ErrLeaderNotAvailable,
	sarama.ErrNotLeaderForPartition,
	sarama.ErrRequestTimedOut,
	sarama.ErrBrokerNotAvailable,
	sarama.ErrNetworkException,
	sarama.ErrNotEnoughReplicas,
	sarama.ErrNotEnoughReplicasAfterAppend,
}

func IsRetriable(err error) bool {
	for _, target := range retriableErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
