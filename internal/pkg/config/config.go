package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultNotificationBufferSize = 1024

type (
	Dispatch struct {
		MaxOrderQuantity int           // верхняя граница количества товара в заказе
		OrderTimeout     time.Duration // сколько заказ может ждать в CREATED/ASSIGNED
	}

	Tasks struct {
		OrderTimeoutSweepInterval time.Duration
	}

	Persistence struct {
		Enabled          bool
		SnapshotSchedule string // cron spec, например "@every 30s"
	}

	Log struct {
		Level string
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // пополнение корзины, токенов в секунду
		RateLimiterBurst int           // емкость корзины
		PprofEnabled     bool
		PprofPort        string
		GRPCHealthPort   string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Kafka struct {
		Enabled         bool
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Producer        Producer
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	Producer struct {
		BufferSize int
	}

	KafkaHandlers struct {
		NotificationDelivered NotificationDelivered
	}

	NotificationDelivered struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Dispatch    Dispatch
		Tasks       Tasks
		Persistence Persistence
		Log         Log
		Server      HTTPServer
		Database    Database
		Kafka       Kafka
	}
)

// BrokerList возвращает брокеров из KAFKA_BROKERS, разделенных запятой.
func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, broker := range strings.Split(k.Brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	maxOrderQuantity, err := osGetInt("DISPATCH_MAX_ORDER_QUANTITY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderTimeout, err := osGetEnvDuration("DISPATCH_ORDER_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sweepInterval, err := osGetEnvDuration("BACKGROUND_ORDER_TIMEOUT_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	persistenceEnabled, err := osGetBool("PERSISTENCE_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kafkaEnabled, err := osGetBool("KAFKA_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	producerBufferSize, err := osGetInt("KAFKA_PRODUCER_BUFFER_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if producerBufferSize == 0 {
		producerBufferSize = defaultNotificationBufferSize
	}

	notificationTimeout, err := osGetEnvDuration("KAFKA_HANDLER_NOTIFICATION_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Dispatch: Dispatch{
			MaxOrderQuantity: maxOrderQuantity,
			OrderTimeout:     orderTimeout,
		},
		Tasks: Tasks{
			OrderTimeoutSweepInterval: sweepInterval,
		},
		Persistence: Persistence{
			Enabled:          persistenceEnabled,
			SnapshotSchedule: os.Getenv("PERSISTENCE_SNAPSHOT_SCHEDULE"),
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
			GRPCHealthPort:   os.Getenv("GRPC_HEALTH_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Kafka: Kafka{
			Enabled:         kafkaEnabled,
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Producer: Producer{
				BufferSize: producerBufferSize,
			},
			Handlers: KafkaHandlers{
				NotificationDelivered: NotificationDelivered{
					ProcessTimeout: notificationTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Dispatch.MaxOrderQuantity <= 0 {
		return errors.New("DISPATCH_MAX_ORDER_QUANTITY is required and must be positive")
	}
	if cfg.Dispatch.OrderTimeout <= time.Duration(0) {
		return errors.New("DISPATCH_ORDER_TIMEOUT is required")
	}
	if cfg.Tasks.OrderTimeoutSweepInterval <= time.Duration(0) {
		return errors.New("BACKGROUND_ORDER_TIMEOUT_SWEEP_INTERVAL is required")
	}

	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Persistence.Enabled {
		if err := validateDatabase(&cfg.Database); err != nil {
			return err
		}
		if cfg.Persistence.SnapshotSchedule == "" {
			return errors.New("PERSISTENCE_SNAPSHOT_SCHEDULE is required when persistence is enabled")
		}
	}

	if cfg.Kafka.Enabled {
		if err := validateKafka(&cfg.Kafka); err != nil {
			return err
		}
	}

	return nil
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateKafka(k *Kafka) error {
	if len(k.BrokerList()) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if k.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if k.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if k.Handlers.NotificationDelivered.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_NOTIFICATION_PROCESS_TIMEOUT is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
