package retrier

import (
	"context"
	"time"
)

const (
	DefaultRandomization = 0.5
	DefaultMultiplier    = 2
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

// ShouldRetryFunc решает, стоит ли повторять попытку после err.
type ShouldRetryFunc func(error) bool

// OnRetryFunc вызывается перед паузой очередного повтора.
type OnRetryFunc func(err error, wait time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// Ноль снимает ограничение, попытки идут до отмены ctx.
	MaxElapsedTime time.Duration
	Randomization  float64
	Multiplier     float64

	// nil повторяет все ошибки.
	ShouldRetry ShouldRetryFunc
	OnRetry     OnRetryFunc
}

// Exponential возвращает конфиг с джиттером 0.5 и удвоением паузы.
func Exponential(initial, max, elapsed time.Duration) Config {
	return Config{
		InitialInterval: initial,
		MaxInterval:     max,
		MaxElapsedTime:  elapsed,
		Randomization:   DefaultRandomization,
		Multiplier:      DefaultMultiplier,
	}
}

func (c Config) WithShouldRetry(fn ShouldRetryFunc) Config {
	c.ShouldRetry = fn
	return c
}

func (c Config) WithOnRetry(fn OnRetryFunc) Config {
	c.OnRetry = fn
	return c
}
