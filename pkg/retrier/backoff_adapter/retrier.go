package backoff_adapter

import (
	"context"

	"dispatcher/pkg/retrier"

	"github.com/cenkalti/backoff/v4"
)

var _ retrier.Retrier = (*Retrier)(nil)

type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

func (r *Retrier) newBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	return backoff.WithContext(b, ctx)
}

// ExecuteWithContext повторяет fn с экспоненциальной паузой, пока она
// не вернет nil, не истечет MaxElapsedTime или не отменится ctx.
// Ошибки, которые ShouldRetry отверг, возвращаются сразу.
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	operation := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if r.config.OnRetry != nil {
		notify = backoff.Notify(r.config.OnRetry)
	}

	return backoff.RetryNotify(operation, r.newBackOff(ctx), notify)
}
