// Package health probes the deployed endpoints after launch.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAttempts = 3
	defaultDelay    = 5 * time.Second
)

// Service probes URLs until they answer or attempts run out. Probes for
// different URLs run concurrently; the panel container may take a few
// seconds to boot, hence the retries.
type Service struct {
	client   *http.Client
	logger   *zap.Logger
	attempts int
	delay    time.Duration
}

// New returns new Service with the default retry policy.
func New(client *http.Client, logger *zap.Logger) Service {
	return Service{
		client:   client,
		logger:   logger,
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
}

// NewWithRetries returns new Service with an explicit retry policy.
func NewWithRetries(client *http.Client, logger *zap.Logger, attempts int, delay time.Duration) Service {
	return Service{
		client:   client,
		logger:   logger,
		attempts: attempts,
		delay:    delay,
	}
}

// Wait probes every URL until each answers with a non-5xx status.
func (s Service) Wait(ctx context.Context, urls ...string) error {
	gr, ctx := errgroup.WithContext(ctx)

	for _, url := range urls {
		url := url
		gr.Go(func() error {
			return s.waitOne(ctx, url)
		})
	}

	return gr.Wait()
}

func (s Service) waitOne(ctx context.Context, url string) error {
	var lastErr error

	for attempt := 1; attempt <= s.attempts; attempt++ {
		if err := s.probe(ctx, url); err != nil {
			lastErr = err
			s.logger.Warn("endpoint not ready",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.delay):
			}
			continue
		}

		s.logger.Info("endpoint is up", zap.String("url", url))
		return nil
	}

	return fmt.Errorf("endpoint %s did not come up after %d attempts: %w", url, s.attempts, lastErr)
}

func (s Service) probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unexpected status %d", resp.StatusCode) //nolint:goerr113
	}

	return nil
}
