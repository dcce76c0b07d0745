// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/metrics"
)

// queryBreaker stops sending queries to a database that keeps failing.
// While open, every query fails fast with ErrUnavailable and the dashboard
// marks each chart as failed instead of waiting on timeouts.
type queryBreaker struct {
	cb   *gobreaker.CircuitBreaker[*Result]
	name string
}

func newQueryBreaker(name string, maxFailures uint32, timeout time.Duration) *queryBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= maxFailures
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
		// Cancelled requests do not count as failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &queryBreaker{cb: cb, name: name}
}

func (b *queryBreaker) execute(fn func() (*Result, error)) (*Result, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

func (b *queryBreaker) state() gobreaker.State {
	return b.cb.State()
}

// BreakerState reports the query circuit breaker state: closed, half-open or open.
func (db *DB) BreakerState() string {
	return stateToString(db.breaker.state())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
