// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/clickstream/internal/metrics"
)

func TestQueryBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := newQueryBreaker("test-opens", 2, time.Minute)
	boom := errors.New("boom")
	fail := func() (*Result, error) { return nil, boom }

	for i := 0; i < 2; i++ {
		if _, err := b.execute(fail); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: err = %v, want boom", i, err)
		}
	}

	if b.state() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", stateToString(b.state()))
	}

	_, err := b.execute(func() (*Result, error) { return &Result{}, nil })
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-opens", "rejected")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}

func TestQueryBreaker_CancellationIsNotAFailure(t *testing.T) {
	b := newQueryBreaker("test-cancel", 1, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := b.execute(func() (*Result, error) { return nil, context.Canceled })
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	}
	if b.state() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", stateToString(b.state()))
	}
}

func TestQueryBreaker_Defaults(t *testing.T) {
	b := newQueryBreaker("test-defaults", 0, 0)
	res, err := b.execute(func() (*Result, error) { return &Result{Columns: []string{"x"}}, nil })
	if err != nil || res.ColumnIndex("x") != 0 {
		t.Errorf("execute = %v, %v", res, err)
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v", tt.state, got)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %q", tt.state, got)
		}
	}
}
