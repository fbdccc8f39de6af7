package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShouldStopWithoutLockTimeout(t *testing.T) {
	stop, reason := shouldStop(context.Background(), 0, time.Now())
	if !stop || reason != "no-timeout" {
		t.Fatalf("expected immediate stop without lock timeout, got %v %q", stop, reason)
	}
}

func TestShouldStopOnContextAndDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if stop, reason := shouldStop(ctx, time.Second, time.Now()); !stop || reason != "context" {
		t.Fatalf("expected context stop, got %v %q", stop, reason)
	}
	start := time.Now().Add(-time.Second)
	if stop, reason := shouldStop(context.Background(), 500*time.Millisecond, start); !stop || reason != "timeout" {
		t.Fatalf("expected timeout stop, got %v %q", stop, reason)
	}
	if stop, _ := shouldStop(context.Background(), time.Minute, time.Now()); stop {
		t.Fatalf("expected retry inside lock window")
	}
}

func TestRetryDelayIsCapped(t *testing.T) {
	if got := retryDelay(0); got != 40*time.Millisecond {
		t.Fatalf("unexpected first delay %v", got)
	}
	if got := retryDelay(100); got != 300*time.Millisecond {
		t.Fatalf("expected capped delay, got %v", got)
	}
}

func TestIsSQLiteBusyIgnoresOtherErrors(t *testing.T) {
	if isSQLiteBusy(errors.New("database is locked")) {
		t.Fatalf("plain errors must not be retried")
	}
	if isSQLiteBusy(nil) {
		t.Fatalf("nil is not busy")
	}
}
