package ratelimit

import (
	"context"
	"testing"
	"time"
)

// TestWaitDisabled validates that a zero interval and a nil limiter never block
func TestWaitDisabled(t *testing.T) {
	ctx := context.Background()
	var nilLimiter *Limiter
	if err := nilLimiter.Wait(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("nil limiter returned error: %v", err)
	}

	l := New(0)
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx, "10.0.0.1"); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled limiter waited %v", elapsed)
	}
}

// TestWaitSpacesSameDevice validates that two calls to one device are spaced by the interval
func TestWaitSpacesSameDevice(t *testing.T) {
	ctx := context.Background()
	l := New(50 * time.Millisecond)

	start := time.Now()
	if err := l.Wait(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}
	if err := l.Wait(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("second Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 45*time.Millisecond {
		t.Errorf("expected calls to be spaced by ~50ms, got %v", elapsed)
	}
}

// TestWaitIndependentDevices validates that different devices do not wait on each other
func TestWaitIndependentDevices(t *testing.T) {
	ctx := context.Background()
	l := New(time.Second)

	start := time.Now()
	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if err := l.Wait(ctx, ip); err != nil {
			t.Fatalf("Wait(%s) failed: %v", ip, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("independent devices waited %v", elapsed)
	}
}

// TestWaitCanceled validates that a canceled context aborts the wait
func TestWaitCanceled(t *testing.T) {
	l := New(time.Hour)
	if err := l.Wait(context.Background(), "10.0.0.1"); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "10.0.0.1"); err == nil {
		t.Fatal("expected context error, got nil")
	}
}
