package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiterDisabled(t *testing.T) {
	l := New(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for range 100 {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}

func TestLimiterNegativeDisables(t *testing.T) {
	l := New(-1)
	for range 10 {
		if !l.Allow() {
			t.Fatal("Allow() = false, want true")
		}
	}
}

func TestLimiterPaces(t *testing.T) {
	l := New(1)

	if !l.Allow() {
		t.Fatal("first Allow() = false, want true")
	}
	if l.Allow() {
		t.Fatal("second immediate Allow() = true, want false")
	}
}

func TestLimiterWaitCanceled(t *testing.T) {
	l := New(0.001)
	if !l.Allow() {
		t.Fatal("first Allow() = false, want true")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Wait(ctx); err == nil {
		t.Fatal("Wait() error = nil, want context error")
	}
}
