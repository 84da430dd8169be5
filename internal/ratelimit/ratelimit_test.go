package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("api.spotify.com") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("first key should be exhausted")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("second key should have its own bucket")
	}
}

func TestKeyedRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := New(0.1, 1)

	// Drain the bucket, then a Wait with a short deadline must fail.
	if !rl.Allow("host") {
		t.Fatal("initial token should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "host"); err == nil {
		t.Error("Wait() should fail when context expires before a token is available")
	}
}
