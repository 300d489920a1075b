package auth

import (
	"runtime"
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, time.Minute)
	t.Cleanup(rl.Stop)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("attempt beyond the limit should be blocked")
	}
	if rl.GetBlockedUntil("10.0.0.1").IsZero() {
		t.Error("expected a block expiry time")
	}

	// Other clients are unaffected.
	if !rl.Allow("10.0.0.2") {
		t.Error("a different key should not be blocked")
	}
}

func TestRateLimiterRecordSuccessResets(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, time.Minute)
	t.Cleanup(rl.Stop)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	rl.RecordSuccess("10.0.0.1")

	if !rl.Allow("10.0.0.1") {
		t.Error("attempts should reset after a successful login")
	}
}

func TestRateLimiterStop(t *testing.T) {
	before := runtime.NumGoroutine()

	rl := NewRateLimiter(3, time.Minute, time.Minute)
	rl.Stop()
	rl.Stop() // idempotent

	// The cleanup goroutine should exit once stopped.
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before {
		t.Errorf("goroutine count = %d, want at most %d", n, before)
	}

	// The limiter itself keeps working after Stop.
	if !rl.Allow("10.0.0.1") {
		t.Error("Allow should still work after Stop")
	}
}
