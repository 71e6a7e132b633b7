package system

import (
	"runtime"
	"testing"
)

func TestRecommendedWorkers(t *testing.T) {
	auto := RecommendedWorkers(0)
	if auto < 1 {
		t.Fatalf("auto pick %d, want >= 1", auto)
	}
	if auto > runtime.NumCPU() {
		t.Errorf("auto pick %d exceeds NumCPU %d", auto, runtime.NumCPU())
	}
	t.Logf("auto worker count: %d", auto)

	if got := RecommendedWorkers(1); got != 1 {
		t.Errorf("RecommendedWorkers(1) = %d, want 1", got)
	}

	// A modest request at or under the limit is honored as-is.
	if auto >= 2 {
		if got := RecommendedWorkers(2); got != 2 {
			t.Errorf("RecommendedWorkers(2) = %d, want 2", got)
		}
	}

	// Absurd requests clamp to the auto pick instead of oversubscribing.
	if got := RecommendedWorkers(100000); got != auto {
		t.Errorf("RecommendedWorkers(100000) = %d, want clamp to %d", got, auto)
	}
	if got := RecommendedWorkers(-5); got != auto {
		t.Errorf("RecommendedWorkers(-5) = %d, want %d", got, auto)
	}
}
