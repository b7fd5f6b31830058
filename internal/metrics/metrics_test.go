package metrics_test

import (
	"sync"
	"testing"

	"github.com/openbobs/gateway/internal/metrics"
)

func TestRegistrySeedsCountersToZero(t *testing.T) {
	r := metrics.NewRegistry(metrics.ChatRequests, metrics.SearchRequests)
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d counters, want 2", len(snap))
	}
	if snap[metrics.ChatRequests] != 0 || snap[metrics.SearchRequests] != 0 {
		t.Errorf("counters not zero: %v", snap)
	}
}

func TestRegistryConcurrentIncrementsLoseNothing(t *testing.T) {
	const (
		workers = 16
		perWork = 500
	)
	r := metrics.NewRegistry(metrics.ChatRequests)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWork {
				r.Increment(metrics.ChatRequests)
			}
		}()
	}
	wg.Wait()

	if got := r.Snapshot()[metrics.ChatRequests]; got != workers*perWork {
		t.Errorf("counter = %d, want %d", got, workers*perWork)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := metrics.NewRegistry(metrics.HealthChecks)
	snap := r.Snapshot()
	snap[metrics.HealthChecks] = 99

	if got := r.Snapshot()[metrics.HealthChecks]; got != 0 {
		t.Errorf("mutating a snapshot leaked into the registry: %d", got)
	}
}
