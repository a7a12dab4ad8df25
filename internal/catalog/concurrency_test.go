package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapWithLimitPreservesOrder(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	// Earlier items take longer, so completion order is the reverse of
	// submission order.
	results, err := mapWithLimit(context.Background(), items, 2, func(_ context.Context, i int) (string, error) {
		time.Sleep(time.Duration(len(items)-i) * 5 * time.Millisecond)
		return fmt.Sprintf("r%d", i), nil
	})
	if err != nil {
		t.Fatalf("mapWithLimit() unexpected error: %v", err)
	}

	want := []string{"r0", "r1", "r2", "r3", "r4"}
	if len(results) != len(want) {
		t.Fatalf("mapWithLimit() returned %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %v, want %v", i, results[i], want[i])
		}
	}
}

func TestMapWithLimitRespectsConcurrencyCap(t *testing.T) {
	const limit = 2

	var inFlight, maxInFlight atomic.Int64
	items := make([]int, 20)

	_, err := mapWithLimit(context.Background(), items, limit, func(_ context.Context, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			max := maxInFlight.Load()
			if n <= max || maxInFlight.CompareAndSwap(max, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("mapWithLimit() unexpected error: %v", err)
	}

	if got := maxInFlight.Load(); got > limit {
		t.Errorf("observed %d concurrent workers, limit is %d", got, limit)
	}
}

func TestMapWithLimitFailsWhole(t *testing.T) {
	boom := errors.New("boom")
	items := []int{0, 1, 2, 3, 4}

	_, err := mapWithLimit(context.Background(), items, 2, func(_ context.Context, i int) (int, error) {
		if i == 3 {
			return 0, boom
		}
		return i, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("mapWithLimit() error = %v, want %v", err, boom)
	}
}

func TestMapWithLimitEmptyInput(t *testing.T) {
	results, err := mapWithLimit(context.Background(), nil, 2, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	if err != nil {
		t.Fatalf("mapWithLimit() unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("mapWithLimit() = %v, want empty", results)
	}
}
