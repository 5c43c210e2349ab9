package concurrent

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_PreservesOrder(t *testing.T) {
	runner := NewRunner[int, int](RunnerConfig{})
	items := []int{5, 1, 4, 2, 3}

	got := runner.Run(context.Background(), items, func(_ context.Context, n int) int {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10
	})

	assert.Equal(t, []int{50, 10, 40, 20, 30}, got)
}

func TestRun_Empty(t *testing.T) {
	runner := NewRunner[string, string](RunnerConfig{})

	got := runner.Run(context.Background(), nil, func(_ context.Context, s string) string { return s })

	assert.Empty(t, got)
}

func TestRun_RespectsMaxConcurrency(t *testing.T) {
	runner := NewRunner[int, int](RunnerConfig{MaxConcurrency: 2})

	var active, peak int32
	items := make([]int, 8)
	runner.Run(context.Background(), items, func(_ context.Context, _ int) int {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return 0
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}
