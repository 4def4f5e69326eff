package utils

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParallelMapRunsEverything(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	var done int64
	errs := ParallelMap(items, 8, func(item int) error {
		atomic.AddInt64(&done, 1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(50), done)
}

func TestParallelMapRespectsConcurrencyLimit(t *testing.T) {
	const limit = 4

	var current, peak int64
	items := make([]int, 40)

	ParallelMap(items, limit, func(item int) error {
		n := atomic.AddInt64(&current, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return nil
	})

	assert.LessOrEqual(t, peak, int64(limit))
}

func TestParallelMapCollectsErrorsWithoutAborting(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	failing := errors.New("odd one out")

	var done int64
	errs := ParallelMap(items, 2, func(item int) error {
		atomic.AddInt64(&done, 1)
		if item%2 == 1 {
			return failing
		}
		return nil
	})

	assert.Len(t, errs, 3)
	assert.Equal(t, int64(6), done, "failures must not stop the rest of the batch")
}

func TestParallelMapRecoversPanics(t *testing.T) {
	errs := ParallelMap([]int{1, 2, 3}, 2, func(item int) error {
		if item == 2 {
			panic("boom")
		}
		return nil
	})

	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "panic")
}

func TestParallelMapZeroLimit(t *testing.T) {
	errs := ParallelMap([]int{1, 2, 3}, 0, func(item int) error { return nil })
	assert.Empty(t, errs)
}
