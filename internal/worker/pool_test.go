package worker_test

import (
	"strconv"
	"testing"

	"github.com/pdf2quiz/backend/internal/worker"
)

func TestPool_RunsAllJobs(t *testing.T) {
	const n = 20
	pool := worker.NewPool[int](3, n)

	for i := 0; i < n; i++ {
		pool.Submit(strconv.Itoa(i), func() int { return i * i })
	}
	pool.Close()

	seen := make(map[string]int)
	for r := range pool.Results() {
		seen[r.JobID] = r.Output
	}

	if len(seen) != n {
		t.Fatalf("expected %d results, got %d", n, len(seen))
	}
	for i := 0; i < n; i++ {
		if seen[strconv.Itoa(i)] != i*i {
			t.Errorf("job %d: expected %d, got %d", i, i*i, seen[strconv.Itoa(i)])
		}
	}
}

func TestPool_CloseWithoutJobs(t *testing.T) {
	pool := worker.NewPool[string](2, 0)
	pool.Close()
	pool.Close()

	for range pool.Results() {
		t.Error("expected no results")
	}
}
