package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/causalia/internal/conditional"
	"github.com/ppiankov/causalia/internal/kde"
	"github.com/ppiankov/causalia/internal/model"
)

// stepResult reports which job produced it
type stepResult struct {
	index int
	err   error
}

func (r *stepResult) GetError() error { return r.err }

// stepJob sleeps, optionally fails, and tracks how many jobs run at once
type stepJob struct {
	index   int
	delay   time.Duration
	err     error
	running *int32
	peak    *int32
}

func (j *stepJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		n := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			p := atomic.LoadInt32(j.peak)
			if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
				break
			}
		}
	}
	select {
	case <-time.After(j.delay):
	case <-ctx.Done():
		return &stepResult{index: j.index, err: ctx.Err()}
	}
	return &stepResult{index: j.index, err: j.err}
}

func TestNewPool_Workers(t *testing.T) {
	tests := map[int]int{4: 4, 1: 1, 0: 1, -3: 1}
	for in, want := range tests {
		if got := NewPool(context.Background(), in).workers; got != want {
			t.Errorf("NewPool(%d) workers = %d, want %d", in, got, want)
		}
	}
}

func TestPool_RunPreservesOrder(t *testing.T) {
	total := 20
	jobs := make([]Job, total)
	for i := range jobs {
		// Later jobs finish first
		jobs[i] = &stepJob{index: i, delay: time.Duration(total-i) * time.Millisecond}
	}

	results := NewPool(context.Background(), 4).Run(jobs)
	if len(results) != total {
		t.Fatalf("expected %d results, got %d", total, len(results))
	}
	for i, r := range results {
		if got := r.(*stepResult).index; got != i {
			t.Errorf("result %d holds job %d", i, got)
		}
	}
}

func TestPool_RunBoundsConcurrency(t *testing.T) {
	var running, peak int32
	workers := 3

	jobs := make([]Job, 24)
	for i := range jobs {
		jobs[i] = &stepJob{index: i, delay: 5 * time.Millisecond, running: &running, peak: &peak}
	}
	NewPool(context.Background(), workers).Run(jobs)

	if p := atomic.LoadInt32(&peak); p > int32(workers) {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_RunKeepsErrorsWithTheirJob(t *testing.T) {
	failure := errors.New("degenerate")
	jobs := []Job{
		&stepJob{index: 0},
		&stepJob{index: 1, err: failure},
		&stepJob{index: 2},
	}

	results := NewPool(context.Background(), 2).Run(jobs)
	for i, r := range results {
		wantErr := i == 1
		if (r.GetError() != nil) != wantErr {
			t.Errorf("job %d: error = %v, want error %v", i, r.GetError(), wantErr)
		}
	}
	if !errors.Is(results[1].GetError(), failure) {
		t.Errorf("expected job failure, got %v", results[1].GetError())
	}
}

func TestPool_CollectorDrainsWithoutWait(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	// Far more than the job and result buffers hold
	count := 50
	submitted := make(chan struct{})
	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&stepJob{index: i})
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked before Wait was called")
	}

	if results := pool.Wait(); len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
}

func TestPool_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{&stepJob{index: 0}, &stepJob{index: 1}}
	results := NewPool(ctx, 1).Run(jobs)

	if len(results) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(results))
	}
	for i, r := range results {
		if r != nil {
			t.Errorf("job %d ran on a cancelled pool", i)
		}
	}
}

func TestPool_ShutdownReleasesWait(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()
	pool.Submit(&stepJob{delay: time.Minute})

	pool.Shutdown()
	if pool.Submit(&stepJob{}) {
		t.Error("Submit accepted a job after Shutdown")
	}

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked after Shutdown")
	}
}

func TestPool_RunFitJobs(t *testing.T) {
	table := conditional.ResponseTable{"sharply": {2, 3, 4}}
	fit := func(e model.Edge) Job {
		return &FitJob{Edge: e, Table: table, Background: []float64{0.5, 1}, Rule: kde.Scott}
	}
	same := &model.Statement{
		ID:        "s1",
		SubjDelta: model.Delta{Polarity: model.PolarityIncrease, Adjectives: model.Adjectives{"sharply"}},
		ObjDelta:  model.Delta{Polarity: model.PolarityIncrease},
	}

	results := NewPool(context.Background(), 2).Run([]Job{
		fit(model.Edge{Source: "rainfall", Target: "flooding", Statements: []*model.Statement{same}}),
		fit(model.Edge{Source: "rainfall", Target: "drought"}),
	})

	first := results[0].(*FitResult)
	if first.Error != nil || first.Distribution == nil {
		t.Fatalf("rainfall -> flooding: unexpected error %v", first.Error)
	}
	if first.Distribution.Angles != 12 {
		t.Errorf("expected 3x2 angles doubled to 12, got %d", first.Distribution.Angles)
	}
	if !errors.Is(results[1].GetError(), conditional.ErrEmptyEdge) {
		t.Errorf("rainfall -> drought: expected ErrEmptyEdge, got %v", results[1].GetError())
	}
}

func TestResultCollector_ResultsIsSnapshot(t *testing.T) {
	c := NewResultCollector()
	c.Add(&stepResult{index: 0})

	snapshot := c.Results()
	c.Add(&stepResult{index: 1})

	if len(snapshot) != 1 {
		t.Errorf("snapshot changed after Add: %d results", len(snapshot))
	}
	if len(c.Results()) != 2 {
		t.Errorf("expected 2 results, got %d", len(c.Results()))
	}
}
