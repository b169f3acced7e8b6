package worker

import (
	"context"
	"runtime"

	"github.com/ppiankov/causalia/internal/conditional"
	"github.com/ppiankov/causalia/internal/kde"
	"github.com/ppiankov/causalia/internal/model"
)

// FitJob fits the conditional distribution of one edge
type FitJob struct {
	Edge       model.Edge
	Table      model.ResponseLookup
	Background []float64
	Rule       kde.Rule
}

// Execute runs the fit unless the context is already done
func (j *FitJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &FitResult{Edge: j.Edge, Error: err}
	}
	d, err := conditional.Construct(j.Edge, j.Table, j.Background, j.Rule)
	return &FitResult{Edge: j.Edge, Distribution: d, Error: err}
}

// FitResult is the outcome of a FitJob
type FitResult struct {
	Edge         model.Edge
	Distribution *conditional.Distribution
	Error        error
}

// GetError returns the fit error
func (r *FitResult) GetError() error {
	return r.Error
}

// FitProcessor fits many edges concurrently
type FitProcessor struct {
	table       model.ResponseLookup
	background  []float64
	rule        kde.Rule
	concurrency int
}

// NewFitProcessor creates a processor sharing one table and background sample.
// A non-positive concurrency uses one worker per CPU.
func NewFitProcessor(table model.ResponseLookup, background []float64, rule kde.Rule, concurrency int) *FitProcessor {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &FitProcessor{
		table:       table,
		background:  background,
		rule:        rule,
		concurrency: concurrency,
	}
}

// ProcessEdges fits every edge and returns results in edge order. Edges left
// unfitted by cancellation carry ctx.Err().
func (f *FitProcessor) ProcessEdges(ctx context.Context, edges []model.Edge) []*FitResult {
	if len(edges) == 0 {
		return []*FitResult{}
	}

	jobs := make([]Job, len(edges))
	for i, e := range edges {
		jobs[i] = &FitJob{
			Edge:       e,
			Table:      f.table,
			Background: f.background,
			Rule:       f.rule,
		}
	}

	pool := NewPool(ctx, f.concurrency)
	results := pool.Run(jobs)

	out := make([]*FitResult, len(edges))
	for i, r := range results {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &FitResult{Edge: edges[i], Error: err}
			continue
		}
		out[i] = r.(*FitResult)
	}
	return out
}
