package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ppiankov/causalia/internal/cache"
	"github.com/ppiankov/causalia/internal/conditional"
	"github.com/ppiankov/causalia/internal/edge"
	"github.com/ppiankov/causalia/internal/filter"
	"github.com/ppiankov/causalia/internal/ground"
	"github.com/ppiankov/causalia/internal/kde"
	"github.com/ppiankov/causalia/internal/logging"
	"github.com/ppiankov/causalia/internal/model"
	"github.com/ppiankov/causalia/internal/worker"
)

// Pipeline orchestrates filtering, edge aggregation and per-edge fitting
type Pipeline struct {
	evaluator *ground.Evaluator
	cache     cache.Cache
	rule      kde.Rule
	logger    *logging.Logger
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *logging.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	rule, err := kde.ParseRule(cfg.Density.Bandwidth)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}

	c := cache.New(cfg.Cache.Enabled, cfg.Cache.TTL, cfg.Cache.CleanupInterval)

	return &Pipeline{
		evaluator: ground.NewEvaluator(cfg.Grounding, c),
		cache:     c,
		rule:      rule,
		logger:    logger,
		config:    cfg,
	}, nil
}

// Selection is the outcome of filtering and aggregation, before fitting
type Selection struct {
	Statements []*model.Statement // Well-grounded, simulable statements
	Concepts   []string           // Canonical names, sorted
	Edges      []model.Edge       // Non-empty edges in sorted key order
	Stats      model.CorpusStats
}

// Select filters the corpus and aggregates the survivors into edges. When
// concepts is non-empty only statements mentioning one of them are kept.
func (p *Pipeline) Select(sts []*model.Statement, concepts []string) *Selection {
	ontology := p.evaluator.Ontology()
	sel := &Selection{}
	sel.Stats.Total = len(sts)

	if len(concepts) > 0 {
		sts = filter.Relevant(sts, p.evaluator, concepts)
		sel.Stats.Relevant = len(sts)
	}

	sel.Stats.Modelable = len(filter.SelectModelable(sts))
	sel.Statements = filter.Filter(sts, p.evaluator)
	sel.Stats.Filtered = len(sel.Statements)

	sel.Concepts = edge.ConceptNames(sel.Statements, ontology)
	sel.Edges = edge.BuildNonEmpty(sel.Statements, ontology)
	sel.Stats.Edges = len(sel.Edges)

	p.logger.Debug("statements selected",
		"total", sel.Stats.Total,
		"modelable", sel.Stats.Modelable,
		"filtered", sel.Stats.Filtered,
		"edges", sel.Stats.Edges,
		"ontology", ontology,
		"cutoff", p.evaluator.Cutoff(),
		"cached", p.cache.Len(),
	)
	return sel
}

// Background returns the supplied sample, or derives one from the table
func (p *Pipeline) Background(table conditional.ResponseTable, supplied []float64) ([]float64, error) {
	if len(supplied) > 0 {
		return supplied, nil
	}
	bc := p.config.Background
	src := rand.NewPCG(bc.Seed, bc.Seed)
	bg, err := conditional.BackgroundSample(table, bc.PerAdjective, bc.Samples, src, p.rule)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("background sample derived", "adjectives", len(table), "samples", len(bg))
	return bg, nil
}

// Assemble runs the full flow over loaded inputs and builds the report
func (p *Pipeline) Assemble(ctx context.Context, in *Inputs, concepts []string) (*model.Report, error) {
	sel := p.Select(in.Statements, concepts)

	table := in.Table
	if table == nil {
		table = conditional.ResponseTable{}
	}
	background, err := p.Background(table, in.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	processor := worker.NewFitProcessor(table, background, p.rule, p.config.Concurrency.Workers)
	results := processor.ProcessEdges(ctx, sel.Edges)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fit edges: %w", err)
	}

	report := &model.Report{
		GeneratedAt: time.Now().UTC(),
		Ontology:    p.evaluator.Ontology(),
		Cutoff:      p.evaluator.Cutoff(),
		Bandwidth:   string(p.rule),
		Corpus:      sel.Stats,
		Concepts:    sel.Concepts,
		Edges:       make([]model.EdgeReport, 0, len(results)),
	}

	for i, r := range results {
		er := p.edgeReport(r, uint64(i))
		if r.Error != nil {
			if p.config.Fit.FailOnDegenerate {
				return nil, fmt.Errorf("fit: %w", r.Error)
			}
			p.logger.Warn("edge skipped", "edge", r.Edge.Key().String(), "error", r.Error)
			report.Corpus.Skipped++
		} else {
			report.Corpus.Fitted++
		}
		report.Edges = append(report.Edges, er)
	}

	p.logger.Info("assembly complete",
		"edges", report.Corpus.Edges,
		"fitted", report.Corpus.Fitted,
		"skipped", report.Corpus.Skipped,
	)
	return report, nil
}

func (p *Pipeline) edgeReport(r *worker.FitResult, stream uint64) model.EdgeReport {
	er := model.EdgeReport{
		Source:       r.Edge.Source,
		Target:       r.Edge.Target,
		SourceLabel:  ground.DisplayName(r.Edge.Source),
		TargetLabel:  ground.DisplayName(r.Edge.Target),
		StatementIDs: r.Edge.StatementIDs(),
	}
	if r.Error != nil {
		er.Error = r.Error.Error()
		return er
	}

	d := r.Distribution
	er.Angles = d.Angles
	er.Mirrored = d.Mirrored
	er.Bandwidth = d.Bandwidth()

	if n := p.config.Density.GridPoints; n > 0 {
		thetas, densities := d.Grid(n)
		er.Density = make([]model.DensityPoint, n)
		for i := range thetas {
			er.Density[i] = model.DensityPoint{Theta: thetas[i], Density: densities[i]}
		}
	}

	// One PCG stream per edge, indexed by edge position
	if n := p.config.Output.Samples; n > 0 {
		er.Samples = d.Sample(n, rand.NewPCG(p.config.Output.Seed, stream))
	}
	return er
}
