/*
Package pipeline provides a deferred, chainable stage builder over tables.

Stage methods record transformations without running them; Run executes the
recorded stages in order against the source table. Each builder method
returns a new builder, so a partially-built pipeline can be forked and
reused. The first failing stage aborts the run and its error surfaces to the
caller untouched.

	result, err := pipeline.From(penguins).
		Filter(frame.Eq("island", value.NewString("Dream"))).
		GroupBy("species").
		Aggregate(agg.Spec{Out: "mean_mass", In: "mass", Fn: agg.Mean}).
		Run(ctx)
*/
package pipeline

import (
	"context"
	"time"

	"github.com/allisonhorst/observable-translations/agg"
	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/frame"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/utils"
	"github.com/allisonhorst/observable-translations/value"
)

type stage struct {
	name string
	run  func(*frame.Table) (*frame.Table, error)
}

// Pipeline is an immutable chain of stages over a source table.
type Pipeline struct {
	source *frame.Table
	stages []stage
}

// From starts a pipeline over the given table.
func From(t *frame.Table) *Pipeline {
	return &Pipeline{source: t}
}

// with returns a copy of p with one more stage; the receiver is unchanged.
func (p *Pipeline) with(name string, run func(*frame.Table) (*frame.Table, error)) *Pipeline {
	stages := make([]stage, len(p.stages), len(p.stages)+1)
	copy(stages, p.stages)
	return &Pipeline{
		source: p.source,
		stages: append(stages, stage{name: name, run: run}),
	}
}

// Filter appends a filter stage.
func (p *Pipeline) Filter(pred frame.Predicate) *Pipeline {
	return p.with("filter", func(t *frame.Table) (*frame.Table, error) {
		return t.Filter(pred)
	})
}

// Select appends a column projection stage.
func (p *Pipeline) Select(names ...string) *Pipeline {
	return p.with("select", func(t *frame.Table) (*frame.Table, error) {
		return t.Select(names...)
	})
}

// GroupBy with Aggregate appends a group-aggregate stage. GroupBy alone does
// nothing; the grouping takes effect through the next Aggregate call.
func (p *Pipeline) GroupBy(keys ...string) *GroupedPipeline {
	return &GroupedPipeline{p: p, keys: keys}
}

// GroupedPipeline is the grouped intermediate of a pipeline; only Aggregate
// resolves it back to a table pipeline.
type GroupedPipeline struct {
	p    *Pipeline
	keys []string
}

// Aggregate appends the group-aggregate stage over the recorded keys.
func (g *GroupedPipeline) Aggregate(specs ...agg.Spec) *Pipeline {
	keys := g.keys
	return g.p.with("aggregate", func(t *frame.Table) (*frame.Table, error) {
		grouped, err := t.GroupBy(keys...)
		if err != nil {
			return nil, err
		}
		return grouped.Aggregate(specs...)
	})
}

// Derive appends a computed-column stage.
func (p *Pipeline) Derive(name string, typ types.Column, fn func(frame.Row) value.Scalar) *Pipeline {
	return p.with("derive", func(t *frame.Table) (*frame.Table, error) {
		return t.Derive(name, typ, fn)
	})
}

// OrderBy appends a sort stage.
func (p *Pipeline) OrderBy(specs ...frame.SortSpec) *Pipeline {
	return p.with("orderby", func(t *frame.Table) (*frame.Table, error) {
		return t.OrderBy(specs...)
	})
}

// Head appends a first-n-rows stage.
func (p *Pipeline) Head(n int) *Pipeline {
	return p.with("head", func(t *frame.Table) (*frame.Table, error) {
		return t.Head(n)
	})
}

// Tail appends a last-n-rows stage.
func (p *Pipeline) Tail(n int) *Pipeline {
	return p.with("tail", func(t *frame.Table) (*frame.Table, error) {
		return t.Tail(n)
	})
}

// Distinct appends a unique-rows stage.
func (p *Pipeline) Distinct(cols ...string) *Pipeline {
	return p.with("distinct", func(t *frame.Table) (*frame.Table, error) {
		return t.Distinct(cols...)
	})
}

// Run executes the stages in order. Context cancellation is checked between
// stages; a cancelled run returns a KCancelled error naming the stage that
// would have run next.
func (p *Pipeline) Run(ctx context.Context) (*frame.Table, error) {
	if p.source == nil {
		return nil, errors.ES(errors.OpPipeline, errors.KClientArgs, "pipeline has no source table")
	}

	logger := utils.Ctx(ctx)
	t := p.source
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, errors.ES(errors.OpPipeline, errors.KCancelled,
				"pipeline cancelled before stage %d (%s): %s", i, s.name, err)
		}

		start := time.Now()
		in := t.RowCount()
		next, err := s.run(t)
		if err != nil {
			logger.Debug().
				Str("stage", s.name).
				Int("stageIndex", i).
				Err(err).
				Msg("pipeline stage failed")
			return nil, err
		}
		logger.Debug().
			Str("stage", s.name).
			Int("stageIndex", i).
			Int("rowsIn", in).
			Int("rowsOut", next.RowCount()).
			Dur("took", time.Since(start)).
			Msg("pipeline stage done")
		t = next
	}
	return t, nil
}
