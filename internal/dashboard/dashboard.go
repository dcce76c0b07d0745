// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package dashboard dispatches chart requests.

For each chart in the registry the dispatcher resolves the filter set into
the chart's parameter set, executes the chart's query template and renders
the result. A render pass is sequential. A failing query marks only its own
chart as failed; the pass always runs to completion.
*/
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/clickstream/internal/database"
	"github.com/tomtom215/clickstream/internal/filters"
	"github.com/tomtom215/clickstream/internal/logging"
	"github.com/tomtom215/clickstream/internal/metrics"
	"github.com/tomtom215/clickstream/internal/render"
)

// KPIWarning is attached to the KPI block when constrained KPI filters match
// no sessions.
const KPIWarning = "No data for the current KPI filters. Try widening your selection."

// ErrUnknownChart is returned for a chart context or cohort view that is not
// in the registry.
var ErrUnknownChart = errors.New("unknown chart")

// Status is the outcome of one chart in a render pass.
type Status string

const (
	StatusOK    Status = "ok"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Executor runs a query template. *database.DB implements it.
type Executor interface {
	Execute(ctx context.Context, id database.TemplateID, params filters.ParameterSet) (*database.Result, error)
}

// Config tunes chart shaping.
type Config struct {
	// RegionTopN caps the region chart. Zero shows every region.
	RegionTopN int
}

// DefaultConfig returns the dashboard defaults.
func DefaultConfig() Config {
	return Config{RegionTopN: 15}
}

// ChartResult is the outcome of rendering one chart.
type ChartResult struct {
	Context    filters.Context      `json:"context"`
	Template   database.TemplateID  `json:"template"`
	Title      string               `json:"title"`
	Status     Status               `json:"status"`
	Params     filters.ParameterSet `json:"params"`
	Artifacts  []*render.Artifact   `json:"artifacts,omitempty"`
	Notice     string               `json:"notice,omitempty"`
	Warning    string               `json:"warning,omitempty"`
	Error      string               `json:"error,omitempty"`
	DurationMS int64                `json:"duration_ms"`

	// Unavailable is set when the query failed because the database is
	// unreachable or the breaker is open.
	Unavailable bool `json:"-"`
}

// Report is the outcome of a full render pass.
type Report struct {
	Charts     []*ChartResult `json:"charts"`
	OK         int            `json:"ok"`
	Empty      int            `json:"empty"`
	Failed     int            `json:"failed"`
	DurationMS int64          `json:"duration_ms"`
}

// CohortResult is a cohort chart plus the rows behind it.
type CohortResult struct {
	Chart *ChartResult     `json:"chart"`
	Table *database.Result `json:"table"`
}

// CohortView names a selectable cohort view.
type CohortView struct {
	ID    filters.Context     `json:"id"`
	Label string              `json:"label"`
	Table database.TemplateID `json:"table"`
}

// Dashboard renders the chart registry against an Executor. It holds no
// per-request state and is safe for concurrent use.
type Dashboard struct {
	exec   Executor
	charts []Chart
	index  map[filters.Context]int
}

// New creates a dashboard over exec.
func New(exec Executor, cfg Config) *Dashboard {
	charts := defaultCharts(cfg)
	index := make(map[filters.Context]int, len(charts))
	for i, c := range charts {
		index[c.Context] = i
	}
	return &Dashboard{exec: exec, charts: charts, index: index}
}

// Charts returns the registry in display order.
func (d *Dashboard) Charts() []Chart {
	out := make([]Chart, len(d.charts))
	copy(out, d.charts)
	return out
}

// Contexts returns every chart context in display order.
func (d *Dashboard) Contexts() []filters.Context {
	out := make([]filters.Context, len(d.charts))
	for i, c := range d.charts {
		out[i] = c.Context
	}
	return out
}

// CohortViews returns the selectable cohort views.
func (d *Dashboard) CohortViews() []CohortView {
	var views []CohortView
	for _, c := range d.charts {
		if c.Cohort {
			views = append(views, CohortView{ID: c.Context, Label: c.View, Table: c.Template})
		}
	}
	return views
}

// RenderAll renders every chart in display order.
func (d *Dashboard) RenderAll(ctx context.Context, set filters.Set) *Report {
	start := time.Now()
	report := &Report{Charts: make([]*ChartResult, 0, len(d.charts))}

	for i := range d.charts {
		cr, _ := d.render(ctx, &d.charts[i], set)
		report.Charts = append(report.Charts, cr)
		switch cr.Status {
		case StatusOK:
			report.OK++
		case StatusEmpty:
			report.Empty++
		case StatusError:
			report.Failed++
		}
	}

	elapsed := time.Since(start)
	report.DurationMS = elapsed.Milliseconds()
	metrics.RenderPassDuration.Observe(elapsed.Seconds())

	logging.Ctx(ctx).Debug().
		Int("charts", len(report.Charts)).
		Int("empty", report.Empty).
		Int("failed", report.Failed).
		Dur("duration", elapsed).
		Msg("Dashboard render pass complete")

	return report
}

// RenderOne renders a single chart. It returns ErrUnknownChart when the
// context is not in the registry; query failures are reported on the result.
func (d *Dashboard) RenderOne(ctx context.Context, set filters.Set, chart filters.Context) (*ChartResult, error) {
	i, ok := d.index[chart]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, chart)
	}
	cr, _ := d.render(ctx, &d.charts[i], set)
	return cr, nil
}

// Cohort renders a cohort view and returns its table. view is a cohort
// context id or its table name.
func (d *Dashboard) Cohort(ctx context.Context, view string) (*CohortResult, error) {
	c := d.cohort(view)
	if c == nil {
		return nil, fmt.Errorf("%w: cohort view %s", ErrUnknownChart, view)
	}
	cr, res := d.render(ctx, c, nil)
	if res == nil {
		res = &database.Result{Rows: [][]any{}}
	}
	return &CohortResult{Chart: cr, Table: res}, nil
}

func (d *Dashboard) cohort(view string) *Chart {
	view = strings.ToLower(strings.TrimSpace(view))
	for i := range d.charts {
		c := &d.charts[i]
		if !c.Cohort {
			continue
		}
		if view == string(c.Context) || view == string(c.Template) || view == strings.TrimPrefix(string(c.Context), "cohort_") {
			return c
		}
	}
	return nil
}

// render resolves, executes and draws one chart. The raw result is returned
// for callers that show the table; it is nil when the query failed.
func (d *Dashboard) render(ctx context.Context, c *Chart, set filters.Set) (*ChartResult, *database.Result) {
	start := time.Now()

	params := filters.Unconstrained()
	if !c.Cohort {
		params = filters.BuildParams(set, c.Context)
	}

	cr := &ChartResult{
		Context:  c.Context,
		Template: c.Template,
		Title:    c.Title,
		Params:   params,
	}

	res, err := d.exec.Execute(ctx, c.Template, params)
	cr.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		cr.Status = StatusError
		cr.Unavailable = errors.Is(err, database.ErrUnavailable)
		cr.Error = "query failed"
		if cr.Unavailable {
			cr.Error = "database unavailable"
		}
		logging.Ctx(ctx).Warn().Err(err).
			Str("chart", string(c.Context)).
			Str("template", string(c.Template)).
			Msg("Chart query failed")
		metrics.RecordChartRender(string(c.Context), string(StatusError))
		return cr, nil
	}

	cr.Artifacts = make([]*render.Artifact, 0, len(c.Specs))
	for _, spec := range c.Specs {
		cr.Artifacts = append(cr.Artifacts, render.Render(spec, res))
	}

	cr.Status = StatusOK
	if res.Empty() {
		cr.Status = StatusEmpty
		if c.Context == filters.ContextKPI {
			if params.Constrained() {
				cr.Warning = KPIWarning
			}
		} else {
			cr.Notice = render.NoDataMessage(c.Specs[0].Title)
		}
	}
	metrics.RecordChartRender(string(c.Context), string(cr.Status))

	return cr, res
}
