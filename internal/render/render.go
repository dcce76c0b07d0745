// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/clickstream/internal/database"
)

// Render draws a result according to spec. It never fails: an empty or nil
// result yields an artifact with NoData set.
func Render(spec Spec, res *database.Result) *Artifact {
	a := &Artifact{
		ID:    spec.ID,
		Kind:  spec.Kind,
		Title: spec.Title,
	}

	if spec.Kind == KindMetrics {
		renderMetrics(a, spec, res)
		return a
	}

	if res.Empty() {
		a.NoData = true
		a.Message = NoDataMessage(spec.Title)
		return a
	}

	rows := res.Len()
	if spec.Limit > 0 && rows > spec.Limit {
		rows = spec.Limit
	}
	a.Rows = rows

	switch spec.Kind {
	case KindGroupedBar:
		renderMelted(a, spec, res, rows)
	case KindHeatmap:
		renderHeatmap(a, spec, res, rows)
	default:
		renderSeries(a, spec, res, rows)
	}
	return a
}

// renderMetrics fills the headline block. Missing values show as zero so the
// block keeps its layout when the query matched nothing.
func renderMetrics(a *Artifact, spec Spec, res *database.Result) {
	a.NoData = res.Empty()
	a.Rows = res.Len()
	a.Metrics = make([]Metric, 0, len(spec.Metrics))
	for _, m := range spec.Metrics {
		var v float64
		if !res.Empty() {
			v = res.Float(0, m.Name)
		}
		a.Metrics = append(a.Metrics, Metric{
			Label: m.Label,
			Value: v,
			Text:  FormatValue(v, m.Format),
		})
	}
}

func renderSeries(a *Artifact, spec Spec, res *database.Result, rows int) {
	var categories []string
	seenCategory := make(map[string]bool)
	var order []string
	series := make(map[string]*Series)

	for i := 0; i < rows; i++ {
		x := cellLabel(spec, res, i, spec.Category)
		if !seenCategory[x] {
			seenCategory[x] = true
			categories = append(categories, x)
		}

		name := spec.ValueLabel
		if spec.Series != "" {
			name = cellLabel(spec, res, i, spec.Series)
		}
		s, ok := series[name]
		if !ok {
			s = &Series{Name: name}
			series[name] = s
			order = append(order, name)
		}

		y := res.Float(i, spec.Value)
		s.Points = append(s.Points, Point{X: x, Y: y, Text: FormatValue(y, spec.ValueFormat)})
	}

	a.Series = make([]Series, 0, len(order))
	for _, name := range order {
		a.Series = append(a.Series, *series[name])
	}

	categoryAxis := &Axis{Label: spec.CategoryLabel, Categories: categories}
	valueAxis := &Axis{Label: spec.ValueLabel}
	switch spec.Kind {
	case KindPie:
		a.Hole = spec.Hole
		a.Legend = spec.CategoryLabel
	case KindHBar:
		a.Orientation = "h"
		a.XAxis, a.YAxis = valueAxis, categoryAxis
	default:
		a.XAxis, a.YAxis = categoryAxis, valueAxis
	}

	if spec.Series != "" {
		a.Legend = spec.SeriesLabel
		if spec.Kind == KindBar || spec.Kind == KindHBar {
			a.BarMode = "group"
		}
	}
}

// renderMelted turns each wide row into one series with a bar per melted
// column, so rows can be compared metric by metric.
func renderMelted(a *Artifact, spec Spec, res *database.Result, rows int) {
	categories := make([]string, 0, len(spec.Melt))
	for _, m := range spec.Melt {
		categories = append(categories, m.Label)
	}

	for i := 0; i < rows; i++ {
		s := Series{Name: cellLabel(spec, res, i, spec.Series)}
		for _, m := range spec.Melt {
			y := res.Float(i, m.Name)
			s.Points = append(s.Points, Point{X: m.Label, Y: y, Text: FormatValue(y, m.Format)})
		}
		a.Series = append(a.Series, s)
	}

	a.BarMode = "group"
	a.Legend = spec.SeriesLabel
	a.XAxis = &Axis{Label: spec.CategoryLabel, Categories: categories}
	a.YAxis = &Axis{Label: spec.ValueLabel}
}

// renderHeatmap pivots rows into a Row x Category matrix of Value.
func renderHeatmap(a *Artifact, spec Spec, res *database.Result, rows int) {
	var xs, ys []string
	xIndex := make(map[string]int)
	yIndex := make(map[string]int)

	type cell struct {
		x, y int
		v    float64
	}
	cells := make([]cell, 0, rows)

	for i := 0; i < rows; i++ {
		x := cellLabel(spec, res, i, spec.Category)
		y := cellLabel(spec, res, i, spec.Row)
		xi, ok := xIndex[x]
		if !ok {
			xi = len(xs)
			xIndex[x] = xi
			xs = append(xs, x)
		}
		yi, ok := yIndex[y]
		if !ok {
			yi = len(ys)
			yIndex[y] = yi
			ys = append(ys, y)
		}
		cells = append(cells, cell{x: xi, y: yi, v: res.Float(i, spec.Value)})
	}

	z := make([][]*float64, len(ys))
	for i := range z {
		z[i] = make([]*float64, len(xs))
	}
	for _, c := range cells {
		v := c.v
		z[c.y][c.x] = &v
	}

	a.Heatmap = &Heatmap{
		X:          xs,
		Y:          ys,
		Z:          z,
		XLabel:     spec.CategoryLabel,
		YLabel:     spec.RowLabel,
		ColorLabel: spec.ValueLabel,
	}
}

// cellLabel formats a category or series cell for display.
func cellLabel(spec Spec, res *database.Result, i int, column string) string {
	switch v := res.Value(i, column).(type) {
	case bool:
		if spec.BoolLabels != nil {
			if v {
				return spec.BoolLabels[1]
			}
			return spec.BoolLabels[0]
		}
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return res.String(i, column)
	}
}

// FormatValue labels a number according to f.
func FormatValue(v float64, f Format) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	switch f {
	case FormatPercent:
		return fmt.Sprintf("%.2f%%", v)
	case FormatRatio:
		return fmt.Sprintf("%.2f%%", v*100)
	case FormatCurrency:
		return fmt.Sprintf("$%.2f", v)
	case FormatCount:
		return humanize.Comma(int64(math.Round(v)))
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
