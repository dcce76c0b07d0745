// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

/*
Package render turns tabular query results into chart specifications.

An Artifact is a self-describing JSON document (chart kind, axes, series,
formatted labels) that a browser charting library can draw directly. The
package never fails on empty input: zero rows produce an artifact with
NoData set and a "No data for <title> chart." message.

Chart kinds:
  - metrics: headline numbers (the KPI block)
  - bar, hbar, line, pie: one category column against one value column,
    optionally split into series by a third column
  - grouped_bar: wide rows melted into (metric, series) bars
  - heatmap: two category columns pivoted into a matrix of values
*/
package render

// Kind is the chart type of an artifact.
type Kind string

const (
	KindMetrics    Kind = "metrics"
	KindBar        Kind = "bar"
	KindHBar       Kind = "hbar"
	KindLine       Kind = "line"
	KindPie        Kind = "pie"
	KindGroupedBar Kind = "grouped_bar"
	KindHeatmap    Kind = "heatmap"
)

// Format controls how numeric values are labeled.
type Format string

const (
	// FormatPercent labels values already expressed as 0-100 percentages.
	FormatPercent  Format = "percent"
	// FormatRatio labels 0-1 ratios as percentages.
	FormatRatio    Format = "ratio"
	FormatCurrency Format = "currency"
	FormatCount    Format = "count"
	FormatNumber   Format = "number"
)

// Column names a result column with its display label and value format.
type Column struct {
	Name   string
	Label  string
	Format Format
}

// Spec describes how one result is drawn.
type Spec struct {
	ID    string
	Title string
	Kind  Kind

	// Category is the column on the category axis (slice names for pies).
	Category      string
	CategoryLabel string
	// Value is the numeric column plotted against Category.
	Value       string
	ValueLabel  string
	ValueFormat Format
	// Series optionally splits rows into one series per distinct value.
	Series      string
	SeriesLabel string
	// Row is the heatmap row column; Category supplies the heatmap columns.
	Row      string
	RowLabel string

	// BoolLabels renames false/true category or series values.
	BoolLabels *[2]string
	// Melt lists the wide columns a grouped bar turns into categories.
	Melt []Column
	// Metrics lists the headline values of a metrics block.
	Metrics []Column

	// Limit keeps only the first Limit rows when positive.
	Limit int
	// Hole is the donut hole ratio of a pie.
	Hole float64
}

// Axis labels an axis and lists its categories in display order.
type Axis struct {
	Label      string   `json:"label"`
	Categories []string `json:"categories,omitempty"`
}

// Point is one plotted value.
type Point struct {
	X    string  `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Series is a named sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Metric is one headline value.
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Heatmap is a pivoted matrix. Z[i][j] is the value for Y[i] and X[j];
// nil marks a missing pair.
type Heatmap struct {
	X          []string     `json:"x"`
	Y          []string     `json:"y"`
	Z          [][]*float64 `json:"z"`
	XLabel     string       `json:"x_label"`
	YLabel     string       `json:"y_label"`
	ColorLabel string       `json:"color_label"`
}

// Artifact is a rendered chart.
type Artifact struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	NoData      bool     `json:"no_data"`
	Message     string   `json:"message,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	BarMode     string   `json:"bar_mode,omitempty"`
	Hole        float64  `json:"hole,omitempty"`
	XAxis       *Axis    `json:"x_axis,omitempty"`
	YAxis       *Axis    `json:"y_axis,omitempty"`
	Legend      string   `json:"legend,omitempty"`
	Series      []Series `json:"series,omitempty"`
	Metrics     []Metric `json:"metrics,omitempty"`
	Heatmap     *Heatmap `json:"heatmap,omitempty"`
	Rows        int      `json:"rows"`
}

// NoDataMessage is the notice shown for a chart whose query returned no rows.
func NoDataMessage(title string) string {
	return "No data for " + title + " chart."
}
