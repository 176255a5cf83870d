package analysis

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"jude-explorer/internal/explorer"
	"jude-explorer/internal/models"
)

// AxisSummary describes the values plotted on one axis
type AxisSummary struct {
	Field   string  `json:"field"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
}

// BinCount is the population of one histogram bin
type BinCount struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Summary describes the filtered series currently on screen
type Summary struct {
	PlotType models.PlotType `json:"plot_type"`
	Records  int             `json:"records"`
	Axes     []AxisSummary   `json:"axes"`
	Bins     []BinCount      `json:"bins,omitempty"`
}

// Summarize computes per-axis statistics of a series
func Summarize(series explorer.Series) Summary {
	sum := Summary{PlotType: series.Type(), Records: series.Len()}
	switch s := series.(type) {
	case *explorer.Histogram:
		sum.Axes = []AxisSummary{CalculateStats(s.Field, s.X)}
		for k, c := range s.Counts() {
			sum.Bins = append(sum.Bins, BinCount{
				Lower: s.Bins.Lower(k),
				Upper: s.Bins.Lower(k + 1),
				Count: c,
			})
		}
	case *explorer.Scatter:
		sum.Axes = []AxisSummary{
			CalculateStats(s.XField, s.X),
			CalculateStats(s.YField, s.Y),
		}
	}
	return sum
}

// CalculateStats computes basic stats for one axis. Missing values are
// counted but take no part in the statistics.
func CalculateStats(field string, column []models.Number) AxisSummary {
	a := AxisSummary{Field: field}

	values := []float64{}
	for _, v := range column {
		if v.Valid {
			values = append(values, v.Value)
		} else {
			a.Missing++
		}
	}
	a.Count = len(values)
	if len(values) == 0 {
		return a
	}

	a.Min, a.Max = stats.Bounds(values)
	a.Mean = stats.Mean(values)
	if len(values) > 1 {
		a.StdDev = stats.StdDev(values)
	}

	sort.Float64s(values)
	if len(values)%2 == 0 {
		a.Median = (values[len(values)/2-1] + values[len(values)/2]) / 2
	} else {
		a.Median = values[len(values)/2]
	}
	return a
}
