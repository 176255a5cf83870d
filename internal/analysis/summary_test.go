package analysis

import (
	"math"
	"testing"

	"jude-explorer/internal/explorer"
	"jude-explorer/internal/models"
)

func TestCalculateStats(t *testing.T) {
	col := []models.Number{models.Num(4), models.Missing, models.Num(1), models.Num(3), models.Num(2)}
	a := CalculateStats("latitude", col)

	if a.Count != 4 || a.Missing != 1 {
		t.Fatalf("count=%d missing=%d", a.Count, a.Missing)
	}
	if a.Min != 1 || a.Max != 4 || a.Mean != 2.5 || a.Median != 2.5 {
		t.Fatalf("unexpected stats %+v", a)
	}
	if math.Abs(a.StdDev-math.Sqrt(5.0/3.0)) > 1e-9 {
		t.Fatalf("std dev %v", a.StdDev)
	}
}

func TestCalculateStatsSingleValue(t *testing.T) {
	a := CalculateStats("x", []models.Number{models.Num(7)})
	if a.StdDev != 0 || a.Median != 7 || a.Mean != 7 {
		t.Fatalf("unexpected stats %+v", a)
	}
}

func TestSummarizeHistogram(t *testing.T) {
	h := &explorer.Histogram{
		Field: "perijove",
		X:     []models.Number{models.Num(13), models.Num(13), models.Num(36)},
		Bins:  explorer.BinConfig{Start: 13, End: 36, Size: 1, Count: 24, Explicit: true},
	}
	sum := Summarize(h)
	if sum.PlotType != models.PlotHistogram || sum.Records != 3 {
		t.Fatalf("header %+v", sum)
	}
	if len(sum.Bins) != 24 || sum.Bins[0].Count != 2 || sum.Bins[23].Count != 1 {
		t.Fatalf("bins %+v", sum.Bins)
	}
	if sum.Bins[23].Lower != 36 || sum.Bins[23].Upper != 37 {
		t.Fatalf("last bin edges %+v", sum.Bins[23])
	}
}

func TestSummarizeScatter(t *testing.T) {
	s := &explorer.Scatter{
		XField: "longitude", YField: "latitude",
		X: []models.Number{models.Num(1), models.Num(3)},
		Y: []models.Number{models.Missing, models.Num(-2)},
	}
	sum := Summarize(s)
	if len(sum.Axes) != 2 || sum.Axes[0].Mean != 2 || sum.Axes[1].Missing != 1 {
		t.Fatalf("axes %+v", sum.Axes)
	}
	if sum.Bins != nil {
		t.Fatalf("scatter should have no bins")
	}
}
