package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"jude-explorer/internal/explorer"
)

// ErrNothingToRender is returned when the series holds no plottable value
var ErrNothingToRender = errors.New("nothing to render")

// PNG draws the series with its current colors as a PNG image
func PNG(series explorer.Series, colors []string, w io.Writer) error {
	switch s := series.(type) {
	case *explorer.Histogram:
		return histogram(s, colors, w)
	case *explorer.Scatter:
		return scatter(s, colors, w)
	case nil:
		return ErrNothingToRender
	}
	return fmt.Errorf("render: unsupported series %T", series)
}

func histogram(h *explorer.Histogram, colors []string, w io.Writer) error {
	counts := h.Counts()
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return ErrNothingToRender
	}

	bars := make([]chart.Value, len(counts))
	for k, c := range counts {
		col := color(colors, k)
		bars[k] = chart.Value{
			Label: strconv.FormatFloat(h.Bins.Lower(k), 'g', 4, 64),
			Value: float64(c),
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}

	barWidth := (explorer.ChartWidth-160)/len(bars) - 2
	if barWidth < 4 {
		barWidth = 4
	}
	bc := chart.BarChart{
		Title:      h.Field,
		Width:      explorer.ChartWidth,
		Height:     explorer.ChartHeight,
		BarWidth:   barWidth,
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func scatter(s *explorer.Scatter, colors []string, w io.Writer) error {
	var xs, ys []float64
	var dots []drawing.Color
	for i := range s.X {
		if !s.X[i].Valid || !s.Y[i].Valid {
			continue
		}
		xs = append(xs, s.X[i].Value)
		ys = append(ys, s.Y[i].Value)
		dots = append(dots, color(colors, i))
	}
	if len(xs) == 0 {
		return ErrNothingToRender
	}

	ch := chart.Chart{
		Width:      explorer.ChartWidth,
		Height:     explorer.ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: s.XField, Range: span(xs)},
		YAxis:      chart.YAxis{Name: s.YField, Range: span(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.YField,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return dots[index]
					},
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// span returns an axis range covering xs, widened when all values agree
func span(xs []float64) *chart.ContinuousRange {
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func color(colors []string, i int) drawing.Color {
	hex := explorer.DefaultColor
	if i < len(colors) && colors[i] != "" {
		hex = colors[i]
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
