package explorer

import (
	"errors"
	"fmt"

	"jude-explorer/internal/models"
)

// Marker colors
const (
	DefaultColor   = "#2e86c1"
	HighlightColor = "#922b21"
)

var (
	// ErrIncompleteSpec is returned when an axis variable is unselected
	ErrIncompleteSpec = errors.New("plot variables not selected")

	// ErrUnknownPlotType is returned for plot types other than hist/scatter
	ErrUnknownPlotType = errors.New("unknown plot type")
)

// Series is chart data positionally aligned with a record subset: index i
// of the series always refers to record i of that subset.
// The implementations are *Histogram and *Scatter.
type Series interface {
	Type() models.PlotType

	// Len is the number of records the series is aligned with
	Len() int

	isSeries()
}

// Histogram is a single-variable series with one color per bin
type Histogram struct {
	Field  string
	X      []models.Number
	Bins   BinConfig
	Colors []string
}

func (h *Histogram) Type() models.PlotType { return models.PlotHistogram }
func (h *Histogram) Len() int              { return len(h.X) }
func (*Histogram) isSeries()               {}

// Counts tallies the values falling into each bin
func (h *Histogram) Counts() []int {
	counts := make([]int, h.Bins.Count)
	for _, x := range h.X {
		if k, ok := h.Bins.Index(x); ok {
			counts[k]++
		}
	}
	return counts
}

// Scatter is a two-variable series with one color per point
type Scatter struct {
	XField, YField string
	X, Y           []models.Number
	Colors         []string
}

func (s *Scatter) Type() models.PlotType { return models.PlotScatter }
func (s *Scatter) Len() int              { return len(s.X) }
func (*Scatter) isSeries()               {}

// BuildSeries derives the base series of a plot specification from the
// full record set. Missing values are carried through unchanged.
func BuildSeries(spec models.PlotSpec, subjects []models.Subject) (Series, error) {
	axes := spec.PlotType.Axes()
	if axes == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlotType, spec.PlotType)
	}
	for _, axis := range axes {
		if spec.Variables[axis] == "" {
			return nil, ErrIncompleteSpec
		}
	}

	switch spec.PlotType {
	case models.PlotHistogram:
		field := spec.Variables["x"]
		x := extract(subjects, field)
		bins, ok := BinsFor(field)
		if !ok {
			bins = autoBins(x)
		}
		return &Histogram{
			Field:  field,
			X:      x,
			Bins:   bins,
			Colors: fill(bins.Count, DefaultColor),
		}, nil
	case models.PlotScatter:
		xf, yf := spec.Variables["x"], spec.Variables["y"]
		return &Scatter{
			XField: xf,
			YField: yf,
			X:      extract(subjects, xf),
			Y:      extract(subjects, yf),
			Colors: fill(len(subjects), DefaultColor),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlotType, spec.PlotType)
}

func extract(subjects []models.Subject, field string) []models.Number {
	values := make([]models.Number, len(subjects))
	for i, s := range subjects {
		values[i] = s.Value(field)
	}
	return values
}

func fill(n int, color string) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = color
	}
	return colors
}
