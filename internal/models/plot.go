package models

// PlotType names a chart type
type PlotType string

const (
	PlotHistogram PlotType = "hist"
	PlotScatter   PlotType = "scatter"
)

// Axes returns the axis roles a plot type needs, in form order
func (t PlotType) Axes() []string {
	switch t {
	case PlotHistogram:
		return []string{"x"}
	case PlotScatter:
		return []string{"x", "y"}
	}
	return nil
}

// PlotSpec is what the user submits with "Plot!"
type PlotSpec struct {
	PlotType  PlotType          `json:"plot_type"`
	Variables map[string]string `json:"variables"`
}

// Default perijove slider bounds
const (
	MinPerijove = 13
	MaxPerijove = 36
)

// FilterState restricts the plotted population
type FilterState struct {
	EpochMin   int  `json:"epoch_min"`
	EpochMax   int  `json:"epoch_max"`
	VortexOnly bool `json:"vortex_only"`
}

// DefaultFilter matches the initial state of the filter controls
func DefaultFilter() FilterState {
	return FilterState{EpochMin: MinPerijove, EpochMax: MaxPerijove, VortexOnly: true}
}

// EventPoint is one point reported by a chart hover or selection event.
// Histogram bars report the bin and the indices of the values it holds.
type EventPoint struct {
	PointNumber  int   `json:"pointNumber"`
	BinNumber    *int  `json:"binNumber,omitempty"`
	PointNumbers []int `json:"pointNumbers,omitempty"`
}

// ChartEvent is a hover or selection event. A nil or empty Points means
// the selection was cleared.
type ChartEvent struct {
	Points []EventPoint `json:"points"`
}

// ExportRequest is the body of the export endpoint
type ExportRequest struct {
	SubjectIDs []SubjectID `json:"subject_IDs"`
}

// ExportResponse is returned by the export endpoint
type ExportResponse struct {
	Error    bool   `json:"error"`
	FileData string `json:"filedata"`
}
