package explorer

import (
	"jude-explorer/internal/models"
)

// Chart dimensions sent with every layout
const (
	ChartWidth  = 1200
	ChartHeight = 600
)

// Trace is one chart trace in the shape the chart library consumes
type Trace struct {
	Type   string          `json:"type"`
	Mode   string          `json:"mode,omitempty"`
	X      []models.Number `json:"x"`
	Y      []models.Number `json:"y,omitempty"`
	XBins  *XBins          `json:"xbins,omitempty"`
	NBinsX int             `json:"nbinsx,omitempty"`
	Marker Marker          `json:"marker"`
}

type XBins struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Size  float64 `json:"size"`
}

type Marker struct {
	Color []string `json:"color"`
}

type Axis struct {
	Title string `json:"title"`
}

// Layout is the chart layout object
type Layout struct {
	HoverMode string `json:"hovermode"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	XAxis     *Axis  `json:"xaxis,omitempty"`
	YAxis     *Axis  `json:"yaxis,omitempty"`
}

// TraceOf renders a series and its current colors as a chart trace
func TraceOf(series Series, colors []string) Trace {
	switch s := series.(type) {
	case *Histogram:
		t := Trace{
			Type:   "histogram",
			X:      s.X,
			NBinsX: s.Bins.Count,
			Marker: Marker{Color: colors},
		}
		if s.Bins.Explicit {
			t.XBins = &XBins{Start: s.Bins.Start, End: s.Bins.End, Size: s.Bins.Size}
		}
		return t
	case *Scatter:
		return Trace{
			Type:   "scattergl",
			Mode:   "markers",
			X:      s.X,
			Y:      s.Y,
			Marker: Marker{Color: colors},
		}
	}
	return Trace{}
}

// LayoutOf builds the chart layout for a series
func LayoutOf(series Series) Layout {
	l := Layout{HoverMode: "closest", Width: ChartWidth, Height: ChartHeight}
	switch s := series.(type) {
	case *Histogram:
		l.XAxis = &Axis{Title: s.Field}
	case *Scatter:
		l.XAxis = &Axis{Title: s.XField}
		l.YAxis = &Axis{Title: s.YField}
	}
	return l
}

// PanelItem is the metadata an image tile needs
type PanelItem struct {
	Idx       int              `json:"idx"`
	URL       string           `json:"url"`
	SubjectID models.SubjectID `json:"subject_ID"`
	Latitude  models.Number    `json:"latitude"`
	Longitude models.Number    `json:"longitude"`
	Perijove  models.Number    `json:"perijove"`
}

// PanelPage is one page of an image panel
type PanelPage struct {
	Panel     string      `json:"panel"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	Label     string      `json:"label"`
	Total     int         `json:"total"`
	Loading   bool        `json:"loading"`
	Items     []PanelItem `json:"items"`
}

func pageOf(name string, p *panel) PanelPage {
	items := p.pager.Items()
	offset := p.pager.Offset()
	out := PanelPage{
		Panel:     name,
		Page:      p.pager.Page(),
		PageCount: p.pager.PageCount(),
		Label:     p.pager.Label(),
		Total:     p.pager.Len(),
		Loading:   p.loading,
		Items:     make([]PanelItem, len(items)),
	}
	for i, s := range items {
		out.Items[i] = PanelItem{
			Idx:       offset + i,
			URL:       s.URL,
			SubjectID: s.ID,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Perijove:  s.Perijove,
		}
	}
	return out
}

// View is the full derived state shown to the user
type View struct {
	PlotType  models.PlotType    `json:"plot_type,omitempty"`
	Spec      *models.PlotSpec   `json:"spec,omitempty"`
	Filter    models.FilterState `json:"filter"`
	Data      []Trace            `json:"data"`
	Layout    *Layout            `json:"layout,omitempty"`
	Count     int                `json:"count"`
	Selection PanelPage          `json:"selection"`
	Hover     PanelPage          `json:"hover"`
}
