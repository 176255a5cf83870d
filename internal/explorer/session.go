package explorer

import (
	"errors"
	"fmt"
	"sync"

	"jude-explorer/internal/logging"
	"jude-explorer/internal/models"
)

var logger = logging.New("explorer")

// Panel names
const (
	PanelSelection = "selection"
	PanelHover     = "hover"
)

var (
	// ErrNoPlot is returned for chart interaction before the first submit
	ErrNoPlot = errors.New("nothing plotted yet")

	// ErrUnknownPanel is returned for panel names other than selection/hover
	ErrUnknownPanel = errors.New("unknown panel")
)

type panel struct {
	pager   Pager
	loading bool
}

// Session runs the exploration pipeline for one loaded dataset. Every
// method is one user action: it runs to completion under the session lock
// and replaces the derived state it owns.
type Session struct {
	mu sync.Mutex

	data *models.ExplorationData

	spec   *models.PlotSpec
	base   Series
	filter models.FilterState

	series  Series
	records []models.Subject
	colors  []string

	selection panel
	hover     panel
}

// NewSession starts a session over a loaded dataset with the default
// filter state.
func NewSession(data *models.ExplorationData) *Session {
	if data == nil {
		data = &models.ExplorationData{}
	}
	return &Session{data: data, filter: models.DefaultFilter()}
}

// Dataset returns the dataset behind the session
func (s *Session) Dataset() *models.ExplorationData {
	return s.data
}

// Submit builds a new base series for spec and filters it with the
// current filter state. An incomplete spec leaves the session unchanged.
func (s *Session) Submit(spec models.PlotSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, err := BuildSeries(spec, s.data.SubjectData)
	if errors.Is(err, ErrIncompleteSpec) {
		logger.Debugf("ignoring incomplete %s submit", spec.PlotType)
		return nil
	}
	if err != nil {
		return err
	}

	s.spec = &spec
	s.base = base
	logger.Infof("plotting %s over %d subjects", spec.PlotType, base.Len())
	return s.refilter()
}

// SetFilter stores f and, once something is plotted, re-filters the base
// series from scratch.
func (s *Session) SetFilter(f models.FilterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = f
	if s.base == nil {
		return nil
	}
	return s.refilter()
}

func (s *Session) refilter() error {
	series, records, err := Filter(s.base, s.data.SubjectData, s.filter)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	s.series = series
	s.records = records
	s.colors = currentColors(series)

	// Only the content is replaced; an export in flight keeps its flag.
	s.selection.pager = NewPager(records)
	first := []models.Subject{}
	if len(records) > 0 {
		first = records[:1]
	}
	s.hover.pager = NewPager(first)

	logger.Debugf("filter %d..%d vortex_only=%t kept %d of %d",
		s.filter.EpochMin, s.filter.EpochMax, s.filter.VortexOnly, len(records), len(s.data.SubjectData))
	return nil
}

func currentColors(series Series) []string {
	switch t := series.(type) {
	case *Histogram:
		return t.Colors
	case *Scatter:
		return t.Colors
	}
	return nil
}

// Hover highlights the hovered entries and shows their records in the
// hover panel.
func (s *Session) Hover(ev models.ChartEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.series == nil {
		return ErrNoPlot
	}
	h := Hover(s.series, s.records, ev)
	s.colors = h.Colors
	s.hover.pager = NewPager(h.Records)
	return nil
}

// Select shows the selected records in the selection panel. An empty
// selection shows every filtered record.
func (s *Session) Select(ev models.ChartEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.series == nil {
		return ErrNoPlot
	}
	s.selection.pager = NewPager(Select(s.series, s.records, ev))
	return nil
}

// Deselect restores the selection panel to every filtered record
func (s *Session) Deselect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.series == nil {
		return ErrNoPlot
	}
	s.selection.pager = NewPager(Deselect(s.records))
	return nil
}

func (s *Session) panel(name string) (*panel, error) {
	switch name {
	case PanelSelection:
		return &s.selection, nil
	case PanelHover:
		return &s.hover, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
}

// Page returns the current page of a panel
func (s *Session) Page(name string) (PanelPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.panel(name)
	if err != nil {
		return PanelPage{}, err
	}
	return pageOf(name, p), nil
}

// NextPage moves a panel forward one page
func (s *Session) NextPage(name string) (PanelPage, error) {
	return s.turn(name, Pager.Next)
}

// PrevPage moves a panel back one page
func (s *Session) PrevPage(name string) (PanelPage, error) {
	return s.turn(name, Pager.Prev)
}

func (s *Session) turn(name string, move func(Pager) Pager) (PanelPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.panel(name)
	if err != nil {
		return PanelPage{}, err
	}
	p.pager = move(p.pager)
	return pageOf(name, p), nil
}

// StartExport marks a panel as loading and returns the identifiers of
// every record it holds. The returned release function clears the
// loading flag and must be called once the export finishes, whatever its
// outcome.
func (s *Session) StartExport(name string) ([]models.SubjectID, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.panel(name)
	if err != nil {
		return nil, nil, err
	}
	p.loading = true
	ids := models.SubjectIDs(p.pager.Records())

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			p.loading = false
		})
	}
	return ids, release, nil
}

// Current returns the filtered series, its aligned records and the
// current colors. The series is nil before the first submit.
func (s *Session) Current() (Series, []models.Subject, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series, s.records, s.colors
}

// View snapshots the derived state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Filter:    s.filter,
		Data:      []Trace{},
		Count:     len(s.records),
		Selection: pageOf(PanelSelection, &s.selection),
		Hover:     pageOf(PanelHover, &s.hover),
	}
	if s.series != nil {
		v.PlotType = s.series.Type()
		v.Spec = s.spec
		v.Data = []Trace{TraceOf(s.series, s.colors)}
		layout := LayoutOf(s.series)
		v.Layout = &layout
	}
	return v
}
