package explorer

import (
	"jude-explorer/internal/models"
)

// Highlight is the outcome of a hover event
type Highlight struct {
	// Colors replaces the series colors: per bin or per point
	Colors []string

	// Records are the subjects implicated by the event
	Records []models.Subject
}

// Hover recolors the entries implicated by ev and collects their records.
// series and records are the current filtered result.
func Hover(series Series, records []models.Subject, ev models.ChartEvent) Highlight {
	hit := resolve(series, ev)

	var colors []string
	switch s := series.(type) {
	case *Histogram:
		colors = fill(s.Bins.Count, DefaultColor)
		for _, b := range hit.bins {
			colors[b] = HighlightColor
		}
	case *Scatter:
		colors = fill(s.Len(), DefaultColor)
		for _, i := range hit.points {
			colors[i] = HighlightColor
		}
	}

	return Highlight{Colors: colors, Records: gather(records, hit.points)}
}

// Select returns the records implicated by a selection event. An event
// without points stands for a cleared selection and yields every record.
func Select(series Series, records []models.Subject, ev models.ChartEvent) []models.Subject {
	if len(ev.Points) == 0 {
		return Deselect(records)
	}
	return gather(records, resolve(series, ev).points)
}

// Deselect returns a copy of the full current record subset
func Deselect(records []models.Subject) []models.Subject {
	out := make([]models.Subject, len(records))
	copy(out, records)
	return out
}

type hits struct {
	bins   []int
	points []int
}

// resolve maps event points to bin indices (histogram only) and record
// indices. Both lists are de-duplicated and keep first-occurrence order;
// indices outside the series are dropped.
func resolve(series Series, ev models.ChartEvent) hits {
	var h hits
	seenBin := make(map[int]bool)
	seenPoint := make(map[int]bool)
	n := series.Len()

	addPoint := func(i int) {
		if i < 0 || i >= n || seenPoint[i] {
			return
		}
		seenPoint[i] = true
		h.points = append(h.points, i)
	}

	switch s := series.(type) {
	case *Histogram:
		for _, p := range ev.Points {
			bin, ok := -1, false
			if p.BinNumber != nil {
				bin = *p.BinNumber
				ok = bin >= 0 && bin < s.Bins.Count
			} else if p.PointNumber >= 0 && p.PointNumber < n {
				bin, ok = s.Bins.Index(s.X[p.PointNumber])
			}
			if ok && !seenBin[bin] {
				seenBin[bin] = true
				h.bins = append(h.bins, bin)
			}

			switch {
			case len(p.PointNumbers) > 0:
				for _, i := range p.PointNumbers {
					addPoint(i)
				}
			case ok:
				for i, x := range s.X {
					if k, in := s.Bins.Index(x); in && k == bin {
						addPoint(i)
					}
				}
			}
		}
	case *Scatter:
		for _, p := range ev.Points {
			addPoint(p.PointNumber)
		}
	}
	return h
}

func gather(records []models.Subject, idx []int) []models.Subject {
	out := make([]models.Subject, 0, len(idx))
	for _, i := range idx {
		out = append(out, records[i])
	}
	return out
}
