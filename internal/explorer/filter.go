package explorer

import (
	"fmt"

	"jude-explorer/internal/models"
)

// Matches reports whether a subject passes the filter. Subjects with a
// missing perijove never match.
func Matches(s models.Subject, f models.FilterState) bool {
	if f.VortexOnly && !s.IsVortex {
		return false
	}
	if !s.Perijove.Valid {
		return false
	}
	return s.Perijove.Value >= float64(f.EpochMin) && s.Perijove.Value <= float64(f.EpochMax)
}

// Filter keeps, in original order, the records that match f together
// with their series values. It always works from the base series built at
// submit time and returns new slices; the inputs are left untouched.
// Colors are reset to the default: one per bin for histograms, one per
// kept record for scatter plots.
func Filter(base Series, records []models.Subject, f models.FilterState) (Series, []models.Subject, error) {
	if base.Len() != len(records) {
		return nil, nil, fmt.Errorf("series has %d values for %d records", base.Len(), len(records))
	}

	var keep []int
	for i, r := range records {
		if Matches(r, f) {
			keep = append(keep, i)
		}
	}

	subset := make([]models.Subject, len(keep))
	for j, i := range keep {
		subset[j] = records[i]
	}

	switch s := base.(type) {
	case *Histogram:
		return &Histogram{
			Field:  s.Field,
			X:      pick(s.X, keep),
			Bins:   s.Bins,
			Colors: fill(s.Bins.Count, DefaultColor),
		}, subset, nil
	case *Scatter:
		return &Scatter{
			XField: s.XField,
			YField: s.YField,
			X:      pick(s.X, keep),
			Y:      pick(s.Y, keep),
			Colors: fill(len(keep), DefaultColor),
		}, subset, nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrUnknownPlotType, base)
}

func pick(values []models.Number, keep []int) []models.Number {
	out := make([]models.Number, len(keep))
	for j, i := range keep {
		out[j] = values[i]
	}
	return out
}
