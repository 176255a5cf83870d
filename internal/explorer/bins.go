package explorer

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"jude-explorer/internal/models"
)

// BinConfig describes the bins of a histogram. Bin k covers
// [Start+k*Size, Start+(k+1)*Size) for 0 <= k < Count.
type BinConfig struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Size  float64 `json:"size"`
	Count int     `json:"count"`

	// Explicit is false when the layout was derived from the data rather
	// than taken from the fixed table. Only explicit layouts are sent to
	// the chart as xbins.
	Explicit bool `json:"explicit"`
}

var fixedBins = map[string]BinConfig{
	models.FieldLatitude:  {Start: -70, End: 70, Size: 5, Count: 28, Explicit: true},
	models.FieldLongitude: {Start: -180, End: 180, Size: 10, Count: 36, Explicit: true},
	models.FieldPerijove:  {Start: 13, End: 36, Size: 1, Count: 24, Explicit: true},
}

// BinsFor returns the fixed bin configuration of a field, if it has one
func BinsFor(field string) (BinConfig, bool) {
	b, ok := fixedBins[field]
	return b, ok
}

// autoBins lays out Sturges' rule bins over the valid values.
func autoBins(values []models.Number) BinConfig {
	xs := validValues(values)
	if len(xs) == 0 {
		return BinConfig{}
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		return BinConfig{Start: lo, End: lo + 1, Size: 1, Count: 1}
	}
	count := int(math.Ceil(math.Log2(float64(len(xs))))) + 1
	return BinConfig{Start: lo, End: hi, Size: (hi - lo) / float64(count), Count: count}
}

// Index returns the bin holding x. Values in [Start, End] always land in
// a bin; a value equal to End falls into the last one.
func (b BinConfig) Index(x models.Number) (int, bool) {
	if !x.Valid || b.Count == 0 || b.Size <= 0 || math.IsNaN(x.Value) {
		return 0, false
	}
	if x.Value < b.Start || x.Value > b.End {
		return 0, false
	}
	// Rounding in Size can push values at or just below End past the
	// last bin.
	k := int(math.Floor((x.Value - b.Start) / b.Size))
	if k >= b.Count {
		k = b.Count - 1
	}
	return k, true
}

// Lower returns the lower edge of bin k
func (b BinConfig) Lower(k int) float64 {
	return b.Start + float64(k)*b.Size
}

func validValues(values []models.Number) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid && !math.IsNaN(v.Value) {
			xs = append(xs, v.Value)
		}
	}
	return xs
}
