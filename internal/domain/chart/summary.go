// Package chart buckets recipe collections into the three summaries shown
// beside search results. Rendering lives behind a port in the application layer.
package chart

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

// Kind identifies one of the summary charts
type Kind string

const (
	KindTimeDistribution       Kind = "time-distribution"
	KindDifficultyDistribution Kind = "difficulty-distribution"
	KindTimeHistogram          Kind = "time-histogram"
)

// Kinds returns every chart kind in display order
func Kinds() []Kind {
	return []Kind{KindTimeDistribution, KindDifficultyDistribution, KindTimeHistogram}
}

// Shape is the plot form used for a kind
type Shape string

const (
	ShapePie  Shape = "pie"
	ShapeBar  Shape = "bar"
	ShapeLine Shape = "line"
)

// Series is an ordered sequence of labelled counts
type Series struct {
	Labels []string
	Values []int
}

// Total sums the counts
func (s Series) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

func (s *Series) add(label string, value int) {
	s.Labels = append(s.Labels, label)
	s.Values = append(s.Values, value)
}

// Summary is one computed chart: its counts plus the rendered image or the
// render error
type Summary struct {
	Kind   Kind
	Series Series
	Image  []byte
	Err    error
}

// Rendered reports whether an image is available
func (s Summary) Rendered() bool {
	return s.Err == nil && len(s.Image) > 0
}

// Time bands used by the pie distribution, in display order
const (
	BandQuick    = "Quick (≤15 min)"
	BandMedium   = "Medium (16-30 min)"
	BandLong     = "Long (31-60 min)"
	BandVeryLong = "Very Long (>60 min)"
)

// HistogramBucketWidth is the width in minutes of each histogram bucket
const HistogramBucketWidth = 10

// MaxHistogramBuckets bounds the histogram. Every cooking time a recipe can
// be saved with fits.
const MaxHistogramBuckets = recipe.MaxCookingTime/HistogramBucketWidth + 1

// ErrHistogramTooWide is returned when the longest cooking time needs more
// than MaxHistogramBuckets buckets
var ErrHistogramTooWide = errors.New("cooking times exceed the histogram range")

// TimeBand places a cooking time in its band. Negative times fall in the first band.
func TimeBand(minutes int) string {
	switch {
	case minutes <= 15:
		return BandQuick
	case minutes <= 30:
		return BandMedium
	case minutes <= 60:
		return BandLong
	default:
		return BandVeryLong
	}
}

// TimeBands counts recipes per band, omitting empty bands
func TimeBands(recipes []*recipe.Recipe) Series {
	counts := make(map[string]int, 4)
	for _, r := range recipes {
		counts[TimeBand(r.CookingTime())]++
	}

	var s Series
	for _, band := range []string{BandQuick, BandMedium, BandLong, BandVeryLong} {
		if n := counts[band]; n > 0 {
			s.add(band, n)
		}
	}
	return s
}

// DifficultyCounts counts recipes per difficulty actually present. Known
// labels come first in Easy, Medium, Hard order, then anything else sorted.
func DifficultyCounts(recipes []*recipe.Recipe) Series {
	counts := make(map[string]int)
	for _, r := range recipes {
		counts[string(r.Difficulty())]++
	}

	var s Series
	for _, d := range recipe.Difficulties() {
		if n, ok := counts[string(d)]; ok {
			s.add(string(d), n)
			delete(counts, string(d))
		}
	}

	rest := make([]string, 0, len(counts))
	for label := range counts {
		rest = append(rest, label)
	}
	sort.Strings(rest)
	for _, label := range rest {
		s.add(label, counts[label])
	}
	return s
}

// TimeHistogram buckets cooking times into dense [start, start+10) ranges
// from 0 up to the first multiple of 10 above the longest time. Negative
// times are clamped into the first bucket.
func TimeHistogram(recipes []*recipe.Recipe) (Series, error) {
	if len(recipes) == 0 {
		return Series{}, nil
	}

	longest := recipes[0].CookingTime()
	for _, r := range recipes[1:] {
		if r.CookingTime() > longest {
			longest = r.CookingTime()
		}
	}
	if longest < 0 {
		longest = 0
	}
	if longest/HistogramBucketWidth >= MaxHistogramBuckets {
		return Series{}, fmt.Errorf("%w: longest is %d minutes", ErrHistogramTooWide, longest)
	}

	buckets := longest/HistogramBucketWidth + 1
	counts := make([]int, buckets)
	for _, r := range recipes {
		minutes := r.CookingTime()
		if minutes < 0 {
			minutes = 0
		}
		counts[minutes/HistogramBucketWidth]++
	}

	s := Series{
		Labels: make([]string, 0, buckets),
		Values: counts,
	}
	for i := 0; i < buckets; i++ {
		start := i * HistogramBucketWidth
		s.Labels = append(s.Labels, fmt.Sprintf("%d-%d", start, start+HistogramBucketWidth-1))
	}
	return s, nil
}

// Bucket computes the series for kind
func Bucket(kind Kind, recipes []*recipe.Recipe) (Series, error) {
	switch kind {
	case KindTimeDistribution:
		return TimeBands(recipes), nil
	case KindDifficultyDistribution:
		return DifficultyCounts(recipes), nil
	case KindTimeHistogram:
		return TimeHistogram(recipes)
	default:
		return Series{}, fmt.Errorf("unknown chart kind %q", kind)
	}
}
