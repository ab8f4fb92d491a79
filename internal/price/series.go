package price

import (
	"errors"
	"sort"
)

// ErrNoPriceData is returned when a currency's source yields an empty
// series. Valuation cannot proceed without at least one price point.
var ErrNoPriceData = errors.New("no price data")

// Point is one sample of the historical price feed.
type Point struct {
	Time  int64
	Price float64
}

// Series is an immutable per-currency index of historical prices,
// queryable by nearest-past timestamp.
type Series struct {
	byTime map[int64]float64
	times  []int64 // ascending
}

// Set maps a currency code to its Series.
type Set map[string]*Series

// NewSeries indexes a flat list of price points. Duplicate timestamps are
// resolved last-write-wins. An empty list is ErrNoPriceData.
func NewSeries(points []Point) (*Series, error) {
	if len(points) == 0 {
		return nil, ErrNoPriceData
	}

	byTime := make(map[int64]float64, len(points))
	for _, p := range points {
		byTime[p.Time] = p.Price
	}

	times := make([]int64, 0, len(byTime))
	for t := range byTime {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	return &Series{byTime: byTime, times: times}, nil
}

// NearestPast returns the price at the latest known timestamp at or before
// t. When t precedes the whole series, the earliest known price is used as
// a documented fallback; very old transactions are priced at the start of
// the history window rather than failing.
func (s *Series) NearestPast(t int64) float64 {
	// First index whose timestamp is strictly after t.
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] > t })
	if i == 0 {
		return s.byTime[s.times[0]]
	}
	return s.byTime[s.times[i-1]]
}

// Latest returns the price at the newest known timestamp.
func (s *Series) Latest() float64 {
	return s.byTime[s.times[len(s.times)-1]]
}

// Earliest returns the price at the oldest known timestamp.
func (s *Series) Earliest() float64 {
	return s.byTime[s.times[0]]
}

// Len returns the number of distinct price timestamps.
func (s *Series) Len() int {
	return len(s.times)
}
