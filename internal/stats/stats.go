// Package stats provides the column statistics used for calibration,
// agreement reports and table summaries.
package stats

import (
	"math"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float64) float64 {
	var acc Accumulator
	for _, v := range values {
		acc.Observe(v)
	}
	return acc.StdDev()
}

// MinMax returns the smallest and largest value. Both are 0 for an empty slice.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Accumulator tracks count, mean, variance and extrema of a stream of
// values using Welford's update.
type Accumulator struct {
	count int
	mean  float64
	m2    float64
	min   float64
	max   float64
}

func (a *Accumulator) Observe(v float64) {
	a.count++
	if a.count == 1 {
		a.min, a.max = v, v
	} else {
		a.min = math.Min(a.min, v)
		a.max = math.Max(a.max, v)
	}
	delta := v - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (v - a.mean)
}

func (a *Accumulator) Count() int    { return a.count }
func (a *Accumulator) Mean() float64 { return a.mean }
func (a *Accumulator) Min() float64  { return a.min }
func (a *Accumulator) Max() float64  { return a.max }

func (a *Accumulator) StdDev() float64 {
	if a.count == 0 {
		return 0
	}
	return math.Sqrt(a.m2 / float64(a.count))
}

type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Summarize(values []float64) Summary {
	var acc Accumulator
	for _, v := range values {
		acc.Observe(v)
	}
	return Summary{
		Count:  acc.Count(),
		Mean:   acc.Mean(),
		StdDev: acc.StdDev(),
		Min:    acc.Min(),
		Max:    acc.Max(),
	}
}

// Histogram bins values into equal-width buckets between their minimum and
// maximum. Edges has len(Counts)+1 entries.
type Histogram struct {
	Counts []int
	Edges  []float64
}

func NewHistogram(values []float64, bins int) Histogram {
	if bins < 1 {
		bins = 1
	}
	h := Histogram{
		Counts: make([]int, bins),
		Edges:  make([]float64, bins+1),
	}
	if len(values) == 0 {
		return h
	}

	lo, hi := MinMax(values)
	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			switch {
			case idx < 0:
				idx = 0
			case idx >= bins:
				idx = bins - 1
			}
		}
		h.Counts[idx]++
	}
	return h
}

// Floats returns the counts as float64 for plotting.
func (h Histogram) Floats() []float64 {
	out := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		out[i] = float64(c)
	}
	return out
}
