package stats

import (
	"math"
	"sort"
)

// LengthSummary is the min/max/mean/median of a non-negative integer
// sequence. The zero value is the summary of an empty sequence.
type LengthSummary struct {
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize computes min/max/mean/median over lengths, rounding mean
// and median to two decimal places. An empty sequence yields the zero
// LengthSummary.
func Summarize(lengths []int64) LengthSummary {
	if len(lengths) == 0 {
		return LengthSummary{}
	}

	min, max := lengths[0], lengths[0]
	var sum int64
	for _, v := range lengths {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	mean := round2(float64(sum) / float64(len(lengths)))
	median := round2(medianOf(lengths))

	return LengthSummary{Min: min, Max: max, Mean: mean, Median: median}
}

// medianOf computes the standard median: the lower middle element for
// odd counts, the average of the two middle elements for even counts.
// The input is sorted on a private copy; the caller's slice is untouched.
func medianOf(lengths []int64) float64 {
	sorted := make([]int64, len(lengths))
	copy(sorted, lengths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
