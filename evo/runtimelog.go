package evo

import "math"

// RuntimeSample is one generation's worth of population statistics
// (spec.md §3: "Runtime-function log", supplemented by
// original_source/leac/runtime_statistic.hpp's min/max/avg/var/std over
// the population).
type RuntimeSample struct {
	Generation    int
	Min, Max, Avg float64
	Var, Std      float64
	BestObjective float64
}

// RuntimeLog is an ordered, append-only sequence of per-generation
// samples, mutated only by the driver (spec.md §3).
type RuntimeLog struct {
	samples []RuntimeSample
}

// Append adds a sample to the log.
func (l *RuntimeLog) Append(s RuntimeSample) { l.samples = append(l.samples, s) }

// Samples returns the recorded samples (not a copy; read-only by convention).
func (l *RuntimeLog) Samples() []RuntimeSample { return l.samples }

// computeStatistics computes min/max/avg/var/std over objectives
// (original_source/leac/runtime_statistic.hpp).
//
// Complexity: O(n).
func computeStatistics(objectives []float64, gen int, bestObjective float64) RuntimeSample {
	n := len(objectives)
	if n == 0 {
		return RuntimeSample{Generation: gen, BestObjective: bestObjective}
	}

	min, max, sum := objectives[0], objectives[0], 0.0
	for _, v := range objectives {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	avg := sum / float64(n)

	var sqSum float64
	for _, v := range objectives {
		d := v - avg
		sqSum += d * d
	}
	variance := sqSum / float64(n)

	return RuntimeSample{
		Generation:    gen,
		Min:           min,
		Max:           max,
		Avg:           avg,
		Var:           variance,
		Std:           math.Sqrt(variance),
		BestObjective: bestObjective,
	}
}
