package evo

import (
	"time"

	"github.com/katalvlaran/leac/chromosome"
)

// Result bundles the best chromosome and the output-parameter fields
// spec.md §6 names (numClusterK, metricFuncRun, fitness, algorithmRunTime,
// numTotalGenerations, iterationGetsBest, runTimeGetsBest,
// totalInvalidOffspring), plus the runtime-function log.
type Result struct {
	Best chromosome.Chromosome

	NumClusterK           int
	MetricFuncRun         float64 // final objective
	Fitness               float64
	AlgorithmRunTime      time.Duration
	NumTotalGenerations   int
	IterationGetsBest     int
	RunTimeGetsBest       time.Duration
	TotalInvalidOffspring int

	Log RuntimeLog
}
