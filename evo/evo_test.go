package evo_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/evo"
	"github.com/katalvlaran/leac/geom"
	"github.com/stretchr/testify/require"
)

func twoBlobDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.TwoGaussians(8, [2]float64{0, 0}, [2]float64{20, 20}, 0.5, 1)
	require.NoError(t, err)

	return ds
}

func baseOptions() evo.Options {
	return evo.Options{
		SizePopulation:     8,
		SizeMatingPool:     4,
		KMin:               2,
		KMax:               3,
		Pc:                 0.8,
		Pm:                 0.2,
		Pci:                0.9,
		Pcf:                0.6,
		Pmi:                0.05,
		Pmf:                0.2,
		Pbi:                0.5,
		Pbf:                0.5,
		Pe:                 0.2,
		MaxGenerations:     3,
		MaxExecutionTime:   2 * time.Second,
		RandomSeed:         11,
		KMeansMaxIter:      5,
		KMeansEps:          1e-6,
		DesirableObjective: 1e9, // effectively unreachable: exercise every generation
		NumIslands:         2,
		MigrationPeriod:    1,
	}
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	ds := twoBlobDataset(t)
	opts := baseOptions()
	opts.SizePopulation = 1
	opts.SizeMatingPool = 1

	_, err := evo.Run(ds, geom.Euclidean, opts)
	require.ErrorIs(t, err, evo.ErrInvalidConfig)
}

func TestRun_AllVariantsProduceAValidResult(t *testing.T) {
	variants := []evo.Variant{
		evo.VariantFEAC,
		evo.VariantEAC,
		evo.VariantEACInverseFc,
		evo.VariantGACrispMatrix,
		evo.VariantGCA,
		evo.VariantHKA,
		evo.VariantGGA,
		evo.VariantCGA,
		evo.VariantGKA,
	}

	for _, v := range variants {
		v := v
		t.Run(variantName(v), func(t *testing.T) {
			t.Parallel()
			ds := twoBlobDataset(t)
			opts := baseOptions()
			opts.Variant = v

			result, err := evo.Run(ds, geom.Euclidean, opts)
			require.NoError(t, err)
			require.GreaterOrEqual(t, result.NumClusterK, 1)
			// GGA's merge-crossover and CGA's CGA-crossover can each produce
			// a k outside [KMin,KMax] by construction (spec.md §4.7's
			// documented "+2" slack); every other variant keeps k in range.
			if v != evo.VariantGGA && v != evo.VariantCGA {
				require.GreaterOrEqual(t, result.NumClusterK, opts.KMin)
				require.LessOrEqual(t, result.NumClusterK, opts.KMax)
			}
			require.Greater(t, result.NumTotalGenerations, 0)
			require.GreaterOrEqual(t, result.AlgorithmRunTime, time.Duration(0))
		})
	}
}

func variantName(v evo.Variant) string {
	switch v {
	case evo.VariantFEAC:
		return "FEAC"
	case evo.VariantEAC:
		return "EAC"
	case evo.VariantEACInverseFc:
		return "EACInverseFc"
	case evo.VariantGACrispMatrix:
		return "GACrispMatrix"
	case evo.VariantGCA:
		return "GCA"
	case evo.VariantHKA:
		return "HKA"
	case evo.VariantGGA:
		return "GGA"
	case evo.VariantCGA:
		return "CGA"
	case evo.VariantGKA:
		return "GKA"
	default:
		return "unknown"
	}
}
