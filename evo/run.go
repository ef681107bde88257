package evo

import (
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
)

// Run dispatches on opts.Variant to the matching generation-loop driver
// (spec.md §4.10), validating opts first so every variant rejects a bad
// configuration identically (spec.md §7, ConfigurationInvalid).
func Run(ds *dataset.Dataset, d geom.Distance, opts Options) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}

	switch opts.Variant {
	case VariantFEAC:
		return runFEACFamily(ds, d, opts, true, true, operator.WeightLinearRankFc)
	case VariantEAC:
		return runFEACFamily(ds, d, opts, false, false, operator.WeightUniform)
	case VariantEACInverseFc:
		return runFEACFamily(ds, d, opts, false, false, operator.WeightInverseFc)
	case VariantGACrispMatrix:
		return runGACrispMatrix(ds, d, opts)
	case VariantGCA:
		return runMedoidFamily(ds, d, opts, false)
	case VariantHKA:
		return runMedoidFamily(ds, d, opts, true)
	case VariantGGA:
		return runGGA(ds, d, opts)
	case VariantCGA:
		return runCGA(ds, d, opts)
	case VariantGKA:
		return runGKA(ds, d, opts)
	default:
		return Result{}, ErrInvalidConfig
	}
}
