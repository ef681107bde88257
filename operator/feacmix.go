package operator

// ComputePMO implements F-EAC's adaptive operator-mix estimator (spec.md
// §4.8): given the mean objective change since the previous generation
// among offspring that applied MO1 (deltaAFt1) and MO2 (deltaAFt2)
// respectively, returns the probability of applying MO1 this generation.
//
// Rule: when both deltas are positive, pMO = deltaAFt1/(deltaAFt1+deltaAFt2);
// when both are non-positive, pMO = 0.5; when only one is non-positive,
// pMO is 0.10 (favoring MO2) or 0.90 (favoring MO1) — spec.md §9 records
// this as a deliberate divergence from the cited F-EAC paper (which uses
// 0.0/1.0 for that case): the one-sided case is implemented as specified
// here, not "corrected" to match the paper.
func ComputePMO(deltaAFt1, deltaAFt2 float64) float64 {
	switch {
	case deltaAFt1 > 0 && deltaAFt2 > 0:
		return deltaAFt1 / (deltaAFt1 + deltaAFt2)
	case deltaAFt1 <= 0 && deltaAFt2 <= 0:
		return 0.5
	case deltaAFt1 <= 0:
		return 0.10
	default: // deltaAFt2 <= 0
		return 0.90
	}
}
