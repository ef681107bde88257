package geom

// IntRange is a half-open integer interval [Lo, Hi), modeled on
// original_source/leac/interval_positiveintegers.hpp's half-open ranges
// used throughout the C++ system for bounds like [kMin, kMax).
type IntRange struct {
	Lo, Hi int
}

// NewIntRange builds [lo, hi). A caller passing hi <= lo gets a range that
// Contains reports empty for every value.
func NewIntRange(lo, hi int) IntRange { return IntRange{Lo: lo, Hi: hi} }

// Contains reports whether v falls in [Lo, Hi).
func (r IntRange) Contains(v int) bool { return v >= r.Lo && v < r.Hi }

// Clamp returns v bounded to [Lo, Hi-1] (the closed form of the interval,
// used where a discrete count must never reach the open upper bound).
func (r IntRange) Clamp(v int) int {
	if v < r.Lo {
		return r.Lo
	}
	if v > r.Hi-1 {
		return r.Hi - 1
	}

	return v
}

// Len returns Hi-Lo, or 0 if the range is empty/inverted.
func (r IntRange) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}

	return r.Hi - r.Lo
}
