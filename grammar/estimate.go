// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package grammar

import (
	"math"

	"github.com/gogpu/lsys"
)

// DefaultConfirmThreshold is the estimated primitive count above which a
// render must be confirmed before it starts.
const DefaultConfirmThreshold int64 = 2_000_000

// Estimate returns a cheap upper bound on the number of primitives a
// render would draw:
//
//	maxPoints * branchFactor^iterations
//
// maxPoints is the largest pattern, and branchFactor is the largest number
// of letters in any replacement rule (at least 1). Nothing is expanded, so
// the cost does not depend on how large the real expansion would be. The
// result saturates at math.MaxInt64.
func Estimate(patterns []lsys.Pattern, symbols []lsys.Symbol, iterations int) int64 {
	maxPoints := 0
	for i := range patterns {
		if n := len(patterns[i].Points); n > maxPoints {
			maxPoints = n
		}
	}
	branch := 1
	for _, sym := range symbols {
		if n := countLetters(sym.ReplacementRule); n > branch {
			branch = n
		}
	}
	if maxPoints == 0 {
		return 0
	}
	if iterations < 0 {
		iterations = 0
	}

	v := float64(maxPoints) * math.Pow(float64(branch), float64(iterations))
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// EstimateProject is Estimate applied to a whole project.
func EstimateProject(p *lsys.Project) int64 {
	return Estimate(p.Patterns, p.Symbols, p.Iterations)
}

// NeedsConfirmation reports whether estimate is over threshold.
func NeedsConfirmation(estimate, threshold int64) bool {
	return estimate > threshold
}

func countLetters(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			n++
		}
	}
	return n
}
