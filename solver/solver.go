// Package solver finds the minimum integer staffing level that meets a
// service-level target, subject to a maximum-occupancy ceiling.
package solver

import "math"

// Evaluator returns the predicted service level for a candidate agent count.
type Evaluator func(agents int) float64

// Solve scans agent counts upward from the occupancy floor until eval meets
// targetServiceLevel. The scan is linear on purpose: under abandonment and
// retrial feedback the service level is not strictly monotone near the
// stability boundary, so a binary search could step over the answer.
//
// The second return is false when no candidate within the search ceiling
// (three times the offered load; at least 10 agents for sub-Erlang loads)
// meets the target. That
// is a valid "target unachievable within policy limits" outcome, not an
// error; callers must not conflate it with a zero-agent no-load result.
func Solve(traffic, maxOccupancy, targetServiceLevel float64, eval Evaluator) (int, bool) {
	if eval == nil {
		return 0, false
	}
	start := 1
	if traffic > 0 && maxOccupancy > 0 {
		start = int(math.Ceil(traffic / maxOccupancy))
	}
	if start < 1 {
		start = 1
	}
	ceiling := int(math.Ceil(traffic * 3))
	// Sub-Erlang loads still get a usable horizon; heavier loads stop at
	// exactly three times the offered load.
	if traffic < 1 && ceiling < 10 {
		ceiling = 10
	}
	// A tight occupancy cap can push the floor past the usual ceiling; the
	// floor candidate still gets evaluated.
	if ceiling < start {
		ceiling = start
	}
	for agents := start; agents <= ceiling; agents++ {
		if eval(agents) >= targetServiceLevel {
			return agents, true
		}
	}
	return 0, false
}
