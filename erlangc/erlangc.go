// Package erlangc implements the classic M/M/c (Erlang C) queueing model:
// wait probability, service level, average speed of answer, occupancy and
// shrinkage-adjusted FTE. Customers are assumed to wait indefinitely, which
// makes this the most conservative of the three staffing models.
package erlangc

import "math"

// WaitProbability returns P(wait > 0) for the given agent count and offered
// load. Zero load or no agents means nobody queues (0). A queue whose
// offered load meets or exceeds capacity is unstable: every arrival
// eventually waits, so the probability is 1.
//
// The Erlang sum is accumulated iteratively rather than through factorials,
// which keeps the computation stable for agent counts far beyond the ~170
// where float64 factorials overflow.
func WaitProbability(agents int, traffic float64) float64 {
	if agents <= 0 || traffic <= 0 {
		return 0
	}
	n := float64(agents)
	if n <= traffic {
		return 1
	}
	// sum accumulates sum_{k=0..n-1} (a^k/k!) normalized by a^(n-1)/(n-1)!.
	sum := 1.0
	for k := 1; k < agents; k++ {
		sum = 1 + float64(k)/traffic*sum
	}
	p := 1 / (1 + (n-traffic)/traffic*sum)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ServiceLevel returns the fraction of contacts answered within
// thresholdSeconds. Zero load means perfect service; an unstable queue
// means none.
func ServiceLevel(agents int, traffic, ahtSeconds, thresholdSeconds float64) float64 {
	if traffic <= 0 {
		return 1
	}
	if agents <= 0 || float64(agents) <= traffic || ahtSeconds <= 0 {
		return 0
	}
	pw := WaitProbability(agents, traffic)
	sl := 1 - pw*math.Exp(-(float64(agents)-traffic)*thresholdSeconds/ahtSeconds)
	if sl < 0 {
		return 0
	}
	if sl > 1 {
		return 1
	}
	return sl
}

// AverageWait returns the average speed of answer in seconds. An unstable
// queue (or a nonsensical zero-agent one) has an unbounded wait, reported
// as +Inf.
func AverageWait(agents int, traffic, ahtSeconds float64) float64 {
	if agents <= 0 {
		return math.Inf(1)
	}
	if traffic <= 0 {
		return 0
	}
	if float64(agents) <= traffic {
		return math.Inf(1)
	}
	return WaitProbability(agents, traffic) * ahtSeconds / (float64(agents) - traffic)
}

// Occupancy returns the fraction of agent time spent handling contacts,
// capped at 1.
func Occupancy(traffic float64, agents int) float64 {
	if agents <= 0 || traffic <= 0 {
		return 0
	}
	occ := traffic / float64(agents)
	if occ > 1 {
		return 1
	}
	return occ
}

// FTE converts a staffed-agent count into paid full-time equivalents under
// the given shrinkage fraction. Negative shrinkage is clamped to zero;
// shrinkage of 1 means no paid time is available for handling, so the
// requirement is +Inf.
func FTE(agents int, shrinkage float64) float64 {
	if agents <= 0 {
		return 0
	}
	if shrinkage < 0 {
		shrinkage = 0
	}
	if shrinkage >= 1 {
		return math.Inf(1)
	}
	return float64(agents) / (1 - shrinkage)
}
