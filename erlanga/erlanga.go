// Package erlanga extends the Erlang C model with customer impatience
// (Erlang A). Patience is exponential; the patience ratio
// theta = average patience / AHT controls how quickly waiting customers
// give up. Abandonment relieves queue pressure, so at equal staffing the
// answered-population service level is never below its Erlang C
// counterpart.
package erlanga

import (
	"math"

	"staffing-calculator/erlangc"
	"staffing-calculator/solver"
)

// PatienceRatio derives theta from the average patience and handle time.
// Negative patience is treated as zero.
func PatienceRatio(averagePatienceSeconds, ahtSeconds float64) float64 {
	if ahtSeconds <= 0 || averagePatienceSeconds <= 0 {
		return 0
	}
	return averagePatienceSeconds / ahtSeconds
}

// AbandonmentProbability returns the fraction of offered contacts expected
// to abandon before reaching an agent. An unstable queue or zero patience
// both resolve to certain abandonment.
//
// Conditional on waiting, service start and patience expiry race as
// exponentials at rates (n-a)/AHT and 1/(theta*AHT); the waiting customer
// abandons with odds 1 : theta*(n-a).
func AbandonmentProbability(agents int, traffic, patienceRatio float64) float64 {
	if traffic <= 0 {
		return 0
	}
	if agents <= 0 || float64(agents) <= traffic || patienceRatio <= 0 {
		return 1
	}
	pw := erlangc.WaitProbability(agents, traffic)
	return pw / (1 + patienceRatio*(float64(agents)-traffic))
}

// ServiceLevel returns the fraction of answered contacts reached within
// thresholdSeconds. Abandoned contacts are excluded from the denominator.
// Zero load means perfect service; an unstable queue, or one where nobody
// survives the wait, means none.
func ServiceLevel(agents int, traffic, ahtSeconds, thresholdSeconds, averagePatienceSeconds float64) float64 {
	if traffic <= 0 {
		return 1
	}
	if agents <= 0 || float64(agents) <= traffic || ahtSeconds <= 0 {
		return 0
	}
	theta := PatienceRatio(averagePatienceSeconds, ahtSeconds)
	pw := erlangc.WaitProbability(agents, traffic)
	pab := AbandonmentProbability(agents, traffic, theta)
	answered := 1 - pab
	if answered <= 0 {
		return 0
	}
	// Queue drains faster than under Erlang C: customers ahead may abandon,
	// so the wait decay rate gains a patience term.
	decay := (float64(agents) - traffic) / ahtSeconds
	if averagePatienceSeconds > 0 {
		decay += 1 / averagePatienceSeconds
	}
	sl := 1 - (pw-pab)*math.Exp(-decay*thresholdSeconds)/answered
	if sl < 0 {
		return 0
	}
	if sl > 1 {
		return 1
	}
	return sl
}

// ExpectedAbandonments scales the abandonment probability to the interval
// volume.
func ExpectedAbandonments(volume float64, agents int, traffic, patienceRatio float64) float64 {
	if volume <= 0 {
		return 0
	}
	return volume * AbandonmentProbability(agents, traffic, patienceRatio)
}

// AverageWait returns the average speed of answer in seconds, accounting
// for the effective load reduction from abandonment. Unstable queues report
// +Inf.
func AverageWait(agents int, traffic, ahtSeconds, averagePatienceSeconds float64) float64 {
	if agents <= 0 {
		return math.Inf(1)
	}
	if traffic <= 0 {
		return 0
	}
	if float64(agents) <= traffic {
		return math.Inf(1)
	}
	denom := float64(agents) - traffic
	if averagePatienceSeconds > 0 {
		denom += ahtSeconds / averagePatienceSeconds
	}
	return erlangc.WaitProbability(agents, traffic) * ahtSeconds / denom
}

// SolveAgents finds the minimum agent count meeting the target service
// level under the abandonment model. The second return is false when the
// target cannot be met within the solver's search horizon.
func SolveAgents(traffic, ahtSeconds, targetServiceLevel, thresholdSeconds, maxOccupancy, averagePatienceSeconds float64) (int, bool) {
	return solver.Solve(traffic, maxOccupancy, targetServiceLevel, func(agents int) float64 {
		return ServiceLevel(agents, traffic, ahtSeconds, thresholdSeconds, averagePatienceSeconds)
	})
}
