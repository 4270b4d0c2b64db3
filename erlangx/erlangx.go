// Package erlangx models abandonment with retrial feedback (Erlang X). A
// share of abandoning customers call back, inflating the offered load,
// which in turn raises abandonment. The two quantities depend on each
// other, so the model solves for their equilibrium by bounded fixed-point
// relaxation rather than in closed form.
package erlangx

import (
	"math"

	"staffing-calculator/erlanga"
	"staffing-calculator/erlangc"
	"staffing-calculator/solver"
)

// Calibrated retrial and patience-decay constants. These come from
// operational fitting, not from a derivation; treat them as tunables.
const (
	baseRetrialRate = 0.40
	maxRetrialRate  = 0.70
	maxFrustration  = 2.0

	// WeibullShape > 1 means patience wears thin faster than exponential.
	WeibullShape = 1.2

	// feedbackCeiling marks the point where compounding callbacks make the
	// virtual load effectively unbounded.
	feedbackCeiling = 0.99

	convergenceTolerance = 0.001

	// MaxIterations bounds the equilibrium relaxation.
	MaxIterations = 50

	// maxAbandonment keeps reported abandonment strictly below 1.
	maxAbandonment = 0.999
)

// RetrialProbability estimates the share of abandoning customers who call
// back. It rises from baseRetrialRate toward maxRetrialRate with the
// frustration factor wait/patience, saturating once the wait reaches twice
// the patience.
func RetrialProbability(averageWaitSeconds, averagePatienceSeconds float64) float64 {
	if averagePatienceSeconds <= 0 || math.IsInf(averageWaitSeconds, 1) {
		return maxRetrialRate
	}
	if averageWaitSeconds < 0 {
		averageWaitSeconds = 0
	}
	frustration := averageWaitSeconds / averagePatienceSeconds
	if frustration > maxFrustration {
		frustration = maxFrustration
	}
	return baseRetrialRate + (maxRetrialRate-baseRetrialRate)*frustration/maxFrustration
}

// VirtualTraffic inflates the base load by the retrial feedback loop. Once
// abandonmentRate*retrialProbability reaches the feedback ceiling the loop
// compounds without bound and the virtual load is +Inf.
func VirtualTraffic(baseTraffic, abandonmentRate, retrialProbability float64) float64 {
	if baseTraffic <= 0 {
		return 0
	}
	feedback := abandonmentRate * retrialProbability
	if feedback >= feedbackCeiling {
		return math.Inf(1)
	}
	if feedback < 0 {
		feedback = 0
	}
	return baseTraffic / (1 - feedback)
}

// AbandonmentRate returns the abandonment share under Weibull-distributed
// patience with the package shape parameter: 1 for an unstable queue, 0
// when nobody waits at all.
func AbandonmentRate(agents int, traffic, ahtSeconds, averagePatienceSeconds float64) float64 {
	if traffic <= 0 {
		return 0
	}
	if agents <= 0 || float64(agents) <= traffic {
		return 1
	}
	pw := erlangc.WaitProbability(agents, traffic)
	if pw <= 0 {
		return 0
	}
	if averagePatienceSeconds <= 0 || ahtSeconds <= 0 {
		return pw
	}
	conditionalWait := ahtSeconds / (float64(agents) - traffic)
	x := conditionalWait / averagePatienceSeconds
	return pw * (1 - math.Exp(-math.Pow(x, WeibullShape)))
}

// Equilibrium holds the converged, or best-effort, state of the retrial
// feedback loop.
type Equilibrium struct {
	AbandonmentRate    float64
	RetrialProbability float64
	VirtualTraffic     float64
	Iterations         int
	Converged          bool
}

// SolveEquilibrium iterates abandonment -> average wait -> retrial ->
// virtual load until both the abandonment rate and the virtual load settle
// within the convergence tolerance, or the iteration budget runs out. On a
// blown budget the last iterate is returned with Converged=false: callers
// get a best-effort estimate instead of a failure.
func SolveEquilibrium(baseTraffic float64, agents int, ahtSeconds, averagePatienceSeconds float64) Equilibrium {
	eq := Equilibrium{
		RetrialProbability: baseRetrialRate,
		VirtualTraffic:     baseTraffic,
	}
	if baseTraffic <= 0 {
		eq.Converged = true
		return eq
	}
	if agents <= 0 || float64(agents) <= baseTraffic {
		// The base queue is already unstable; there is no equilibrium to
		// find.
		eq.AbandonmentRate = maxAbandonment
		eq.RetrialProbability = maxRetrialRate
		eq.VirtualTraffic = math.Inf(1)
		eq.Converged = true
		return eq
	}
	for i := 0; i < MaxIterations; i++ {
		eq.Iterations = i + 1
		ab := AbandonmentRate(agents, eq.VirtualTraffic, ahtSeconds, averagePatienceSeconds)
		wait := erlanga.AverageWait(agents, eq.VirtualTraffic, ahtSeconds, averagePatienceSeconds)
		rp := RetrialProbability(wait, averagePatienceSeconds)
		vt := VirtualTraffic(baseTraffic, ab, rp)
		if math.IsInf(vt, 1) {
			eq.AbandonmentRate, eq.RetrialProbability, eq.VirtualTraffic = ab, rp, vt
			break
		}
		settled := math.Abs(ab-eq.AbandonmentRate) < convergenceTolerance &&
			math.Abs(vt-eq.VirtualTraffic) < convergenceTolerance
		eq.AbandonmentRate, eq.RetrialProbability, eq.VirtualTraffic = ab, rp, vt
		if settled {
			eq.Converged = true
			break
		}
	}
	if eq.AbandonmentRate >= 1 {
		eq.AbandonmentRate = maxAbandonment
	}
	return eq
}

// ServiceLevel evaluates the Erlang C service level against the
// equilibrium virtual load. An unstable base queue, or one whose retrial
// loop diverges past capacity, yields 0.
func ServiceLevel(agents int, baseTraffic, ahtSeconds, thresholdSeconds, averagePatienceSeconds float64) float64 {
	if baseTraffic <= 0 {
		return 1
	}
	if agents <= 0 || float64(agents) <= baseTraffic || ahtSeconds <= 0 {
		return 0
	}
	eq := SolveEquilibrium(baseTraffic, agents, ahtSeconds, averagePatienceSeconds)
	if math.IsInf(eq.VirtualTraffic, 1) || float64(agents) <= eq.VirtualTraffic {
		return 0
	}
	return erlangc.ServiceLevel(agents, eq.VirtualTraffic, ahtSeconds, thresholdSeconds)
}

// SolveAgents finds the minimum agent count meeting the target service
// level under the retrial model. The second return is false when the target
// cannot be met within the solver's search horizon.
func SolveAgents(baseTraffic, ahtSeconds, targetServiceLevel, thresholdSeconds, maxOccupancy, averagePatienceSeconds float64) (int, bool) {
	return solver.Solve(baseTraffic, maxOccupancy, targetServiceLevel, func(agents int) float64 {
		return ServiceLevel(agents, baseTraffic, ahtSeconds, thresholdSeconds, averagePatienceSeconds)
	})
}
