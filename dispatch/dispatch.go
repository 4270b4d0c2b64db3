// Package dispatch selects one of the three staffing models, runs it over a
// workload and packages the outcome as a flat StaffingResult. It is the
// single entry point consumed by the CLI, the HTTP server and the scenario
// store.
package dispatch

import (
	"time"

	"github.com/google/uuid"

	"staffing-calculator/erlanga"
	"staffing-calculator/erlangc"
	"staffing-calculator/erlangx"
	"staffing-calculator/metrics"
	"staffing-calculator/models"
	"staffing-calculator/solver"
	"staffing-calculator/traffic"
)

// Fraction normalizes a user-facing percentage (0-100) to a fraction.
// Values at or below 1 pass through unchanged.
func Fraction(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// Run executes the requested model over one workload. A nil result means
// the target service level is unachievable within the solver's search
// horizon (or the model id is unknown); callers must treat nil as a
// first-class outcome, distinct from the zero-load result with zero
// required agents.
func Run(w models.WorkloadParameters, t models.ServiceTarget, p *models.PatienceParameters, model models.ModelID) *models.StaffingResult {
	if !model.Valid() {
		return nil
	}
	start := time.Now()
	metrics.CalculationsTotal.WithLabelValues(string(model)).Inc()
	defer func() {
		metrics.CalculationDurationSeconds.WithLabelValues(string(model)).Observe(time.Since(start).Seconds())
	}()
	stamp := func(res *models.StaffingResult) *models.StaffingResult {
		res.DurationMillis = float64(time.Since(start).Microseconds()) / 1000
		return res
	}

	load := traffic.Intensity(w.Volume, w.AHTSeconds, w.IntervalSeconds)
	targetSL := Fraction(t.ServiceLevel)
	maxOcc := Fraction(t.MaxOccupancy)
	if maxOcc <= 0 {
		maxOcc = 1
	}
	shrinkage := Fraction(t.Shrinkage)

	res := &models.StaffingResult{
		CalculationID:    uuid.New().String(),
		Model:            model,
		TrafficIntensity: load,
	}

	if load == 0 {
		// No load is a well-defined state, not an error: zero agents,
		// perfect service, nothing waiting.
		res.AchievedServiceLevel = 1
		return stamp(res)
	}

	var patience float64
	if p != nil {
		patience = p.AveragePatienceSeconds
	}

	var agents int
	var ok bool
	switch model {
	case models.ModelErlangC:
		agents, ok = solver.Solve(load, maxOcc, targetSL, func(n int) float64 {
			return erlangc.ServiceLevel(n, load, w.AHTSeconds, t.ThresholdSeconds)
		})
	case models.ModelErlangA:
		agents, ok = erlanga.SolveAgents(load, w.AHTSeconds, targetSL, t.ThresholdSeconds, maxOcc, patience)
	case models.ModelErlangX:
		agents, ok = erlangx.SolveAgents(load, w.AHTSeconds, targetSL, t.ThresholdSeconds, maxOcc, patience)
	}
	if !ok {
		metrics.UnachievableTotal.WithLabelValues(string(model)).Inc()
		return nil
	}

	res.RequiredAgents = agents
	res.Occupancy = erlangc.Occupancy(load, agents)
	res.FTERequired = erlangc.FTE(agents, shrinkage)
	metrics.RequiredAgents.WithLabelValues(string(model)).Observe(float64(agents))

	switch model {
	case models.ModelErlangC:
		res.AchievedServiceLevel = erlangc.ServiceLevel(agents, load, w.AHTSeconds, t.ThresholdSeconds)
		res.AverageSpeedOfAnswerSeconds = erlangc.AverageWait(agents, load, w.AHTSeconds)
	case models.ModelErlangA:
		theta := erlanga.PatienceRatio(patience, w.AHTSeconds)
		res.AchievedServiceLevel = erlanga.ServiceLevel(agents, load, w.AHTSeconds, t.ThresholdSeconds, patience)
		res.AverageSpeedOfAnswerSeconds = erlanga.AverageWait(agents, load, w.AHTSeconds, patience)
		res.Abandonment = &models.AbandonmentFigures{
			Rate:             erlanga.AbandonmentProbability(agents, load, theta),
			ExpectedContacts: erlanga.ExpectedAbandonments(w.Volume, agents, load, theta),
		}
	case models.ModelErlangX:
		eq := erlangx.SolveEquilibrium(load, agents, w.AHTSeconds, patience)
		metrics.EquilibriumIterations.Observe(float64(eq.Iterations))
		if !eq.Converged {
			metrics.EquilibriumNonConverged.Inc()
		}
		res.AchievedServiceLevel = erlangx.ServiceLevel(agents, load, w.AHTSeconds, t.ThresholdSeconds, patience)
		res.AverageSpeedOfAnswerSeconds = erlanga.AverageWait(agents, eq.VirtualTraffic, w.AHTSeconds, patience)
		res.Abandonment = &models.AbandonmentFigures{
			Rate:             eq.AbandonmentRate,
			ExpectedContacts: w.Volume * eq.AbandonmentRate,
		}
		res.Retrial = &models.RetrialFigures{
			Probability:    eq.RetrialProbability,
			VirtualTraffic: eq.VirtualTraffic,
			Iterations:     eq.Iterations,
			Converged:      eq.Converged,
		}
	}
	return stamp(res)
}

// Compare runs all three models over the same workload. Unachievable models
// appear as nil entries; the map always has all three keys.
func Compare(w models.WorkloadParameters, t models.ServiceTarget, p *models.PatienceParameters) models.Comparison {
	cmp := models.Comparison{
		Workload: w,
		Target:   t,
		Patience: p,
		Results:  make(map[models.ModelID]*models.StaffingResult, 3),
	}
	for _, m := range []models.ModelID{models.ModelErlangC, models.ModelErlangA, models.ModelErlangX} {
		cmp.Results[m] = Run(w, t, p, m)
	}
	return cmp
}
