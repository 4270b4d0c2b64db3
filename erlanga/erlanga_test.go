package erlanga_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"staffing-calculator/erlanga"
	"staffing-calculator/erlangc"
)

func TestPatienceRatio(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, erlanga.PatienceRatio(60, 180), 1e-9)
	assert.Equal(t, 0.0, erlanga.PatienceRatio(0, 180))
	assert.Equal(t, 0.0, erlanga.PatienceRatio(-10, 180))
	assert.Equal(t, 0.0, erlanga.PatienceRatio(60, 0))
}

func TestAbandonmentProbability(t *testing.T) {
	tests := map[string]struct {
		agents  int
		traffic float64
		theta   float64
		check   func(t *testing.T, p float64)
	}{
		"ZeroTraffic": {
			agents: 5, traffic: 0, theta: 1,
			check: func(t *testing.T, p float64) { assert.Equal(t, 0.0, p) },
		},
		"Unstable_Certain": {
			agents: 5, traffic: 10, theta: 1,
			check: func(t *testing.T, p float64) { assert.Equal(t, 1.0, p) },
		},
		"ZeroPatience_Certain": {
			agents: 14, traffic: 10, theta: 0,
			check: func(t *testing.T, p float64) { assert.Equal(t, 1.0, p) },
		},
		"Stable_BelowWaitProbability": {
			agents: 13, traffic: 10, theta: 1.0 / 3.0,
			check: func(t *testing.T, p float64) {
				assert.Greater(t, p, 0.0)
				assert.Less(t, p, erlangc.WaitProbability(13, 10))
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc.check(t, erlanga.AbandonmentProbability(tc.agents, tc.traffic, tc.theta))
		})
	}
}

func TestAbandonmentProbabilityMonotone(t *testing.T) {
	// Non-increasing in agents.
	prev := 1.0
	for agents := 11; agents <= 30; agents++ {
		p := erlanga.AbandonmentProbability(agents, 10, 0.5)
		assert.LessOrEqual(t, p, prev, "abandonment must not increase with agents=%d", agents)
		prev = p
	}

	// Non-increasing in theta.
	prev = 1.0
	for theta := 0.1; theta <= 3.0; theta += 0.1 {
		p := erlanga.AbandonmentProbability(13, 10, theta)
		assert.LessOrEqual(t, p, prev, "abandonment must not increase with theta=%f", theta)
		prev = p
	}
}

func TestServiceLevel(t *testing.T) {
	// Zero traffic is perfect service; unstable queues serve nobody.
	assert.Equal(t, 1.0, erlanga.ServiceLevel(5, 0, 180, 20, 60))
	assert.Equal(t, 0.0, erlanga.ServiceLevel(5, 10, 180, 20, 60))
	assert.Equal(t, 0.0, erlanga.ServiceLevel(10, 10, 180, 20, 60))

	// Patient-but-finite customers: answered-population service level is
	// never below the Erlang C figure at the same staffing.
	for agents := 11; agents <= 25; agents++ {
		slA := erlanga.ServiceLevel(agents, 10, 180, 20, 60)
		slC := erlangc.ServiceLevel(agents, 10, 180, 20)
		assert.GreaterOrEqual(t, slA, slC, "abandonment relief must not lower service level at agents=%d", agents)
		assert.LessOrEqual(t, slA, 1.0)
	}
}

func TestServiceLevelMonotoneInAgents(t *testing.T) {
	prev := 0.0
	for agents := 11; agents <= 30; agents++ {
		sl := erlanga.ServiceLevel(agents, 10, 180, 20, 60)
		assert.GreaterOrEqual(t, sl, prev, "service level must not decrease with agents=%d", agents)
		prev = sl
	}
}

func TestExpectedAbandonmentsConservation(t *testing.T) {
	tests := map[string]struct {
		volume  float64
		agents  int
		traffic float64
		theta   float64
	}{
		"Typical":      {volume: 100, agents: 13, traffic: 10, theta: 1.0 / 3.0},
		"TightQueue":   {volume: 250, agents: 11, traffic: 10, theta: 0.25},
		"LowPatience":  {volume: 50, agents: 12, traffic: 10, theta: 0.05},
		"HighStaffing": {volume: 100, agents: 25, traffic: 10, theta: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			abandoned := erlanga.ExpectedAbandonments(tc.volume, tc.agents, tc.traffic, tc.theta)
			answered := tc.volume * (1 - erlanga.AbandonmentProbability(tc.agents, tc.traffic, tc.theta))
			assert.InDelta(t, tc.volume, abandoned+answered, 1e-6,
				"abandoned plus answered must add up to offered volume")
		})
	}
}

func TestExpectedAbandonmentsScalesWithVolume(t *testing.T) {
	one := erlanga.ExpectedAbandonments(100, 13, 10, 0.5)
	two := erlanga.ExpectedAbandonments(200, 13, 10, 0.5)
	assert.InDelta(t, 2*one, two, 1e-9)
	assert.Equal(t, 0.0, erlanga.ExpectedAbandonments(0, 13, 10, 0.5))
}

func TestAverageWait(t *testing.T) {
	assert.Equal(t, 0.0, erlanga.AverageWait(5, 0, 180, 60))
	assert.True(t, math.IsInf(erlanga.AverageWait(5, 10, 180, 60), 1))
	assert.True(t, math.IsInf(erlanga.AverageWait(0, 10, 180, 60), 1))

	// Impatience shortens the average wait relative to Erlang C.
	withPatience := erlanga.AverageWait(13, 10, 180, 60)
	pureC := erlangc.AverageWait(13, 10, 180)
	assert.Less(t, withPatience, pureC)
	assert.Greater(t, withPatience, 0.0)
}

func TestSolveAgents(t *testing.T) {
	// 10 Erlangs, 80/20, 60s patience: abandonment relief means the answer
	// is at or below the Erlang C requirement.
	agents, ok := erlanga.SolveAgents(10, 180, 0.80, 20, 1.0, 60)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, agents, 11)
	assert.LessOrEqual(t, agents, 14)

	// A perfect service level with a finite threshold is unachievable.
	_, ok = erlanga.SolveAgents(10, 180, 1.0, 20, 1.0, 60)
	assert.False(t, ok)

	// The occupancy ceiling raises the floor of the search.
	agents, ok = erlanga.SolveAgents(10, 180, 0.80, 20, 0.5, 60)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, agents, 20)
}
