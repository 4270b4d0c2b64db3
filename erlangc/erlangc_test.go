package erlangc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"staffing-calculator/erlangc"
)

func TestWaitProbability(t *testing.T) {
	tests := map[string]struct {
		agents   int
		traffic  float64
		expected float64
		delta    float64
	}{
		"SingleAgent_MM1": {
			// For a single agent the wait probability equals the load.
			agents:   1,
			traffic:  0.8,
			expected: 0.8,
			delta:    1e-9,
		},
		"TwoAgents_UnitLoad": {
			agents:   2,
			traffic:  1.0,
			expected: 1.0 / 3.0,
			delta:    1e-9,
		},
		"Unstable_Equal": {
			agents:   10,
			traffic:  10,
			expected: 1,
			delta:    0,
		},
		"Unstable_Overloaded": {
			agents:   5,
			traffic:  10,
			expected: 1,
			delta:    0,
		},
		"ZeroTraffic": {
			agents:   5,
			traffic:  0,
			expected: 0,
			delta:    0,
		},
		"NoAgents": {
			agents:   0,
			traffic:  3,
			expected: 0,
			delta:    0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, erlangc.WaitProbability(tc.agents, tc.traffic), tc.delta)
		})
	}
}

func TestWaitProbabilityMonotoneInAgents(t *testing.T) {
	prev := 1.0
	for agents := 11; agents <= 40; agents++ {
		p := erlangc.WaitProbability(agents, 10)
		assert.LessOrEqual(t, p, prev, "wait probability must not increase with agents=%d", agents)
		assert.GreaterOrEqual(t, p, 0.0)
		prev = p
	}
}

func TestWaitProbabilityLargeAgentCounts(t *testing.T) {
	// Far beyond where factorial evaluation would overflow.
	p := erlangc.WaitProbability(500, 450)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)

	p = erlangc.WaitProbability(2000, 1900)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestServiceLevel(t *testing.T) {
	tests := map[string]struct {
		agents    int
		traffic   float64
		aht       float64
		threshold float64
		check     func(t *testing.T, sl float64)
	}{
		"ZeroTraffic_Perfect": {
			agents: 5, traffic: 0, aht: 180, threshold: 20,
			check: func(t *testing.T, sl float64) { assert.Equal(t, 1.0, sl) },
		},
		"Unstable_Zero": {
			agents: 5, traffic: 10, aht: 180, threshold: 20,
			check: func(t *testing.T, sl float64) { assert.Equal(t, 0.0, sl) },
		},
		"Stable_InRange": {
			agents: 14, traffic: 10, aht: 180, threshold: 20,
			check: func(t *testing.T, sl float64) {
				assert.Greater(t, sl, 0.8)
				assert.Less(t, sl, 1.0)
			},
		},
		"ZeroThreshold_ComplementOfWait": {
			agents: 14, traffic: 10, aht: 180, threshold: 0,
			check: func(t *testing.T, sl float64) {
				assert.InDelta(t, 1-erlangc.WaitProbability(14, 10), sl, 1e-9)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc.check(t, erlangc.ServiceLevel(tc.agents, tc.traffic, tc.aht, tc.threshold))
		})
	}
}

func TestServiceLevelMonotone(t *testing.T) {
	// Non-decreasing in agents.
	prev := 0.0
	for agents := 11; agents <= 30; agents++ {
		sl := erlangc.ServiceLevel(agents, 10, 180, 20)
		assert.GreaterOrEqual(t, sl, prev, "service level must not decrease with agents=%d", agents)
		prev = sl
	}

	// Non-decreasing in threshold.
	prev = 0.0
	for threshold := 0.0; threshold <= 120; threshold += 5 {
		sl := erlangc.ServiceLevel(12, 10, 180, threshold)
		assert.GreaterOrEqual(t, sl, prev, "service level must not decrease with threshold=%f", threshold)
		prev = sl
	}
}

func TestAverageWait(t *testing.T) {
	// Zero traffic waits nothing.
	assert.Equal(t, 0.0, erlangc.AverageWait(5, 0, 180))

	// Unstable queues wait forever.
	assert.True(t, math.IsInf(erlangc.AverageWait(5, 10, 180), 1))
	assert.True(t, math.IsInf(erlangc.AverageWait(10, 10, 180), 1))
	assert.True(t, math.IsInf(erlangc.AverageWait(0, 0, 180), 1))

	// Single agent at 0.8 Erlangs: ASA = 0.8 * 180 / 0.2 = 720s.
	assert.InDelta(t, 720, erlangc.AverageWait(1, 0.8, 180), 1e-6)

	// Non-increasing in agents.
	prev := math.Inf(1)
	for agents := 11; agents <= 30; agents++ {
		w := erlangc.AverageWait(agents, 10, 180)
		assert.LessOrEqual(t, w, prev, "average wait must not increase with agents=%d", agents)
		prev = w
	}
}

func TestOccupancy(t *testing.T) {
	tests := map[string]struct {
		traffic  float64
		agents   int
		expected float64
	}{
		"Typical":    {traffic: 10, agents: 14, expected: 10.0 / 14.0},
		"CappedAt1":  {traffic: 15, agents: 10, expected: 1},
		"NoAgents":   {traffic: 10, agents: 0, expected: 0},
		"ZeroLoad":   {traffic: 0, agents: 10, expected: 0},
		"FullyBusy":  {traffic: 10, agents: 10, expected: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, erlangc.Occupancy(tc.traffic, tc.agents), 1e-9)
		})
	}
}

func TestFTE(t *testing.T) {
	assert.InDelta(t, 10, erlangc.FTE(10, 0), 1e-9)
	assert.InDelta(t, 10.0/0.7, erlangc.FTE(10, 0.3), 1e-9)

	// Negative shrinkage clamps to zero.
	assert.InDelta(t, 10, erlangc.FTE(10, -0.5), 1e-9)

	// Full shrinkage means no finite staffing level works.
	assert.True(t, math.IsInf(erlangc.FTE(10, 1.0), 1))
	assert.True(t, math.IsInf(erlangc.FTE(1, 1.5), 1))

	assert.Equal(t, 0.0, erlangc.FTE(0, 0.3))
}
