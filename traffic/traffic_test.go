package traffic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staffing-calculator/traffic"
)

func TestIntensity(t *testing.T) {
	tests := map[string]struct {
		volume   float64
		aht      float64
		interval float64
		expected float64
	}{
		"HalfHour_Typical": {
			// 100 contacts x 180s over 1800s = 10 Erlangs.
			volume:   100,
			aht:      180,
			interval: 1800,
			expected: 10,
		},
		"Hourly_Fractional": {
			volume:   25,
			aht:      240,
			interval: 3600,
			expected: 25.0 / 15.0,
		},
		"ZeroVolume": {
			volume:   0,
			aht:      180,
			interval: 1800,
			expected: 0,
		},
		"NegativeVolume": {
			volume:   -5,
			aht:      180,
			interval: 1800,
			expected: 0,
		},
		"ZeroAHT": {
			volume:   100,
			aht:      0,
			interval: 1800,
			expected: 0,
		},
		"NegativeInterval": {
			volume:   100,
			aht:      180,
			interval: -1800,
			expected: 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, traffic.Intensity(tc.volume, tc.aht, tc.interval), 1e-9)
		})
	}
}
