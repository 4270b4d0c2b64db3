package models_test

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffing-calculator/models"
)

func TestStaffingResultMarshalUnbounded(t *testing.T) {
	res := models.StaffingResult{
		CalculationID:               "calc-1",
		Model:                       models.ModelErlangC,
		TrafficIntensity:            10,
		RequiredAgents:              14,
		AchievedServiceLevel:        0.888,
		AverageSpeedOfAnswerSeconds: math.Inf(1),
		FTERequired:                 math.Inf(1),
		Retrial: &models.RetrialFigures{
			Probability:    0.7,
			VirtualTraffic: math.Inf(1),
		},
	}

	raw, err := json.Marshal(&res)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, `"fte_required":null`)
	assert.Contains(t, out, `"average_speed_of_answer_seconds":null`)
	assert.Contains(t, out, `"virtual_traffic":null`)
	assert.Contains(t, out, `"required_agents":14`)
}

func TestStaffingResultMarshalFinite(t *testing.T) {
	res := models.StaffingResult{
		Model:                       models.ModelErlangA,
		AverageSpeedOfAnswerSeconds: 6.2,
		FTERequired:                 20,
	}

	raw, err := json.Marshal(&res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.InDelta(t, 6.2, decoded["average_speed_of_answer_seconds"].(float64), 1e-9)
	assert.InDelta(t, 20, decoded["fte_required"].(float64), 1e-9)
}
