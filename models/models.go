// Package models holds the shared value types exchanged between the staffing
// engines, the dispatcher and the boundary layers. Every type is a plain
// value constructed per calculation; nothing here carries identity or
// mutable state.
package models

import (
	"math"

	json "github.com/goccy/go-json"
)

// ModelID selects one of the three staffing models.
type ModelID string

const (
	// ModelErlangC assumes customers wait indefinitely.
	ModelErlangC ModelID = "erlang_c"
	// ModelErlangA adds abandonment under limited patience.
	ModelErlangA ModelID = "erlang_a"
	// ModelErlangX adds retrial feedback on top of abandonment.
	ModelErlangX ModelID = "erlang_x"
)

// Valid reports whether m names a known model.
func (m ModelID) Valid() bool {
	switch m {
	case ModelErlangC, ModelErlangA, ModelErlangX:
		return true
	}
	return false
}

// Label returns the human-readable model name.
func (m ModelID) Label() string {
	switch m {
	case ModelErlangC:
		return "Erlang C"
	case ModelErlangA:
		return "Erlang A"
	case ModelErlangX:
		return "Erlang X"
	}
	return string(m)
}

// WorkloadParameters describes the offered workload for one interval.
type WorkloadParameters struct {
	// Volume is the number of contacts offered during the interval.
	Volume float64 `json:"volume"`
	// AHTSeconds is the average handle time per contact.
	AHTSeconds float64 `json:"aht_seconds"`
	// IntervalSeconds is the interval length.
	IntervalSeconds float64 `json:"interval_seconds"`
}

// ServiceTarget describes the service quality the staffing level must meet.
// Fractional fields accept either fractions (0-1) or user-facing
// percentages (0-100); the dispatcher normalizes them.
type ServiceTarget struct {
	ServiceLevel     float64 `json:"service_level"`
	ThresholdSeconds float64 `json:"threshold_seconds"`
	MaxOccupancy     float64 `json:"max_occupancy"`
	Shrinkage        float64 `json:"shrinkage"`
}

// PatienceParameters carries the impatience inputs used by the Erlang A and
// Erlang X models.
type PatienceParameters struct {
	AveragePatienceSeconds float64 `json:"average_patience_seconds"`
}

// AbandonmentFigures are the abandonment outputs of the A and X models.
type AbandonmentFigures struct {
	// Rate is the fraction of offered contacts expected to abandon.
	Rate float64 `json:"rate"`
	// ExpectedContacts is Rate scaled to the interval volume.
	ExpectedContacts float64 `json:"expected_contacts"`
}

// RetrialFigures are the feedback-loop outputs of the X model.
type RetrialFigures struct {
	Probability    float64 `json:"probability"`
	VirtualTraffic float64 `json:"virtual_traffic"`
	Iterations     int     `json:"iterations"`
	Converged      bool    `json:"converged"`
}

// MarshalJSON renders a diverged virtual load (+Inf) as null; JSON has no
// representation for non-finite numbers.
func (f RetrialFigures) MarshalJSON() ([]byte, error) {
	type plain RetrialFigures
	return json.Marshal(struct {
		plain
		VirtualTraffic *float64 `json:"virtual_traffic"`
	}{plain(f), finiteOrNil(f.VirtualTraffic)})
}

// StaffingResult is the flat outcome of one staffing calculation. A nil
// *StaffingResult from the dispatcher means the target was unachievable
// within the search limits; a RequiredAgents of 0 on a non-nil result means
// there was no load to staff for.
type StaffingResult struct {
	CalculationID    string  `json:"calculation_id"`
	Model            ModelID `json:"model"`
	DurationMillis   float64 `json:"duration_ms"`
	TrafficIntensity float64 `json:"traffic_intensity"`

	RequiredAgents              int     `json:"required_agents"`
	AchievedServiceLevel        float64 `json:"achieved_service_level"`
	AverageSpeedOfAnswerSeconds float64 `json:"average_speed_of_answer_seconds"`
	Occupancy                   float64 `json:"occupancy"`
	FTERequired                 float64 `json:"fte_required"`

	Abandonment *AbandonmentFigures `json:"abandonment,omitempty"`
	Retrial     *RetrialFigures     `json:"retrial,omitempty"`
}

// MarshalJSON renders unbounded wait and FTE figures (+Inf, e.g. full
// shrinkage) as null instead of failing the encode: infinite sentinels are
// valid outcomes and must survive the JSON boundary.
func (r StaffingResult) MarshalJSON() ([]byte, error) {
	type plain StaffingResult
	return json.Marshal(struct {
		plain
		AverageSpeedOfAnswerSeconds *float64 `json:"average_speed_of_answer_seconds"`
		FTERequired                 *float64 `json:"fte_required"`
	}{
		plain:                       plain(r),
		AverageSpeedOfAnswerSeconds: finiteOrNil(r.AverageSpeedOfAnswerSeconds),
		FTERequired:                 finiteOrNil(r.FTERequired),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Comparison holds the outcome of running all three models over the same
// workload. A nil entry in Results means that model could not meet the
// target.
type Comparison struct {
	Workload WorkloadParameters          `json:"workload"`
	Target   ServiceTarget               `json:"target"`
	Patience *PatienceParameters         `json:"patience,omitempty"`
	Results  map[ModelID]*StaffingResult `json:"results"`
}
