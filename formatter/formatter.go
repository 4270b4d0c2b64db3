package formatter

import (
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"staffing-calculator/models"
)

// ResultView flattens a StaffingResult for rendering. A view with
// Achievable=false carries only the model name. ASA and FTE are pointers
// because both can be unbounded (+Inf): a nil value renders as null in JSON
// and "unbounded" in text and CSV.
type ResultView struct {
	Model                string   `json:"model"`
	Achievable           bool     `json:"achievable"`
	RequiredAgents       int      `json:"required_agents"`
	TrafficIntensity     float64  `json:"traffic_intensity"`
	ServiceLevelPct      float64  `json:"service_level_pct"`
	ASASeconds           *float64 `json:"asa_seconds"`
	OccupancyPct         float64  `json:"occupancy_pct"`
	FTERequired          *float64 `json:"fte_required"`
	AbandonmentPct       *float64 `json:"abandonment_pct,omitempty"`
	ExpectedAbandonments *float64 `json:"expected_abandonments,omitempty"`
	RetrialPct           *float64 `json:"retrial_pct,omitempty"`
	VirtualTraffic       *float64 `json:"virtual_traffic,omitempty"`
}

// prepareResult extracts and organizes result data for formatting.
func prepareResult(model models.ModelID, res *models.StaffingResult) ResultView {
	view := ResultView{Model: model.Label()}
	if res == nil {
		return view
	}
	view.Achievable = true
	view.RequiredAgents = res.RequiredAgents
	view.TrafficIntensity = res.TrafficIntensity
	view.ServiceLevelPct = res.AchievedServiceLevel * 100
	view.ASASeconds = finite(res.AverageSpeedOfAnswerSeconds)
	view.OccupancyPct = res.Occupancy * 100
	view.FTERequired = finite(res.FTERequired)
	if res.Abandonment != nil {
		view.AbandonmentPct = finite(res.Abandonment.Rate * 100)
		view.ExpectedAbandonments = finite(res.Abandonment.ExpectedContacts)
	}
	if res.Retrial != nil {
		view.RetrialPct = finite(res.Retrial.Probability * 100)
		view.VirtualTraffic = finite(res.Retrial.VirtualTraffic)
	}
	return view
}

// finite returns nil for non-finite values so every view field stays
// serializable.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// FormatText returns the text representation of a single result.
func FormatText(model models.ModelID, res *models.StaffingResult) string {
	view := prepareResult(model, res)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Model             : %s\n", view.Model))
	if !view.Achievable {
		sb.WriteString("Result            : target unachievable within search limits\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Offered load      : %.2f Erlangs\n", view.TrafficIntensity))
	sb.WriteString(fmt.Sprintf("Required agents   : %d\n", view.RequiredAgents))
	sb.WriteString(fmt.Sprintf("Service level     : %.1f%%\n", view.ServiceLevelPct))
	sb.WriteString(fmt.Sprintf("ASA               : %s\n", formatSeconds(view.ASASeconds)))
	sb.WriteString(fmt.Sprintf("Occupancy         : %.1f%%\n", view.OccupancyPct))
	sb.WriteString(fmt.Sprintf("FTE required      : %s\n", formatFTE(view.FTERequired)))
	if view.AbandonmentPct != nil {
		sb.WriteString(fmt.Sprintf("Abandonment       : %.1f%% (%.1f contacts)\n",
			*view.AbandonmentPct, *view.ExpectedAbandonments))
	}
	if view.RetrialPct != nil {
		sb.WriteString(fmt.Sprintf("Retrial           : %.1f%% (virtual load %.2f Erlangs)\n",
			*view.RetrialPct, *view.VirtualTraffic))
	}
	return sb.String()
}

// FormatJSON returns the JSON representation of a single result.
func FormatJSON(model models.ModelID, res *models.StaffingResult) (string, error) {
	view := prepareResult(model, res)
	jsonBytes, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// FormatCSV returns the CSV representation of a single result.
func FormatCSV(model models.ModelID, res *models.StaffingResult) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Write(csvHeader())
	writer.Write(csvRow(prepareResult(model, res)))
	writer.Flush()
	return sb.String()
}

// CompareText renders a three-model comparison as text, one block per
// model in a stable order.
func CompareText(cmp models.Comparison) string {
	var sb strings.Builder
	for i, m := range sortedModels(cmp) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(FormatText(m, cmp.Results[m]))
	}
	return sb.String()
}

// CompareJSON renders a three-model comparison as JSON.
func CompareJSON(cmp models.Comparison) (string, error) {
	views := make([]ResultView, 0, len(cmp.Results))
	for _, m := range sortedModels(cmp) {
		views = append(views, prepareResult(m, cmp.Results[m]))
	}
	jsonBytes, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// CompareCSV renders a three-model comparison as CSV, one row per model.
func CompareCSV(cmp models.Comparison) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Write(csvHeader())
	for _, m := range sortedModels(cmp) {
		writer.Write(csvRow(prepareResult(m, cmp.Results[m])))
	}
	writer.Flush()
	return sb.String()
}

func csvHeader() []string {
	return []string{
		"Model", "Achievable", "Offered Load", "Required Agents",
		"Service Level %", "ASA Seconds", "Occupancy %", "FTE Required",
		"Abandonment %", "Expected Abandonments", "Retrial %", "Virtual Traffic",
	}
}

func csvRow(view ResultView) []string {
	if !view.Achievable {
		return []string{view.Model, "No", "", "", "", "", "", "", "", "", "", ""}
	}
	row := []string{
		view.Model,
		"Yes",
		fmt.Sprintf("%.4f", view.TrafficIntensity),
		fmt.Sprintf("%d", view.RequiredAgents),
		fmt.Sprintf("%.2f", view.ServiceLevelPct),
		formatSeconds(view.ASASeconds),
		fmt.Sprintf("%.2f", view.OccupancyPct),
		formatFTE(view.FTERequired),
	}
	for _, opt := range []*float64{view.AbandonmentPct, view.ExpectedAbandonments, view.RetrialPct, view.VirtualTraffic} {
		if opt != nil {
			row = append(row, fmt.Sprintf("%.2f", *opt))
		} else {
			row = append(row, "")
		}
	}
	return row
}

func formatSeconds(v *float64) string {
	if v == nil {
		return "unbounded"
	}
	return fmt.Sprintf("%.1fs", *v)
}

func formatFTE(v *float64) string {
	if v == nil {
		return "unbounded"
	}
	return fmt.Sprintf("%.1f", *v)
}

// sortedModels returns the comparison's model ids in a stable display
// order: known models first in C/A/X order, then anything else sorted.
func sortedModels(cmp models.Comparison) []models.ModelID {
	known := []models.ModelID{models.ModelErlangC, models.ModelErlangA, models.ModelErlangX}
	ordered := make([]models.ModelID, 0, len(cmp.Results))
	for _, m := range known {
		if _, exists := cmp.Results[m]; exists {
			ordered = append(ordered, m)
		}
	}
	var rest []string
	for m := range cmp.Results {
		if !m.Valid() {
			rest = append(rest, string(m))
		}
	}
	sort.Strings(rest)
	for _, m := range rest {
		ordered = append(ordered, models.ModelID(m))
	}
	return ordered
}
