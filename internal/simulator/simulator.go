// Package simulator projects blended ROI/CLTV under a target spend
// allocation and compares it against the current revenue-share blend.
package simulator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/model"
)

// epsilon guards the percentage-change division against an exactly zero
// current blend.
const epsilon = 1e-9

// ErrNoReport is returned when no channel report has been loaded yet.
// It is a recovered condition, not a fatal one.
var ErrNoReport = eris.New("simulator: no channel report loaded")

// AllocationParseError reports a malformed allocation blob. Recovered:
// the caller shows the message inline and keeps all existing state.
type AllocationParseError struct {
	Err error
}

func (e *AllocationParseError) Error() string {
	return "simulator: invalid allocation JSON: " + e.Err.Error()
}

func (e *AllocationParseError) Unwrap() error { return e.Err }

// Simulate parses the allocation blob (a JSON object mapping channel name
// to a non-negative weight in arbitrary units), normalizes it to sum to
// 1.0, and projects the blended ROI and CLTV over the report's channels.
// Channels absent from the allocation get weight 0; allocation keys absent
// from the report are ignored. The "current" blend weights each channel by
// its historical revenue share.
//
// On success it returns the two-line summary text and the rounded result.
// On a recovered failure (no report, malformed blob) it returns a
// user-facing message, a nil result, and the recovered error.
func Simulate(report []model.ChannelSummary, allocJSON string) (string, *model.SimulationResult, error) {
	if len(report) == 0 {
		return "Load data first.", nil, ErrNoReport
	}

	alloc, err := parseAllocation(allocJSON)
	if err != nil {
		return "Invalid allocation JSON.", nil, err
	}

	// Normalize to 1.0. A zero sum is replaced by 1.0 so an all-zero
	// allocation projects zero blended metrics instead of dividing by zero.
	var sum float64
	for _, v := range alloc {
		sum += v
	}
	if sum == 0 {
		sum = 1.0
	}
	weights := make(map[string]float64, len(alloc))
	for name, v := range alloc {
		weights[name] = v / sum
	}

	var newROI, newCLTV, curROI, curCLTV float64
	for _, ch := range report {
		w := weights[ch.Channel] // missing channels weigh 0
		newROI += float64(ch.AvgROI) * w
		newCLTV += float64(ch.AvgCLTV) * w

		cw := float64(ch.RevenueShare) / 100.0
		curROI += float64(ch.AvgROI) * cw
		curCLTV += float64(ch.AvgCLTV) * cw
	}

	result := &model.SimulationResult{
		CurrentWeightedROI:  round2(curROI),
		NewWeightedROI:      round2(newROI),
		ROIChangePct:        round2(100 * (newROI - curROI) / (curROI + epsilon)),
		CurrentWeightedCLTV: round2(curCLTV),
		NewWeightedCLTV:     round2(newCLTV),
		CLTVChangePct:       round2(100 * (newCLTV - curCLTV) / (curCLTV + epsilon)),
	}

	text := fmt.Sprintf(
		"ROI:  %.2f -> %.2f (%+.2f%%)\nCLTV: %.2f -> %.2f (%+.2f%%)",
		result.CurrentWeightedROI, result.NewWeightedROI, result.ROIChangePct,
		result.CurrentWeightedCLTV, result.NewWeightedCLTV, result.CLTVChangePct,
	)

	return text, result, nil
}

func parseAllocation(blob string) (map[string]float64, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return map[string]float64{}, nil
	}

	var alloc map[string]float64
	if err := json.Unmarshal([]byte(blob), &alloc); err != nil {
		return nil, &AllocationParseError{Err: err}
	}
	if alloc == nil {
		alloc = map[string]float64{}
	}
	return alloc, nil
}

func round2(f float64) model.Metric {
	return model.Metric(math.Round(f*100) / 100)
}
