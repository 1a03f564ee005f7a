// Package metrics derives per-customer ROI/CLTV and the channel-level
// report from a raw dataset frame.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/dataset"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/model"
)

// RequiredColumns are the input columns the engine needs, matched by exact
// name. Extra columns in the input are ignored.
var RequiredColumns = []string{"customer_id", "channel", "cost", "conversion_rate", "revenue"}

// SchemaError reports every required column missing from an input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: [%s] (expected: [%s])",
		strings.Join(e.Missing, ", "), strings.Join(RequiredColumns, ", "))
}

// Result bundles the three outputs of a compute pass.
type Result struct {
	Records  []model.EnrichedRecord
	Channels []model.ChannelSummary
	Stats    model.SummaryStats
}

// Validate checks that the frame contains all required columns. It returns
// a single *SchemaError naming every missing column, or nil.
func Validate(frame *dataset.Frame) error {
	var missing []string
	for _, col := range RequiredColumns {
		if frame.Column(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Compute validates the frame, derives roi and cltv per row, aggregates
// per channel, and computes the overview stats. The frame is not mutated
// and the result is deterministic for a given frame, including row order.
//
// Zero-cost rows yield non-finite roi/cltv and a zero revenue total yields
// NaN revenue shares; both propagate into the result unchanged.
func Compute(frame *dataset.Frame) (*Result, error) {
	if err := Validate(frame); err != nil {
		return nil, err
	}

	idxID := frame.Column("customer_id")
	idxChannel := frame.Column("channel")
	idxCost := frame.Column("cost")
	idxConv := frame.Column("conversion_rate")
	idxRevenue := frame.Column("revenue")

	records := make([]model.EnrichedRecord, 0, len(frame.Rows))
	for i, row := range frame.Rows {
		cost, err := parseCell(frame.Cell(row, idxCost), "cost", i)
		if err != nil {
			return nil, err
		}
		conv, err := parseCell(frame.Cell(row, idxConv), "conversion_rate", i)
		if err != nil {
			return nil, err
		}
		revenue, err := parseCell(frame.Cell(row, idxRevenue), "revenue", i)
		if err != nil {
			return nil, err
		}

		rec := model.EnrichedRecord{
			CustomerRecord: model.CustomerRecord{
				CustomerID:     frame.Cell(row, idxID),
				Channel:        frame.Cell(row, idxChannel),
				Cost:           cost,
				ConversionRate: conv,
				Revenue:        revenue,
			},
		}
		rec.ROI = model.Metric(revenue / cost)
		rec.CLTV = model.Metric((revenue - cost) * conv / cost)
		records = append(records, rec)
	}

	channels := aggregate(records)

	stats := model.SummaryStats{
		Rows:     len(records),
		Channels: len(channels),
	}
	var roiSum, cltvSum float64
	for _, rec := range records {
		roiSum += float64(rec.ROI)
		cltvSum += float64(rec.CLTV)
	}
	if len(records) > 0 {
		stats.CurrentWeightedROI = model.Metric(roiSum / float64(len(records)))
		stats.CurrentAvgCLTV = model.Metric(cltvSum / float64(len(records)))
	} else {
		stats.CurrentWeightedROI = model.Metric(math.NaN())
		stats.CurrentAvgCLTV = model.Metric(math.NaN())
	}

	return &Result{Records: records, Channels: channels, Stats: stats}, nil
}

// aggregate groups records by channel (first-encounter order), computes
// the per-channel aggregates, sorts by avg_cltv descending with the stable
// sort preserving encounter order on ties, then assigns revenue shares.
func aggregate(records []model.EnrichedRecord) []model.ChannelSummary {
	type acc struct {
		count   int
		cost    float64
		conv    float64
		revenue float64
		roi     float64
		cltv    float64
	}

	order := make([]string, 0)
	groups := make(map[string]*acc)
	for _, rec := range records {
		g, ok := groups[rec.Channel]
		if !ok {
			g = &acc{}
			groups[rec.Channel] = g
			order = append(order, rec.Channel)
		}
		g.count++
		g.cost += rec.Cost
		g.conv += rec.ConversionRate
		g.revenue += rec.Revenue
		g.roi += float64(rec.ROI)
		g.cltv += float64(rec.CLTV)
	}

	channels := make([]model.ChannelSummary, 0, len(order))
	var totalRevenue float64
	for _, name := range order {
		g := groups[name]
		n := float64(g.count)
		channels = append(channels, model.ChannelSummary{
			Channel:      name,
			Customers:    g.count,
			AvgCost:      g.cost / n,
			AvgConvRate:  g.conv / n,
			TotalRevenue: g.revenue,
			AvgROI:       model.Metric(g.roi / n),
			AvgCLTV:      model.Metric(g.cltv / n),
		})
		totalRevenue += g.revenue
	}

	sort.SliceStable(channels, func(i, j int) bool {
		return float64(channels[i].AvgCLTV) > float64(channels[j].AvgCLTV)
	})

	for i := range channels {
		channels[i].RevenueShare = model.Metric(100 * channels[i].TotalRevenue / totalRevenue)
	}

	return channels
}

func parseCell(value, column string, row int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, eris.Errorf("metrics: row %d: invalid %s value %q", row+1, column, value)
	}
	return f, nil
}
