package model

// ChannelSummary is one row of the channel-level report. avg_roi and
// avg_cltv are means of the per-row derived values (mean of ratios), not
// ratios of the aggregated totals.
type ChannelSummary struct {
	Channel      string  `json:"channel" csv:"channel"`
	Customers    int     `json:"customers" csv:"customers"`
	AvgCost      float64 `json:"avg_cost" csv:"avg_cost"`
	AvgConvRate  float64 `json:"avg_conv_rate" csv:"avg_conv_rate"`
	TotalRevenue float64 `json:"total_revenue" csv:"total_revenue"`
	AvgROI       Metric  `json:"avg_roi" csv:"avg_roi"`
	AvgCLTV      Metric  `json:"avg_cltv" csv:"avg_cltv"`
	RevenueShare Metric  `json:"revenue_share_%" csv:"revenue_share_%"`
}

// SummaryStats are the dataset-level overview figures. The two "current"
// metrics are unweighted row means, which is a different baseline from
// the revenue-share blend used by the simulator.
type SummaryStats struct {
	Rows               int    `json:"rows"`
	Channels           int    `json:"channels"`
	CurrentWeightedROI Metric `json:"current_weighted_roi"`
	CurrentAvgCLTV     Metric `json:"current_avg_cltv"`
}

// SimulationResult is the structured outcome of a reallocation simulation.
// All values are rounded to 2 decimals for display. The "current" blends
// here are weighted by each channel's historical revenue share.
type SimulationResult struct {
	CurrentWeightedROI  Metric `json:"current_weighted_roi"`
	NewWeightedROI      Metric `json:"new_weighted_roi"`
	ROIChangePct        Metric `json:"roi_change_%"`
	CurrentWeightedCLTV Metric `json:"current_weighted_cltv"`
	NewWeightedCLTV     Metric `json:"new_weighted_cltv"`
	CLTVChangePct       Metric `json:"cltv_change_%"`
}
