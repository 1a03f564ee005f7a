package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_MarshalJSON(t *testing.T) {
	cases := []struct {
		value    float64
		expected string
	}{
		{1.5, "1.5"},
		{0, "0"},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(Metric(tc.value))
		require.NoError(t, err)
		assert.Equal(t, tc.expected, string(data))
	}
}

func TestMetric_UnmarshalJSON_RoundTrip(t *testing.T) {
	for _, v := range []float64{1.5, -0.25, math.Inf(1), math.Inf(-1)} {
		data, err := json.Marshal(Metric(v))
		require.NoError(t, err)

		var back Metric
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, v, float64(back))
	}

	var nan Metric
	require.NoError(t, json.Unmarshal([]byte(`"NaN"`), &nan))
	assert.True(t, math.IsNaN(float64(nan)))
}

func TestMetric_UnmarshalJSON_Invalid(t *testing.T) {
	var m Metric
	require.Error(t, json.Unmarshal([]byte(`"not a number"`), &m))
}

func TestEnrichedRecord_JSONFieldNames(t *testing.T) {
	rec := EnrichedRecord{
		CustomerRecord: CustomerRecord{
			CustomerID:     "1",
			Channel:        "email",
			Cost:           10,
			ConversionRate: 0.5,
			Revenue:        20,
		},
		ROI:  2,
		CLTV: 0.5,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"customer_id", "channel", "cost", "conversion_rate", "revenue", "roi", "cltv"} {
		assert.Contains(t, fields, key)
	}
}

func TestChannelSummary_NonFiniteEncodes(t *testing.T) {
	ch := ChannelSummary{
		Channel:      "email",
		Customers:    1,
		AvgROI:       Metric(math.Inf(1)),
		AvgCLTV:      Metric(math.NaN()),
		RevenueShare: Metric(math.NaN()),
	}

	data, err := json.Marshal(ch)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"avg_roi":"+Inf"`)
	assert.Contains(t, string(data), `"revenue_share_%":"NaN"`)
}
