// Package model defines the typed records flowing between the dataset
// loader, the metrics engine, the reallocation simulator, and the export
// and HTTP layers. JSON and CSV tags match the column names of the input
// and export files.
package model

// CustomerRecord is one validated row of the acquisition dataset.
type CustomerRecord struct {
	CustomerID     string  `json:"customer_id" csv:"customer_id"`
	Channel        string  `json:"channel" csv:"channel"`
	Cost           float64 `json:"cost" csv:"cost"`
	ConversionRate float64 `json:"conversion_rate" csv:"conversion_rate"`
	Revenue        float64 `json:"revenue" csv:"revenue"`
}

// EnrichedRecord is a CustomerRecord with the two derived metrics:
//
//	roi  = revenue / cost
//	cltv = (revenue - cost) * conversion_rate / cost
//
// Both are non-finite when cost is zero.
type EnrichedRecord struct {
	CustomerRecord
	ROI  Metric `json:"roi" csv:"roi"`
	CLTV Metric `json:"cltv" csv:"cltv"`
}
