// Package export writes the enriched customer table and the channel
// summary back out as CSV at fixed, reusable paths.
package export

import (
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/model"
)

// Fixed file names under the configured export directory. The same paths
// are reused on every export so download links stay stable.
const (
	EnrichedFileName = "customer_with_metrics.csv"
	SummaryFileName  = "channel_summary.csv"
)

// Paths returns the enriched and summary file paths under dir.
func Paths(dir string) (enriched, summary string) {
	return filepath.Join(dir, EnrichedFileName), filepath.Join(dir, SummaryFileName)
}

// WriteEnriched writes the customer-level CSV (input columns plus roi and
// cltv) to path, overwriting any previous export.
func WriteEnriched(path string, records []model.EnrichedRecord) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "export: marshal enriched records")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write enriched csv")
	}
	return nil
}

// WriteSummary writes the channel summary CSV to path.
func WriteSummary(path string, channels []model.ChannelSummary) error {
	data, err := csvutil.Marshal(channels)
	if err != nil {
		return eris.Wrap(err, "export: marshal channel summary")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write summary csv")
	}
	return nil
}
