package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/dataset"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/metrics"
)

var (
	reportFile string
	reportJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute and print the channel performance report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := loadAndCompute(reportFile)
		if err != nil {
			return err
		}

		if reportJSON {
			out := map[string]any{
				"stats":    result.Stats,
				"channels": result.Channels,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(out), "report: encode json")
		}

		fmt.Printf("rows: %d  channels: %d  current_weighted_roi: %.2f  current_avg_cltv: %.2f\n\n",
			result.Stats.Rows, result.Stats.Channels,
			result.Stats.CurrentWeightedROI, result.Stats.CurrentAvgCLTV)
		formatChannelTable(os.Stdout, result)
		return nil
	},
}

// loadAndCompute resolves the dataset path (flag, else configured
// default), parses it, and runs the metrics engine.
func loadAndCompute(explicit string) (*metrics.Result, error) {
	path, err := cfg.ResolveDataset(explicit)
	if err != nil {
		return nil, err
	}

	frame, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	result, err := metrics.Compute(frame)
	if err != nil {
		return nil, err
	}

	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", result.Stats.Rows),
		zap.Int("channels", result.Stats.Channels),
	)
	return result, nil
}

func formatChannelTable(w io.Writer, result *metrics.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tCUSTOMERS\tAVG_COST\tAVG_CONV_RATE\tTOTAL_REVENUE\tAVG_ROI\tAVG_CLTV\tREVENUE_SHARE_%")
	for _, ch := range result.Channels {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.4f\t%.2f\t%.4f\t%.4f\t%.2f\n",
			ch.Channel, ch.Customers, ch.AvgCost, ch.AvgConvRate,
			ch.TotalRevenue, ch.AvgROI, ch.AvgCLTV, ch.RevenueShare)
	}
	tw.Flush()
}

func init() {
	reportCmd.Flags().StringVar(&reportFile, "file", "", "dataset path (default from config)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(reportCmd)
}
