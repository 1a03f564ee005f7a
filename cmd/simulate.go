package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/simulator"
)

var (
	simulateFile  string
	simulateAlloc string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate reallocating spend across channels",
	Long: `Computes the channel report, then projects blended ROI/CLTV under a
target allocation and compares it to the current revenue-share blend.

The allocation is a JSON object of raw channel weights, for example:
  cltv-dashboard simulate --alloc '{"email marketing": 20, "referral": 35, "social media": 45}'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := loadAndCompute(simulateFile)
		if err != nil {
			return err
		}

		text, sim, err := simulator.Simulate(result.Channels, simulateAlloc)
		if err != nil {
			// Recovered failures print inline and leave exit status clean.
			var parseErr *simulator.AllocationParseError
			if errors.As(err, &parseErr) || errors.Is(err, simulator.ErrNoReport) {
				fmt.Fprintln(os.Stdout, text)
				return nil
			}
			return err
		}

		fmt.Fprintln(os.Stdout, text)

		detail, err := json.MarshalIndent(sim, "", "  ")
		if err != nil {
			return eris.Wrap(err, "simulate: encode result")
		}
		fmt.Fprintln(os.Stdout, string(detail))
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateFile, "file", "", "dataset path (default from config)")
	simulateCmd.Flags().StringVar(&simulateAlloc, "alloc", "", "allocation JSON: channel name to raw weight")
	_ = simulateCmd.MarkFlagRequired("alloc")
	rootCmd.AddCommand(simulateCmd)
}
