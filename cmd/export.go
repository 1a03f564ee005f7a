package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/export"
)

var exportFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the enriched customer and channel summary CSVs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := loadAndCompute(exportFile)
		if err != nil {
			return err
		}

		enrichedPath, summaryPath := export.Paths(cfg.Export.Dir)
		if err := export.WriteEnriched(enrichedPath, result.Records); err != nil {
			return err
		}
		if err := export.WriteSummary(summaryPath, result.Channels); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("enriched", enrichedPath),
			zap.String("summary", summaryPath),
		)
		fmt.Println(enrichedPath)
		fmt.Println(summaryPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "dataset path (default from config)")
	rootCmd.AddCommand(exportCmd)
}
