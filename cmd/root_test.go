package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/metrics"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/model"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"report", "simulate", "export", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cltv-dashboard", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestReportCommand_Flags(t *testing.T) {
	flag := reportCmd.Flags().Lookup("file")
	require.NotNil(t, flag, "report command should have --file flag")

	jsonFlag := reportCmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag, "report command should have --json flag")
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestSimulateCommand_Flags(t *testing.T) {
	flag := simulateCmd.Flags().Lookup("alloc")
	require.NotNil(t, flag, "simulate command should have --alloc flag")
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestFormatChannelTable(t *testing.T) {
	result := &metrics.Result{
		Channels: []model.ChannelSummary{
			{
				Channel:      "email",
				Customers:    2,
				AvgCost:      10,
				AvgConvRate:  0.5,
				TotalRevenue: 40,
				AvgROI:       2,
				AvgCLTV:      0.5,
				RevenueShare: 100,
			},
		},
	}

	var buf bytes.Buffer
	formatChannelTable(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "CHANNEL")
	assert.Contains(t, out, "AVG_CLTV")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "100.00")
}
