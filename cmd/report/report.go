// Package report implements the report command
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/chart"
	"fjacquet/expense-ledger/internal/fileutils"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"
	reportpkg "fjacquet/expense-ledger/internal/report"

	"github.com/spf13/cobra"
)

var (
	format    string
	chartPath string
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial report",
	Long: `Print the financial report: available balance, monthly incomes, monthly
expenses with details and overall totals. Use --format json or yaml for a
structured document and --chart to also write the monthly expense chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c.GetService(), cmd.OutOrStdout(), format, chartPath, c.GetLogger())
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", reportpkg.FormatText, "Output format (text, json, yaml)")
	Cmd.Flags().StringVar(&chartPath, "chart", "", "Also write the monthly expense chart as PNG to this file")
}

// Run prints the report to out and optionally writes the chart to chartFile.
// An empty ledger gets a report but no chart.
func Run(ctx context.Context, svc *ledger.Service, out io.Writer, format, chartFile string, logger logging.Logger) error {
	format = strings.ToLower(format)

	var (
		body []byte
		png  []byte
	)
	switch {
	case (format == reportpkg.FormatText || format == "") && chartFile == "":
		lines, err := svc.ReportLines(ctx)
		if err != nil {
			return err
		}
		body = []byte(strings.Join(lines, "\n") + "\n")
	case format == reportpkg.FormatText || format == "":
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}
		body = []byte(strings.Join(snap.Lines, "\n") + "\n")
		png = snap.Chart
	default:
		var err error
		if body, err = svc.RenderReport(ctx, format); err != nil {
			return err
		}
		if chartFile != "" {
			png, err = svc.ExpenseChart(ctx)
			if err != nil && !errors.Is(err, chart.ErrNoData) {
				return err
			}
		}
	}

	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if chartFile == "" {
		return nil
	}
	if png == nil {
		logger.Info("No expenses to chart, skipping chart")
		return nil
	}
	if err := fileutils.WriteFile(chartFile, png); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	logger.Info("Chart written", logging.F(logging.FieldFile, chartFile))
	return nil
}
