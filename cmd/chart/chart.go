// Package chart implements the chart command
package chart

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/expense-ledger/cmd/root"
	chartpkg "fjacquet/expense-ledger/internal/chart"
	"fjacquet/expense-ledger/internal/fileutils"
	"fjacquet/expense-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the chart command
var Cmd = &cobra.Command{
	Use:   "chart",
	Short: "Write the monthly expense bar chart as PNG",
	Long: `Write a PNG bar chart with one bar per month holding the month's total
expenses, in the same month order as the report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c.GetService(), cmd.OutOrStdout(), output)
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "expenses.png", "PNG output file")
}

// Run renders the chart into path. With no expenses it writes nothing and
// says so.
func Run(ctx context.Context, svc *ledger.Service, out io.Writer, path string) error {
	png, err := svc.ExpenseChart(ctx)
	if errors.Is(err, chartpkg.ErrNoData) {
		_, err = fmt.Fprintln(out, "No expenses recorded, no chart written.")
		return err
	}
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, png); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	_, err = fmt.Fprintf(out, "Chart written to %s\n", path)
	return err
}
