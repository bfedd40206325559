// Package export implements the export command
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all transactions to CSV",
	Long: `Export every stored transaction, in insertion order, as CSV with the
columns Date, Type, Category and Amount. Without --output the CSV goes to
standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c.GetService(), cmd.OutOrStdout(), cmd.ErrOrStderr(), output)
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "CSV output file (default: stdout)")
}

// Run writes the ledger to path, or to out when path is empty or "-".
// The summary line goes to status.
func Run(ctx context.Context, svc *ledger.Service, out, status io.Writer, path string) error {
	if path == "" || path == "-" {
		_, err := svc.Export(ctx, out)
		return err
	}
	n, err := svc.ExportFile(ctx, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(status, "Exported %d transactions to %s\n", n, path)
	return err
}
