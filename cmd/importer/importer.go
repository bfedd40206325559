// Package importer implements the import command
package importer

import (
	"context"
	"fmt"
	"io"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

var input string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a CSV file",
	Long: `Import transactions from a CSV file with the columns Date, Type,
Category and Amount. Every row is validated first; if any row is invalid
nothing is imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c.GetService(), cmd.OutOrStdout(), input)
	},
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to import")
	_ = Cmd.MarkFlagRequired("input")
}

// Run imports the CSV file at path.
func Run(ctx context.Context, svc *ledger.Service, out io.Writer, path string) error {
	stored, err := svc.ImportFile(ctx, path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	_, err = fmt.Fprintf(out, "Imported %d transactions from %s\n", len(stored), path)
	return err
}
