// Package add implements the add command
package add

import (
	"context"
	"fmt"
	"io"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/spf13/cobra"
)

var (
	name   string
	amount string
	date   string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add <income|expense>",
	Short: "Record an income or an expense",
	Long: `Record a dated income or expense. The category name must not be empty,
the amount must be positive with at most two decimals and the date must be
YYYY-MM-DD. All three flags are required.`,
	Example: `  expense-ledger add expense --name Groceries --amount 42.80 --date 2024-03-02
  expense-ledger add income -n Salary -a 3200 -d 2024-03-25`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"income", "expense"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		in := validation.Input{
			CategoryType: args[0],
			CategoryName: name,
			Amount:       amount,
			Date:         date,
		}
		return Run(cmd.Context(), c.GetService(), cmd.OutOrStdout(), in)
	},
}

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "", "Category name")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 12.50")
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD")

	for _, flag := range []string{"name", "amount", "date"} {
		_ = Cmd.MarkFlagRequired(flag)
	}
}

// Run validates in, stores it and prints a confirmation.
func Run(ctx context.Context, svc *ledger.Service, out io.Writer, in validation.Input) error {
	tx, err := svc.AddTransaction(ctx, in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Added %s #%d: %s %s on %s\n",
		tx.CategoryType, tx.ID, tx.CategoryName, models.FormatMoney(tx.Amount), dateutils.ToISODate(tx.Date))
	return err
}
