package chart_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/expense-ledger/cmd/chart"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCommand_Metadata(t *testing.T) {
	assert.Equal(t, "chart", chart.Cmd.Use)
	assert.Contains(t, chart.Cmd.Short, "PNG")
	f := chart.Cmd.Flags().Lookup("output")
	require.NotNil(t, f)
	assert.Equal(t, "o", f.Shorthand)
	assert.Equal(t, "expenses.png", f.DefValue)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		txs       []models.Transaction
		wantFile  bool
		wantPrint string
	}{
		{
			name: "with expenses",
			txs: []models.Transaction{{
				Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), CategoryType: models.Expense,
				CategoryName: "Rent", Amount: decimal.RequireFromString("900"),
			}},
			wantFile:  true,
			wantPrint: "Chart written to",
		},
		{
			name:      "empty ledger",
			wantPrint: "No expenses recorded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := container.NewContainerWithStore(&config.Config{}, store.NewMockStore(tt.txs...), logging.NewMockLogger())
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "out.png")

			var out bytes.Buffer
			require.NoError(t, chart.Run(context.Background(), c.GetService(), &out, path))
			assert.Contains(t, out.String(), tt.wantPrint)

			_, statErr := os.Stat(path)
			assert.Equal(t, tt.wantFile, statErr == nil)
		})
	}
}
