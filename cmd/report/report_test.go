package report_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/expense-ledger/cmd/report"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, txs ...models.Transaction) (*ledger.Service, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithStore(&config.Config{}, store.NewMockStore(txs...), logger)
	require.NoError(t, err)
	return c.GetService(), logger
}

func expense(date, name, amount string) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{Date: d, CategoryType: models.Expense, CategoryName: name, Amount: decimal.RequireFromString(amount)}
}

func TestReportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "report", report.Cmd.Use)
	assert.Contains(t, report.Cmd.Short, "financial report")
	assert.NotNil(t, report.Cmd.RunE)

	formatFlag := report.Cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.NotNil(t, report.Cmd.Flags().Lookup("chart"))
}

func TestRun_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "text", want: "Financial Report\nAvailable Balance: -12.00\n"},
		{format: "json", want: `"available_balance": "-12.00"`},
		{format: "YAML", want: `available_balance: "-12.00"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			svc, _ := newService(t, expense("2024-05-01", "Coffee", "12"))
			var out bytes.Buffer
			require.NoError(t, report.Run(context.Background(), svc, &out, tt.format, "", logging.NewMockLogger()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	svc, _ := newService(t)
	var out bytes.Buffer
	err := report.Run(context.Background(), svc, &out, "xml", "", logging.NewMockLogger())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_WritesChart(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			svc, _ := newService(t, expense("2024-05-01", "Coffee", "12"))
			path := filepath.Join(t.TempDir(), "chart.png")

			var out bytes.Buffer
			require.NoError(t, report.Run(context.Background(), svc, &out, format, path, logging.NewMockLogger()))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
		})
	}
}

func TestRun_SkipsChartWithoutExpenses(t *testing.T) {
	svc, _ := newService(t)
	path := filepath.Join(t.TempDir(), "chart.png")
	logger := logging.NewMockLogger()

	var out bytes.Buffer
	require.NoError(t, report.Run(context.Background(), svc, &out, "text", path, logger))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, logger.HasEntry("INFO", "No expenses to chart, skipping chart"))
	assert.Contains(t, out.String(), "Overall Expenses: 0.00")
}

func TestRun_RendersChartOnlyWhenRequested(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		chartFile bool
		rendered  bool
	}{
		{name: "text without chart", format: "text", rendered: false},
		{name: "json without chart", format: "json", rendered: false},
		{name: "text with chart", format: "text", chartFile: true, rendered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logger := newService(t, expense("2024-05-01", "Coffee", "12"))
			path := ""
			if tt.chartFile {
				path = filepath.Join(t.TempDir(), "chart.png")
			}

			var out bytes.Buffer
			require.NoError(t, report.Run(context.Background(), svc, &out, tt.format, path, logging.NewMockLogger()))

			assert.Equal(t, tt.rendered, logger.HasEntry("DEBUG", "Rendered expense chart"))
			assert.NotEmpty(t, out.String())
		})
	}
}
