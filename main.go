package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/expense-ledger/cmd/add"
	"fjacquet/expense-ledger/cmd/chart"
	"fjacquet/expense-ledger/cmd/export"
	"fjacquet/expense-ledger/cmd/importer"
	"fjacquet/expense-ledger/cmd/report"
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/cmd/serve"
	"fjacquet/expense-ledger/internal/config"
)

func init() {
	// 1. Load .env silently before configuration is read
	_, _ = config.LoadEnv()

	// 2. Initialize root command
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(chart.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
