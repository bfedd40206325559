// Package serve implements the serve command
package serve

import (
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report, chart and entry form over HTTP",
	Long: `Serve the ledger over HTTP:

  GET  /api/report          report document (?format=yaml for YAML)
  GET  /api/report/text     report lines as plain text
  GET  /api/chart.png       monthly expense chart (204 when there are no expenses)
  GET  /api/transactions    all transactions
  POST /api/transactions    add a transaction
  POST /api/import          import a CSV upload (multipart field "file")
  GET  /api/export          download all transactions as CSV`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		cfg := c.GetConfig()
		if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
			gin.SetMode(gin.ReleaseMode)
		}

		opts := Options(cfg.Server.Addr, cfg.Server.AllowOrigins)
		return server.New(c.GetService(), opts, c.GetLogger()).Run(cmd.Context())
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
}

// Options builds server options, letting the --addr flag win over config.
func Options(configAddr string, origins []string) server.Options {
	listen := configAddr
	if addr != "" {
		listen = addr
	}
	return server.Options{Addr: listen, AllowOrigins: origins}
}
