package serve_test

import (
	"testing"

	"fjacquet/expense-ledger/cmd/serve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Long, "/api/report")
	assert.Contains(t, serve.Cmd.Long, "/api/chart.png")
	assert.NotNil(t, serve.Cmd.RunE)
}

func TestOptions(t *testing.T) {
	opts := serve.Options(":8080", []string{"*"})
	assert.Equal(t, ":8080", opts.Addr)
	assert.Equal(t, []string{"*"}, opts.AllowOrigins)

	require.NoError(t, serve.Cmd.Flags().Set("addr", "127.0.0.1:9999"))
	defer func() { _ = serve.Cmd.Flags().Set("addr", "") }()

	opts = serve.Options(":8080", nil)
	assert.Equal(t, "127.0.0.1:9999", opts.Addr)
}
