// Package container provides dependency injection for the expense-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/expense-ledger/internal/chart"
	"fjacquet/expense-ledger/internal/common"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/store"
	"fjacquet/expense-ledger/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.Store
	generator *report.Generator
	charts    *chart.Renderer
	csv       *common.CSVCodec
	service   *ledger.Service
}

// NewContainer creates and wires all application dependencies, opening the
// store selected by cfg.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	st, err := store.Open(ctx, store.Options{
		Driver:      cfg.Store.Driver,
		SQLitePath:  cfg.Store.SQLitePath,
		PostgresDSN: cfg.Store.PostgresDSN,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	return NewContainerWithStore(cfg, st, logger)
}

// NewContainerWithStore wires the application around an existing store. The
// container takes ownership of st and closes it in Close.
func NewContainerWithStore(cfg *config.Config, st store.Store, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	delimiter := common.DefaultDelimiter
	if cfg.CSV.Delimiter != "" {
		delimiter = cfg.DelimiterRune()
	}

	generator := report.NewGenerator(report.NewFormatter(cfg.Report.Title), logger)
	charts := chart.NewRenderer(chart.Options{
		Title:  cfg.Chart.Title,
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
	}, logger)
	csv := common.NewCSVCodec(delimiter, logger)
	service := ledger.NewService(st, validation.NewValidator(), generator, charts, csv, logger)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldStoreDriver, cfg.Store.Driver))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     st,
		generator: generator,
		charts:    charts,
		csv:       csv,
		service:   service,
	}, nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the ledger store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetService returns the ledger service.
func (c *Container) GetService() *ledger.Service {
	return c.service
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetChartRenderer returns the expense chart renderer.
func (c *Container) GetChartRenderer() *chart.Renderer {
	return c.charts
}

// GetCSVCodec returns the CSV codec.
func (c *Container) GetCSVCodec() *common.CSVCodec {
	return c.csv
}

// Close releases the store.
func (c *Container) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
