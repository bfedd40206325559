// Package server exposes the ledger over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr string
	// AllowOrigins lists the CORS origins; "*" allows any origin and an
	// empty list disables CORS handling.
	AllowOrigins []string
}

// Server serves the ledger's HTTP API.
type Server struct {
	service *ledger.Service
	logger  logging.Logger
	addr    string
	router  *gin.Engine
}

// New builds a Server and registers its routes.
func New(service *ledger.Service, opts Options, logger logging.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger.WithField("component", "HTTPServer"),
		addr:    opts.Addr,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.AllowOrigins)))
	}

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/report", s.getReport)
	api.GET("/report/text", s.getReportText)
	api.GET("/chart.png", s.getChart)
	api.GET("/transactions", s.listTransactions)
	api.POST("/transactions", s.createTransaction)
	api.POST("/import", s.importCSV)
	api.GET("/export", s.exportCSV)

	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", logging.F("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// requestID reuses the caller's X-Request-ID or assigns a new UUID.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logging.FieldRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("Request handled",
			logging.F(logging.FieldRequestID, c.GetString(logging.FieldRequestID)),
			logging.F(logging.FieldMethod, c.Request.Method),
			logging.F(logging.FieldPath, c.Request.URL.Path),
			logging.F(logging.FieldStatus, c.Writer.Status()),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	}
}
