// Package server exposes the linter over HTTP
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/toyz/apilint/internal/cli"
	"github.com/toyz/apilint/internal/config"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/utils"
)

// RunIDHeader carries the id of a lint run
const RunIDHeader = "X-Run-ID"

// Options override the server configuration for one request
type Options struct {
	AllowGoogle           *bool    `json:"allow_google,omitempty"`
	ShowNoticed           *bool    `json:"show_noticed,omitempty"`
	DeprecationAnnotation string   `json:"deprecation_annotation,omitempty"`
	LibraryVersion        *int     `json:"library_version,omitempty"`
	FilterErrors          []string `json:"filter_errors,omitempty"`
	AllowedPackages       []string `json:"allowed_packages,omitempty"`
	DisabledRules         []string `json:"disabled_rules,omitempty"`
	DeprecationsAtBirth   bool     `json:"deprecations_at_birth,omitempty"`
}

// LintRequest is the body of POST /v1/lint
type LintRequest struct {
	Current  string   `json:"current" binding:"required"`
	Previous string   `json:"previous,omitempty"`
	APIMap   []string `json:"api_map,omitempty"`
	Options  Options  `json:"options"`
}

// LintResponse is the result document of one run
type LintResponse struct {
	RunID       string        `json:"run_id"`
	Status      report.Status `json:"status"`
	ExitCode    int           `json:"exit_code"`
	ParseErrors []string      `json:"parse_errors,omitempty"`
	*report.Document
}

// Server serves lint runs. Every request gets its own runner.
type Server struct {
	engine      *gin.Engine
	base        *config.Config
	diagnostics *utils.DiagnosticSystem
}

// New creates a server whose runs start from the base configuration
func New(base *config.Config, diagnostics *utils.DiagnosticSystem) *Server {
	if base == nil {
		base = config.Default()
	}
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}

	s := &Server{engine: gin.New(), base: base, diagnostics: diagnostics}
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.engine.GET("/healthz", s.health)
	v1 := s.engine.Group("/v1")
	v1.POST("/lint", s.lint)
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.diagnostics.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.diagnostics.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fail(c *gin.Context, err error) {
	httpErr := toHTTPError(err)
	c.AbortWithStatusJSON(httpErr.StatusCode, httpErr)
}

// configFor applies the request options to a copy of the base config
func (s *Server) configFor(opts Options) *config.Config {
	cfg := *s.base
	if opts.AllowGoogle != nil {
		cfg.AllowGoogle = *opts.AllowGoogle
	}
	if opts.ShowNoticed != nil {
		cfg.Output.ShowNoticed = *opts.ShowNoticed
	}
	if opts.DeprecationAnnotation != "" {
		cfg.DeprecationAnnotation = opts.DeprecationAnnotation
	}
	if opts.LibraryVersion != nil {
		cfg.LibraryVersion = opts.LibraryVersion
	}
	if opts.FilterErrors != nil {
		cfg.FilterErrors = opts.FilterErrors
	}
	if opts.AllowedPackages != nil {
		cfg.AllowedPackages = opts.AllowedPackages
	}
	if opts.DisabledRules != nil {
		cfg.DisabledRules = opts.DisabledRules
	}
	return &cfg
}

func (s *Server) lint(c *gin.Context) {
	var req LintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, ErrBadRequest(err.Error()))
		return
	}

	runID := uuid.NewString()
	c.Header(RunIDHeader, runID)

	runner, err := cli.NewRunner(s.configFor(req.Options), s.diagnostics)
	if err != nil {
		s.fail(c, err)
		return
	}

	lintReq := cli.Request{
		Current: cli.StringDump("current.txt", req.Current),
		APIMap:  parser.APIMap(req.APIMap),
	}
	if req.Previous != "" {
		lintReq.Previous = cli.StringDump("previous.txt", req.Previous)
	}

	resp := LintResponse{RunID: runID}
	if req.Options.DeprecationsAtBirth {
		store, err := runner.DeprecationsAtBirth(c.Request.Context(), lintReq)
		if err != nil {
			s.fail(c, err)
			return
		}
		resp.Document = report.NewDocument()
		resp.Document.Append(store, report.NewStore(), report.Noticed{}, report.Noticed{})
		resp.Status = report.Evaluate(store, report.NewStore(), false)
		resp.ExitCode = resp.Status.ExitCode()
		c.JSON(http.StatusOK, resp)
		return
	}

	res, err := runner.Run(c.Request.Context(), lintReq)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp.Status = res.Status
	resp.ExitCode = res.Status.ExitCode()
	resp.Document = runner.Document(res)
	resp.ParseErrors = parseErrorMessages(res.ParseErrors)

	s.diagnostics.Verbose("run %s finished: %s", runID, res.Status)
	c.JSON(http.StatusOK, resp)
}

func parseErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var messages []string
	var walk func(error)
	walk = func(err error) {
		if multi, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range multi.Unwrap() {
				walk(inner)
			}
			return
		}
		messages = append(messages, err.Error())
	}
	walk(err)
	return messages
}
