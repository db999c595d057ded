package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kirigami/pkg/buildinfo"
	"github.com/matzehuels/kirigami/pkg/cache"
	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	pkgio "github.com/matzehuels/kirigami/pkg/io"
	"github.com/matzehuels/kirigami/pkg/observability"
	"github.com/matzehuels/kirigami/pkg/pipeline"
)

const (
	defaultAddr     = "localhost:8080"
	maxPatternBytes = 4 << 20
	shutdownTimeout = 10 * time.Second
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

Endpoints:
  GET  /healthz                 liveness probe
  POST /render?format=svg|json  render the JSON pattern in the request body

Render options are passed as query parameters: base_depth, cell_size,
page_size, preserve_aspect, sorted and scale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags, cache.NewScopedKeyer(nil, "serve:"))
			if err != nil {
				return err
			}
			defer runner.Close()
			return runServer(ctx, addr, newServer(runner, loggerFromContext(ctx)))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	flags.register(cmd)

	return cmd
}

// runServer serves h on addr until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, addr string, h http.Handler) error {
	logger := loggerFromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		srv.SetKeepAlivesEnabled(false)
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		logger.Info("Listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// server holds the HTTP handlers.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer builds the HTTP router.
func newServer(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)

	return gziphandler.GzipHandler(r)
}

// logRequests logs one line per request at debug level and reports it to
// the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	p, err := pkgio.ReadJSON(http.MaxBytesReader(w, r.Body, maxPatternBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts, err := renderQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Pattern = p

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-Id", result.RunID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.Header().Set("X-Line-Count", strconv.Itoa(result.Stats.Lines.Total()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// renderQuery parses render options from query parameters.
func renderQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}

	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if v := q.Get("base_depth"); v != "" {
		base, err := strconv.Atoi(v)
		if err != nil {
			return opts, kerrors.Wrap(kerrors.ErrCodeInvalidDepth, err, "base_depth")
		}
		opts.BasePlaneDepth = &base
	}
	if v := q.Get("cell_size"); v != "" {
		w, h, err := parseSize("cell_size", v)
		if err != nil {
			return opts, err
		}
		opts.CellWidth, opts.CellHeight = w, h
	}
	if v := q.Get("page_size"); v != "" {
		w, h, err := parseSize("page_size", v)
		if err != nil {
			return opts, err
		}
		opts.PageWidth, opts.PageHeight = w, h
	}
	if v := q.Get("preserve_aspect"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return opts, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "preserve_aspect")
		}
		opts.PreserveAspect = &on
	}
	if v := q.Get("sorted"); v != "" {
		sorted, err := strconv.ParseBool(v)
		if err != nil {
			return opts, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "sorted")
		}
		opts.Sorted = &sorted
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "scale")
		}
		opts.Scale = scale
	}
	return opts, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps error codes to HTTP statuses.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case kerrors.IsValidation(err):
		status = http.StatusBadRequest
	case kerrors.Is(err, kerrors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err)
	}

	code := string(kerrors.GetCode(err))
	if code == "" {
		code = string(kerrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
