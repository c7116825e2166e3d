package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/buildinfo"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/observability"
	"github.com/matzehuels/carousel/pkg/pipeline"
	"github.com/matzehuels/carousel/pkg/scene"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 64 << 10
)

// serveCommand creates the serve command, an HTTP API over a live carousel.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [scene]",
		Short: "Serve a live carousel over HTTP",
		Long: `Serve a live carousel over HTTP.

Endpoints:
  GET  /layout       targets of the last layout pass (JSON)
  GET  /render.svg   snapshot of the current state (?at=200ms&from=1&labels=false)
  GET  /ring.svg     ring diagram of the current state, same parameters
  POST /tap          {"x": 120, "y": 40}; a body without x is ignored
  PUT  /config       partial configuration, same fields as the scene file
  PUT  /size         {"width": 800, "height": 300}
  GET  /healthz      liveness probe

Rendered snapshots are cached; use --redis or --mongo to share the cache between
several servers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sc, err := runner.LoadScene(input)
	if err != nil {
		return err
	}
	srv, err := newServer(ctx, sc, runner, c.Logger)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	printSuccess("Serving %s", StyleValue.Render(input))
	printInfo("Listening on %s", StyleLink.Render("http://"+addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// =============================================================================
// server - HTTP API state
// =============================================================================

type server struct {
	scene  *scene.Scene
	ctrl   *carousel.Carousel
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer builds a loaded carousel over the scene's items.
func newServer(ctx context.Context, sc *scene.Scene, runner *pipeline.Runner, logger *log.Logger) (*server, error) {
	cfg, err := sc.LayoutConfig()
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{}
	opts.SetLayoutDefaults(sc)

	ctrl := carousel.New(scene.AsItems(sc.Recorders()),
		carousel.WithConfig(cfg),
		carousel.WithSize(opts.Width, opts.Height),
		carousel.WithLogger(logger),
		carousel.WithContext(ctx))
	if _, err := ctrl.Load(); err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}
	return &server{scene: sc, ctrl: ctrl, runner: runner, logger: logger}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/layout", s.handleLayout)
	r.Get("/render.svg", s.handleRender(pipeline.FormatSVG))
	r.Get("/ring.svg", s.handleRender(pipeline.FormatRingSVG))
	r.Post("/tap", s.handleTap)
	r.Put("/config", s.handleConfig)
	r.Put("/size", s.handleSize)
	return r
}

// logRequests attaches a request-scoped logger and reports every request.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		l := s.logger.With("req", middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, withRequestLogger(r, l))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path, status, elapsed)
		l.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", elapsed)
	})
}

// =============================================================================
// Handlers
// =============================================================================

type layoutResponse struct {
	Pass    string          `json:"pass"`
	Active  int             `json:"active"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Targets []layout.Target `json:"targets"`
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	pass := s.ctrl.LastPass()
	if pass == nil {
		writeError(w, r, errors.New(errors.ErrCodeConfiguration, "no successful layout pass"))
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Pass:    pass.ID,
		Active:  pass.Config.ActiveItem,
		Width:   pass.Width,
		Height:  pass.Height,
		Targets: pass.Targets,
	})
}

func (s *server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, format)
	}
}

func (s *server) render(w http.ResponseWriter, r *http.Request, format string) {
	opts := pipeline.Options{Formats: []string{format}, Labels: true}
	q := r.URL.Query()
	if v := q.Get("at"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid at %q", v))
			return
		}
		opts.At = d
	}
	if v := q.Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid from %q", v))
			return
		}
		opts.From = &n
	}
	if v := q.Get("labels"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid labels %q", v))
			return
		}
		opts.Labels = b
	}
	opts.Logger = requestLogger(r)

	result, err := s.runner.Execute(r.Context(), s.current(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// current returns the scene with the live configuration and size.
func (s *server) current() *scene.Scene {
	cur := *s.scene
	cur.Width, cur.Height = s.ctrl.Size()
	cur.SetLayoutConfig(s.ctrl.Config())
	return &cur
}

type tapRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type activeResponse struct {
	Active int `json:"active"`
}

func (s *server) handleTap(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var pt *carousel.Point
	if req.X != nil {
		pt = &carousel.Point{X: *req.X}
		if req.Y != nil {
			pt.Y = *req.Y
		}
	}
	active, err := s.ctrl.Tap(pt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestLogger(r).Info("tap", "active", active)
	writeJSON(w, http.StatusOK, activeResponse{Active: active})
}

func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var patch scene.Config
	if !decodeBody(w, r, &patch) {
		return
	}
	next := scene.Scene{Items: s.scene.Items}
	next.SetLayoutConfig(s.ctrl.Config())
	next.Config = next.Config.Merge(patch)

	cfg, err := next.LayoutConfig()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.ctrl.SetConfig(cfg); err != nil {
		writeError(w, r, err)
		return
	}
	next.SetLayoutConfig(s.ctrl.Config())
	writeJSON(w, http.StatusOK, next.Config)
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *server) handleSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Width < 0 || req.Height < 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "size must not be negative"))
		return
	}
	if _, err := s.ctrl.Resize(req.Width, req.Height); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	code := errors.GetCode(err)
	if code.Invalid() {
		return http.StatusBadRequest
	}
	switch code {
	case errors.ErrCodeConfiguration:
		return http.StatusConflict
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		requestLogger(r).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
