// Package http is the network-facing front door of the bridge: it
// validates inbound requests, builds typed evaluation commands, awaits
// their correlated responses under a deadline, and renders results as
// JSON. It binds only to the local loopback interface.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glimpse-dev/glimpse/internal/logging"
	"github.com/glimpse-dev/glimpse/internal/screenshot"
	"github.com/glimpse-dev/glimpse/pkg/bridge"
	"github.com/glimpse-dev/glimpse/pkg/domain"
)

// DefaultTimeout bounds how long a handler waits for the evaluation loop.
const DefaultTimeout = 10 * time.Second

// CaptureFunc takes a screenshot and returns the file written.
type CaptureFunc func(path string) (string, error)

// Server holds the handler dependencies.
type Server struct {
	bridge  *bridge.Bridge
	timeout time.Duration
	logger  *slog.Logger
	capture CaptureFunc
}

// ServerOption configures the front door.
type ServerOption func(*Server)

// WithTimeout sets the per-request evaluation deadline.
func WithTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithCapture overrides the platform screenshot function (used by tests).
func WithCapture(f CaptureFunc) ServerOption {
	return func(s *Server) { s.capture = f }
}

// NewHandler wires the bridge endpoints onto a chi router.
func NewHandler(b *bridge.Bridge, opts ...ServerOption) http.Handler {
	s := &Server{
		bridge:  b,
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
		capture: screenshot.Capture,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.Health)
	r.Get("/status", s.Status)
	r.Post("/eval", s.Eval)
	r.Post("/query", s.Query)
	r.Get("/dom", s.Dom)
	r.Post("/inspect", s.Inspect)
	r.Post("/validate-classes", s.ValidateClasses)
	r.Get("/diagnose", s.Diagnose)
	r.Post("/screenshot", s.Screenshot)
	r.Get("/openapi.yaml", s.OpenAPI)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /status.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	secs := int64(s.bridge.Uptime().Seconds())
	writeJSON(w, http.StatusOK, statusPayload{
		Status:      "ok",
		App:         s.bridge.AppName(),
		PID:         s.bridge.PID(),
		UptimeSecs:  secs,
		UptimeHuman: formatUptime(secs),
		APIVersion:  apiVersion(),
	})
}

// Eval handles POST /eval: the raw-eval path. Caller-supplied script text
// is passed verbatim; callers accept the associated risk.
func (s *Server) Eval(w http.ResponseWriter, r *http.Request) {
	var body evalBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.submit(w, r, domain.EvalRequest{Script: body.Script})
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var body queryBody
	if !decodeBody(w, r, &body) {
		return
	}
	mode, err := domain.ParseQueryMode(body.Mode)
	if err != nil {
		writeError(w, domain.ErrorFrom(err))
		return
	}
	s.submit(w, r, domain.QueryRequest{Selector: body.Selector, Mode: mode, Attr: body.Attr})
}

// Dom handles GET /dom with optional selector and budget query params.
func (s *Server) Dom(w http.ResponseWriter, r *http.Request) {
	req := domain.TreeRequest{Selector: r.URL.Query().Get("selector")}

	var ok bool
	if req.MaxDepth, ok = intParam(w, r, "max_depth"); !ok {
		return
	}
	if req.MaxNodes, ok = intParam(w, r, "max_nodes"); !ok {
		return
	}
	s.submit(w, r, req)
}

// Inspect handles POST /inspect.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	var body inspectBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.submit(w, r, domain.InspectRequest{Selector: body.Selector})
}

// ValidateClasses handles POST /validate-classes.
func (s *Server) ValidateClasses(w http.ResponseWriter, r *http.Request) {
	var body classesBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.submit(w, r, domain.ClassesRequest{Classes: body.Classes})
}

// Diagnose handles GET /diagnose.
func (s *Server) Diagnose(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, domain.DiagnoseRequest{})
}

// Screenshot handles POST /screenshot. Capture is platform-specific and
// does not go through the command channel.
func (s *Server) Screenshot(w http.ResponseWriter, r *http.Request) {
	var body screenshotBody
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &body) {
			return
		}
	}
	path, err := s.capture(body.Path)
	if err != nil {
		s.logger.Warn("screenshot failed", "error", err)
		writeError(w, domain.ErrorFrom(err))
		return
	}
	writeJSON(w, http.StatusOK, screenshotPayload{OK: true, Path: path})
}

// submit relays one validated request through the bridge and renders the
// outcome.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, req domain.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.bridge.Submit(ctx, req)
	if err != nil {
		s.logger.Warn("submit failed", "kind", string(req.Kind()), "error", err)
		writeError(w, domain.ErrorFrom(err))
		return
	}
	if !res.OK {
		writeError(w, res.Err)
		return
	}
	writeResult(w, res.Result)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, domain.NewError(domain.KindInvalidParams, "invalid request body: %v", err))
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		writeError(w, domain.NewError(domain.KindInvalidParams, "%s must be a positive integer", name))
		return 0, false
	}
	return n, true
}

// formatUptime renders seconds as a short human-readable duration.
func formatUptime(secs int64) string {
	switch {
	case secs < 60:
		return strconv.FormatInt(secs, 10) + "s"
	case secs < 3600:
		return strconv.FormatInt(secs/60, 10) + "m " + strconv.FormatInt(secs%60, 10) + "s"
	default:
		return strconv.FormatInt(secs/3600, 10) + "h " + strconv.FormatInt((secs%3600)/60, 10) + "m"
	}
}
