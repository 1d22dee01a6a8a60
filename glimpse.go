package glimpse

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/glimpse-dev/glimpse/internal/adapters/http"
	"github.com/glimpse-dev/glimpse/internal/logging"
	"github.com/glimpse-dev/glimpse/pkg/bridge"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// DefaultPort is the loopback port the inspection bridge listens on.
const DefaultPort = 9999

// Inspector is a running inspection bridge: the HTTP front door bound to
// loopback plus the command relay the host application drains.
type Inspector struct {
	bridge   *bridge.Bridge
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
}

type config struct {
	port       int
	queueSize  int
	timeout    time.Duration
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// Option configures Start.
type Option func(*config)

// WithPort sets the loopback port (default DefaultPort). Port 0 picks a
// free port; read it back via Addr.
func WithPort(port int) Option {
	return func(c *config) {
		if port >= 0 {
			c.port = port
		}
	}
}

// WithQueueSize bounds the pending command queue.
func WithQueueSize(n int) Option {
	return func(c *config) { c.queueSize = n }
}

// WithTimeout sets the per-request evaluation deadline of the HTTP front
// door.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRegisterer sets the Prometheus registerer for bridge metrics.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// Start creates the bridge for appName and binds its HTTP front door to
// 127.0.0.1. It never listens on other interfaces: the bridge evaluates
// caller-supplied script and belongs to the local developer only.
//
// The returned Inspector is inert until the host drains it, either by
// running Serve against a document or by consuming Commands directly in
// its own UI loop.
func Start(appName string, opts ...Option) (*Inspector, error) {
	cfg := &config{
		port:       DefaultPort,
		timeout:    httpadapter.DefaultTimeout,
		logger:     logging.NewNop(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	b := bridge.New(appName,
		bridge.WithQueueSize(cfg.queueSize),
		bridge.WithLogger(cfg.logger),
		bridge.WithRegisterer(cfg.registerer),
	)

	handler := httpadapter.NewHandler(b,
		httpadapter.WithTimeout(cfg.timeout),
		httpadapter.WithLogger(cfg.logger),
	)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.port))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("bind inspection bridge: %w", err)
	}

	ins := &Inspector{
		bridge:   b,
		server:   &http.Server{Handler: handler},
		listener: listener,
		logger:   cfg.logger,
	}

	go func() {
		if err := ins.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			cfg.logger.Error("inspection bridge server failed", "error", err)
		}
	}()

	cfg.logger.Info("inspection bridge listening", "app", appName, "addr", ins.Addr())
	return ins, nil
}

// Addr returns the bound loopback address, e.g. "127.0.0.1:9999".
func (i *Inspector) Addr() string {
	return i.listener.Addr().String()
}

// URL returns the bridge base URL.
func (i *Inspector) URL() string {
	return "http://" + i.Addr()
}

// Bridge exposes the underlying command relay.
func (i *Inspector) Bridge() *bridge.Bridge {
	return i.bridge
}

// Commands exposes the receive side for hosts that integrate the drain
// into their own main loop.
func (i *Inspector) Commands() <-chan *bridge.Command {
	return i.bridge.Commands()
}

// Done is closed when the inspector shuts down.
func (i *Inspector) Done() <-chan struct{} {
	return i.bridge.Done()
}

// Serve runs the evaluation loop against the given document. Pass a nil
// evaluator when the host cannot execute raw script; the raw-eval path
// then reports evaluation_error while every typed operation keeps
// working.
func (i *Inspector) Serve(ctx context.Context, doc ports.Document, eval ports.ScriptEvaluator) error {
	return i.bridge.Serve(ctx, doc, eval)
}

// Close stops the HTTP front door and shuts the bridge down. Pending
// submitters receive channel_closed.
func (i *Inspector) Close(ctx context.Context) error {
	i.bridge.Close()
	return i.server.Shutdown(ctx)
}
