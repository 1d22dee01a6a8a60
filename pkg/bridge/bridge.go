package bridge

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/glimpse-dev/glimpse/internal/logging"
	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/inspect"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// DefaultQueueSize bounds the command channel. A full queue applies
// back-pressure on submitters instead of dropping work.
const DefaultQueueSize = 32

// Command is one unit of work for the evaluation loop: a typed request
// plus its one-shot reply slot. Created per request, consumed exactly
// once, never reused.
type Command struct {
	ID  uuid.UUID
	Req domain.Request

	reply     chan domain.Response
	resolved  sync.Once
	abandoned atomic.Bool
}

func newCommand(req domain.Request) *Command {
	return &Command{
		ID:    uuid.New(),
		Req:   req,
		reply: make(chan domain.Response, 1),
	}
}

// Resolve writes the response into the reply slot. The first call wins;
// resolving twice is a programming error on the loop side and the second
// write is ignored. The slot is buffered, so Resolve never blocks the
// loop even when the submitter already gave up.
func (c *Command) Resolve(res domain.Response) {
	c.resolved.Do(func() {
		c.reply <- res
	})
}

// Abandoned reports whether the submitter stopped waiting. The loop may
// use this to log late resolutions instead of losing them silently.
func (c *Command) Abandoned() bool {
	return c.abandoned.Load()
}

// Bridge is the process-wide relay state: created once at startup, shared
// by every handler, alive for the process lifetime. The send side is safe
// for concurrent use; the receive side belongs to exactly one loop.
type Bridge struct {
	appName string
	pid     int
	started time.Time

	commands chan *Command
	done     chan struct{}
	closing  sync.Once

	logger  *slog.Logger
	metrics *metrics
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	queueSize  int
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithQueueSize bounds the command channel (default DefaultQueueSize).
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer sets the Prometheus registerer for bridge metrics.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// New creates a Bridge for the named application.
func New(appName string, opts ...Option) *Bridge {
	o := &options{
		queueSize:  DefaultQueueSize,
		logger:     logging.NewNop(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Bridge{
		appName:  appName,
		pid:      os.Getpid(),
		started:  time.Now(),
		commands: make(chan *Command, o.queueSize),
		done:     make(chan struct{}),
		logger:   o.logger,
		metrics:  newMetrics(o.registerer),
	}
}

// AppName returns the application name reported by /status.
func (b *Bridge) AppName() string { return b.appName }

// PID returns the host process id.
func (b *Bridge) PID() int { return b.pid }

// Uptime returns the time elapsed since the bridge was created.
func (b *Bridge) Uptime() time.Duration { return time.Since(b.started) }

// Commands exposes the receive side for hosts that drain the channel
// themselves instead of using Serve. Receive together with Done to stop:
//
//	select {
//	case <-bridge.Done():
//	    return
//	case cmd := <-bridge.Commands():
//	    cmd.Resolve(...)
//	}
func (b *Bridge) Commands() <-chan *Command { return b.commands }

// Done is closed when the bridge shuts down.
func (b *Bridge) Done() <-chan struct{} { return b.done }

// Close shuts the bridge down. Pending submitters and future Submit calls
// receive ErrChannelClosed; commands already dequeued may still resolve
// into abandoned slots.
func (b *Bridge) Close() {
	b.closing.Do(func() {
		close(b.done)
	})
}

// Submit validates the request, enqueues a command, and waits for its
// resolution under the caller's deadline. The in-flight command is never
// retracted: on timeout the reply slot is simply abandoned and a late
// resolution is discarded.
func (b *Bridge) Submit(ctx context.Context, req domain.Request) (domain.Response, error) {
	if req == nil {
		return domain.Response{}, domain.ErrInvalidParams
	}
	if err := req.Validate(); err != nil {
		// Rejected before a Command is ever created.
		return domain.Response{}, err
	}

	cmd := newCommand(req)
	b.metrics.inFlight.Inc()
	defer b.metrics.inFlight.Dec()
	start := time.Now()

	select {
	case b.commands <- cmd:
	case <-b.done:
		b.metrics.count(req.Kind(), outcomeClosed)
		return domain.Response{}, domain.ErrChannelClosed
	case <-ctx.Done():
		b.metrics.count(req.Kind(), outcomeTimeout)
		return domain.Response{}, waitErr(ctx)
	}

	select {
	case res := <-cmd.reply:
		b.metrics.observe(req.Kind(), res, time.Since(start))
		return res, nil
	case <-b.done:
		cmd.abandoned.Store(true)
		b.metrics.count(req.Kind(), outcomeClosed)
		return domain.Response{}, domain.ErrChannelClosed
	case <-ctx.Done():
		cmd.abandoned.Store(true)
		b.metrics.count(req.Kind(), outcomeTimeout)
		return domain.Response{}, waitErr(ctx)
	}
}

func waitErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return ctx.Err()
}

// Serve is the evaluation loop: it drains commands strictly in arrival
// order and executes each typed request against the live document. It is
// the only code that may touch doc, and it never runs two evaluations
// concurrently. Blocks until ctx is canceled or the bridge is closed.
func (b *Bridge) Serve(ctx context.Context, doc ports.Document, eval ports.ScriptEvaluator) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.done:
			return nil
		case cmd := <-b.commands:
			res := inspect.Execute(ctx, doc, eval, cmd.Req)
			if cmd.Abandoned() {
				b.logger.Debug("dropping late resolution",
					"command", cmd.ID.String(), "kind", string(cmd.Req.Kind()))
			}
			cmd.Resolve(res)
		}
	}
}
