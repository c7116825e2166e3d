package carousel

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/observability"
)

// Point is a position in the carousel's local coordinate space.
type Point struct {
	X, Y float64
}

// Pass is the result of one layout pass.
type Pass struct {
	ID      string
	Config  layout.Config
	Width   float64
	Height  float64
	Targets []layout.Target
	Pending []*animate.Pending
}

// Wait blocks until every animation issued by the pass has finished.
func (p *Pass) Wait() error {
	if p == nil {
		return nil
	}
	return animate.WaitAll(p.Pending)
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithConfig sets the initial configuration. It is not validated.
func WithConfig(cfg layout.Config) Option {
	return func(c *Carousel) { c.cfg = cfg.Clone() }
}

// WithSize sets the initial container size.
func WithSize(width, height float64) Option {
	return func(c *Carousel) { c.width, c.height = width, height }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Carousel) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContext sets the context handed to every animation request.
// Cancelling it aborts running animations.
func WithContext(ctx context.Context) Option {
	return func(c *Carousel) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// Carousel is the carousel control. All methods are safe for concurrent use;
// layout passes are serialized.
type Carousel struct {
	mu     sync.Mutex
	items  []animate.Item
	cfg    layout.Config
	width  float64
	height float64
	ready  bool

	observers map[int]func(*Pass)
	nextObs   int
	last      *Pass

	passMu sync.Mutex
	logger *log.Logger
	ctx    context.Context
}

// New creates an inert carousel over items with the default configuration.
func New(items []animate.Item, opts ...Option) *Carousel {
	c := &Carousel{
		items:     append([]animate.Item(nil), items...),
		cfg:       layout.DefaultConfig(),
		observers: make(map[int]func(*Pass)),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Accessors
// =============================================================================

// Len returns the number of items.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Items returns a copy of the item sequence.
func (c *Carousel) Items() []animate.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]animate.Item(nil), c.items...)
}

// Config returns a copy of the current configuration.
func (c *Carousel) Config() layout.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// ActiveItem returns the active index.
func (c *Carousel) ActiveItem() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.ActiveItem
}

// Size returns the container size.
func (c *Carousel) Size() (width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Ready reports whether Load has been called.
func (c *Carousel) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// LastPass returns the most recent successful pass, or nil.
func (c *Carousel) LastPass() *Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Subscribe registers fn to be called after every successful pass and
// returns a function that removes it.
//
// Observers run synchronously on the goroutine that triggered the pass,
// after the pass has been applied and its lock released, so fn may call
// back into the carousel (Next, SetConfig, Resize, ...). The nested pass
// notifies observers again before the outer call returns.
func (c *Carousel) Subscribe(fn func(*Pass)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// =============================================================================
// Events
// =============================================================================

// Load marks the carousel ready and runs a pass. The ready state is never
// reset; later calls only re-run the pass.
func (c *Carousel) Load() (*Pass, error) {
	c.mu.Lock()
	if !c.ready {
		c.ready = true
		c.logger.Debug("carousel loaded", "items", len(c.items))
	}
	c.mu.Unlock()
	return c.Measure()
}

// Resize records the new container size and runs a pass.
func (c *Carousel) Resize(width, height float64) (*Pass, error) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.mu.Unlock()
	return c.Measure()
}

// SetItems replaces the item sequence, keeps the active index in range and
// runs a pass.
func (c *Carousel) SetItems(items []animate.Item) (*Pass, error) {
	c.mu.Lock()
	c.items = append([]animate.Item(nil), items...)
	c.cfg.ActiveItem = layout.Wrap(c.cfg.ActiveItem, len(c.items))
	c.mu.Unlock()
	return c.Measure()
}

// Measure runs one layout pass. Before Load it does nothing and returns a
// nil pass. When the layout fails no animation is issued and the error is
// returned.
func (c *Carousel) Measure() (*Pass, error) {
	pass, observers, err := c.measure()
	if pass == nil {
		return nil, err
	}
	for _, fn := range observers {
		fn(pass)
	}
	return pass, nil
}

// measure runs the pass under passMu and returns the observers to notify.
func (c *Carousel) measure() (*Pass, []func(*Pass), error) {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		observability.Carousel().OnPassSkipped(c.ctx, "not loaded")
		return nil, nil, nil
	}
	items := append([]animate.Item(nil), c.items...)
	cfg := c.cfg.Clone()
	width, height := c.width, c.height
	c.mu.Unlock()

	pass := &Pass{ID: uuid.NewString(), Config: cfg, Width: width, Height: height}
	hooks := observability.Carousel()
	hooks.OnPassStart(c.ctx, pass.ID, len(items))
	start := time.Now()

	measurables := make([]layout.Measurable, len(items))
	for i, it := range items {
		measurables[i] = it
	}
	targets, err := layout.Compute(measurables, cfg, width, height)
	if err != nil {
		hooks.OnPassComplete(c.ctx, pass.ID, len(items), time.Since(start), err)
		c.logger.Warn("layout pass failed", "pass", pass.ID, "err", errors.UserMessage(err))
		return nil, nil, err
	}
	pass.Targets = targets

	t := animate.TransitionFor(cfg)
	pass.Pending = make([]*animate.Pending, len(items))
	for i, target := range targets {
		pass.Pending[i] = animate.Apply(c.ctx, items[i], target, t)
	}

	hooks.OnPassComplete(c.ctx, pass.ID, len(items), time.Since(start), nil)
	c.logger.Debug("layout pass",
		"pass", pass.ID,
		"items", len(items),
		"active", cfg.ActiveItem,
		"width", width,
		"height", height)

	c.mu.Lock()
	c.last = pass
	observers := make([]func(*Pass), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()
	return pass, observers, nil
}
