package resolver

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/route"
)

var (
	// ErrNilContext is returned when no route context is provided
	ErrNilContext = errors.New("route context must not be nil")
	// ErrNoSelector is returned when a handler is built without a selector
	ErrNoSelector = errors.New("an action selector is required")
	// ErrNoInvoker is returned when no invoker could be created for a
	// selected action
	ErrNoInvoker = errors.New("no invoker available for action")
)

// Outcome denotes how a request was routed
type Outcome int

const (
	// Unmatched means no action ran to completion
	Unmatched Outcome = iota
	// Matched means an action ran to completion
	Matched
	// Fatal means an action was selected but could not be executed at all
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Fatal:
		return "fatal"
	default:
		return "unmatched"
	}
}

// Result describes the routing of a single request
type Result struct {
	Outcome Outcome
	// Action is the selected action, if any
	Action *action.Descriptor
	// Dynamic is set when the path heuristic produced the route values
	Dynamic bool
	// Err holds the invocation failure of an unhandled or fatal request
	Err error
}

// Recorder receives routing results
type Recorder interface {
	Record(res Result, took time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Record(Result, time.Duration) {}

// Options configures a Handler
type Options struct {
	Selector    action.Selector
	Invokers    action.InvokerFactory
	Diagnostics action.Diagnostics
	Recorder    Recorder

	Targets      Targets
	TemplateRoot string

	// CacheExpiry enables caching of path parse results when positive
	CacheExpiry        time.Duration
	CacheCleanInterval time.Duration
	CacheSize          int
}

// Handler routes requests to actions, falling back to the dynamic path
// heuristic when conventional selection fails. A Handler holds no
// per-request state and is safe for concurrent use.
type Handler struct {
	l *zap.SugaredLogger

	selector action.Selector
	invokers action.InvokerFactory
	diag     action.Diagnostics
	rec      Recorder

	targets Targets
	root    string
	cache   *cache
}

// New instantiates a route handler with all dependencies resolved
func New(l *zap.SugaredLogger, opts Options) (*Handler, error) {
	if opts.Selector == nil {
		return nil, ErrNoSelector
	}
	var h = &Handler{
		l:        l.Named("resolver"),
		selector: opts.Selector,
		invokers: opts.Invokers,
		diag:     opts.Diagnostics,
		rec:      opts.Recorder,
		targets:  opts.Targets,
		root:     opts.TemplateRoot,
	}
	if h.invokers == nil {
		h.invokers = action.HandlerInvokers{}
	}
	if h.diag == nil {
		h.diag = action.NopDiagnostics{}
	}
	if h.rec == nil {
		h.rec = nopRecorder{}
	}
	if h.root == "" {
		h.root = DefaultTemplateRoot
	}
	if opts.CacheExpiry > 0 {
		var (
			interval = opts.CacheCleanInterval
			size     = opts.CacheSize
		)
		if interval <= 0 {
			interval = opts.CacheExpiry
		}
		if size <= 0 {
			size = 10000
		}
		h.cache = newCache(opts.CacheExpiry, interval, size)
	}
	return h, nil
}

// Close releases background resources held by the handler
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}

// Bound reports whether the given route values map to an existing action
func (h *Handler) Bound(values route.Values) bool {
	return h.selector.HasValidAction(values)
}

// Route selects and executes the action for the given route context. If the
// request is not handled, the request, c.Values and the request-scoped items
// are left exactly as they were before the call. An error is only returned
// for a nil context and for Fatal outcomes.
func (h *Handler) Route(c *route.Context) (res Result, err error) {
	if c == nil || c.Request == nil {
		return Result{}, ErrNilContext
	}

	var start = time.Now()
	defer func() { h.rec.Record(res, time.Since(start)) }()

	var (
		req      = c.Request
		original = c.Values
		items    = c.Items
	)
	if c.Items == nil {
		c.Items = make(map[string]interface{})
	}
	var (
		saved   = snapshot(c.Items, route.ItemController, route.ItemViewName)
		restore = func() {
			c.Request = req
			c.Values = original
			if items == nil {
				c.Items = nil
			} else {
				saved.restore(c.Items)
			}
		}
	)

	d := h.selector.Select(c)
	if d == nil {
		m, ok := h.parse(c.Path())
		if !ok {
			c.Items = items
			return Result{Outcome: Unmatched}, nil
		}
		res.Dynamic = true

		var target = h.targets.For(m.App)
		h.l.Debugw("dynamically resolving path",
			"path", c.Path(),
			"view", m.ViewName,
			"target", target)

		c.Items[route.ItemController] = m.Controller
		c.Items[route.ItemViewName] = m.ViewName
		c.Values = target.values(original, m)

		if d = h.selector.Select(c); d == nil {
			restore()
			return Result{Outcome: Unmatched, Dynamic: true}, nil
		}
	}
	res.Action = d

	// replace the route values so that the action can dirty them without
	// affecting anything upstream
	var values = c.Values.Clone()
	values.Merge(d.Defaults)
	delete(values, route.KeyRouteGroup)
	c.Values = values

	if err = h.invoke(c, d); err != nil {
		restore()
		res.Err = err
		if errors.Is(err, ErrNoInvoker) {
			h.l.Errorw("unable to execute action",
				"action", d.Name(),
				"error", err)
			res.Outcome = Fatal
			return res, err
		}
		h.l.Errorw("failed to execute action",
			"action", d.Name(),
			"path", c.Path(),
			"error", err)
		res.Outcome = Unmatched
		return res, nil
	}

	c.Handled = true
	res.Outcome = Matched
	return res, nil
}

func (h *Handler) parse(path string) (Match, bool) {
	if h.cache == nil {
		return Parse(path, h.root)
	}
	var key = normalize(path)
	if m, matched, found := h.cache.Get(key); found {
		return m, matched
	}
	m, matched := Parse(path, h.root)
	h.cache.Cache(key, m, matched)
	return m, matched
}

// invoke runs the action between the diagnostics hooks. Panics raised by the
// action or by either hook are converted into errors.
func (h *Handler) invoke(c *route.Context, d *action.Descriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while executing action: %v", r)
		}
	}()

	h.diag.BeforeAction(d, c.Request, c.Values)
	defer func() { h.diag.AfterAction(d, c.Request, c.Values) }()

	var invoker = h.invokers.CreateInvoker(action.NewContext(d, c))
	if invoker == nil {
		return fmt.Errorf("%w '%s'", ErrNoInvoker, d.Name())
	}
	return invoker.Invoke(c.Request.Context())
}

type itemSnapshot map[string]itemState

type itemState struct {
	value interface{}
	found bool
}

func snapshot(m map[string]interface{}, keys ...string) itemSnapshot {
	var s = make(itemSnapshot, len(keys))
	for _, k := range keys {
		v, found := m[k]
		s[k] = itemState{v, found}
	}
	return s
}

func (s itemSnapshot) restore(m map[string]interface{}) {
	for k, st := range s {
		if st.found {
			m[k] = st.value
		} else {
			delete(m, k)
		}
	}
}
