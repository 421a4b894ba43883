package route

import (
	"context"
	"net/http"
)

const (
	// ItemController holds the controller token parsed from a dynamically
	// resolved path
	ItemController = "__check__"
	// ItemViewName holds the view name synthesized for a dynamically resolved
	// path
	ItemViewName = "__dynamicviewname__"
)

// contextKey is used to denote context keys
type contextKey string

func (c contextKey) String() string { return string(c) }

const keyItems contextKey = "route_items"

// Context is the mutable routing state of a single request. It is owned by
// the request that created it and must not be shared.
type Context struct {
	Writer  http.ResponseWriter
	Request *http.Request

	// Values are the currently resolved route values. Resolvers replace this
	// map wholesale rather than editing it in place.
	Values Values

	// Items is request-scoped side metadata for later pipeline stages
	Items map[string]interface{}

	// Handled is set once an action has run to completion
	Handled bool
}

// NewContext creates a route context for the given request
func NewContext(w http.ResponseWriter, r *http.Request, values Values) *Context {
	if values == nil {
		values = Values{}
	}
	return &Context{
		Writer:  w,
		Request: r,
		Values:  values,
		Items:   make(map[string]interface{}),
	}
}

// Path returns the requested path
func (c *Context) Path() string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Path
}

// RequestWithItems returns the context's request carrying the current
// request-scoped items, so they can be read back with ViewName and
// Controller
func (c *Context) RequestWithItems(ctx context.Context) *http.Request {
	var items = make(map[string]interface{}, len(c.Items))
	for k, v := range c.Items {
		items[k] = v
	}
	return c.Request.WithContext(context.WithValue(ctx, keyItems, items))
}

// Item retrieves a request-scoped item attached by RequestWithItems
func Item(ctx context.Context, key string) (interface{}, bool) {
	items, ok := ctx.Value(keyItems).(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, found := items[key]
	return v, found
}

// ViewName retrieves the dynamic view name hint, if any
func ViewName(ctx context.Context) string {
	v, _ := Item(ctx, ItemViewName)
	s, _ := v.(string)
	return s
}

// Controller retrieves the controller token recorded during dynamic
// resolution, if any
func Controller(ctx context.Context) string {
	v, _ := Item(ctx, ItemController)
	s, _ := v.(string)
	return s
}
