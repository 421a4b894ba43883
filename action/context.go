package action

import (
	"context"
	"net/http"

	"github.com/RTradeLtd/Dispatch/route"
)

// contextKey is used to denote context keys
type contextKey string

func (c contextKey) String() string { return string(c) }

const keyAction contextKey = "action_context"

// Context is the state handed to an executing action
type Context struct {
	Descriptor *Descriptor
	Route      *route.Context
}

// NewContext creates an action context for the given route context
func NewContext(d *Descriptor, rc *route.Context) *Context {
	return &Context{Descriptor: d, Route: rc}
}

// Writer returns the response writer of the request
func (c *Context) Writer() http.ResponseWriter { return c.Route.Writer }

// Request returns the request being served
func (c *Context) Request() *http.Request { return c.Route.Request }

// Values returns the route values the action runs with
func (c *Context) Values() route.Values { return c.Route.Values }

// WithContext attaches the action context to ctx
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, keyAction, c)
}

// FromContext retrieves the action context attached to ctx, if any
func FromContext(ctx context.Context) (*Context, bool) {
	c, ok := ctx.Value(keyAction).(*Context)
	return c, ok && c != nil
}
